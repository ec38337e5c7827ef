package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jastley/tradier-autotrader/src/models"
)

// PositionTracker builds the per-account held-symbols snapshot the decision
// engine runs against.
type PositionTracker struct {
	broker Broker
}

func NewPositionTracker(broker Broker) *PositionTracker {
	return &PositionTracker{broker: broker}
}

// Build fetches positions for every account. An account with nothing held
// maps to an empty set; a failed fetch aborts the build, since treating it
// as empty would make every buy look eligible.
func (t *PositionTracker) Build(ctx context.Context, accounts []models.TradierAccountDTO) (models.PositionSet, error) {
	positions := models.NewPositionSet()

	for _, account := range accounts {
		dtos, err := t.broker.FetchPositions(ctx, account.AccountNumber)
		if err != nil {
			return nil, fmt.Errorf("PositionTracker.Build: %w", err)
		}

		positions[account.AccountNumber] = make(map[string]struct{})
		for _, dto := range dtos {
			positions.Add(account.AccountNumber, dto.Symbol)
		}

		log.Debugf("account %s holds %d symbols", account.AccountNumber, len(dtos))
	}

	return positions, nil
}
