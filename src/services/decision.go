package services

import (
	"fmt"

	"github.com/jastley/tradier-autotrader/src/models"
)

// Decision is the outcome of evaluating one account: either an order to
// submit or a skip with its reason.
type Decision struct {
	Order  *models.Order
	Reason string
}

func (d Decision) ShouldSubmit() bool {
	return d.Order != nil
}

// Decide applies the eligibility rules for one account against the
// positions snapshot: buy only what the account does not hold, sell only
// what it does. Pure function of its inputs; no I/O.
func Decide(accountID, symbol string, side models.TradierOrderSide, quantity int, positions models.PositionSet, config *models.TradeConfig, tag string, dryRun bool) Decision {
	held := positions.Holds(accountID, symbol)

	switch side {
	case models.TradierOrderSideBuy:
		if held {
			return Decision{Reason: fmt.Sprintf("account %s already holds %s", accountID, symbol)}
		}
	case models.TradierOrderSideSell:
		if !held {
			return Decision{Reason: fmt.Sprintf("account %s does not hold %s", accountID, symbol)}
		}
	default:
		return Decision{Reason: fmt.Sprintf("invalid order side: %s", side)}
	}

	return Decision{
		Order: models.NewEquityOrder(symbol, quantity, side, config.Duration, tag, dryRun),
	}
}
