package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jastley/tradier-autotrader/src/models"
)

// OrderSubmitter issues orders through the broker and reports the raw
// outcome. It does not retry and does not interpret application-level error
// codes beyond carrying the HTTP status upward.
type OrderSubmitter struct {
	broker Broker
}

func NewOrderSubmitter(broker Broker) *OrderSubmitter {
	return &OrderSubmitter{broker: broker}
}

func (s *OrderSubmitter) Submit(ctx context.Context, accountID string, order *models.Order) (*models.SubmissionResult, error) {
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("OrderSubmitter.Submit: %w", err)
	}

	result, err := s.broker.PlaceOrder(ctx, accountID, order)
	if err != nil {
		return nil, fmt.Errorf("OrderSubmitter.Submit: %w", err)
	}

	if result.OK() {
		log.Infof("submitted %s %s x%d for account %s at limit %.2f", order.Side, order.Symbol, order.Quantity, accountID, order.LimitPrice)
	} else {
		log.Errorf("submission rejected for account %s: status %d: %s", accountID, result.StatusCode, result.Body)
	}

	return result, nil
}
