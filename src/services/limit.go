package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jastley/tradier-autotrader/src/models"
)

// LimitCalculator derives a protective limit price from the last traded
// price: 10% above it for buys, 10% below for sells, so stale or erroneous
// quotes cannot move an order far from the market.
type LimitCalculator struct {
	buyMultiplier  decimal.Decimal
	sellMultiplier decimal.Decimal
}

func NewLimitCalculator(config *models.TradeConfig) *LimitCalculator {
	return &LimitCalculator{
		buyMultiplier:  decimal.NewFromFloat(config.BuyLimitMultiplier),
		sellMultiplier: decimal.NewFromFloat(config.SellLimitMultiplier),
	}
}

func (c *LimitCalculator) BuyLimit(last float64) (float64, error) {
	return c.limit(last, c.buyMultiplier)
}

func (c *LimitCalculator) SellLimit(last float64) (float64, error) {
	return c.limit(last, c.sellMultiplier)
}

// Limit returns the bound for the given side.
func (c *LimitCalculator) Limit(side models.TradierOrderSide, last float64) (float64, error) {
	switch side {
	case models.TradierOrderSideBuy:
		return c.BuyLimit(last)
	case models.TradierOrderSideSell:
		return c.SellLimit(last)
	default:
		return 0, fmt.Errorf("LimitCalculator.Limit: invalid order side: %s", side)
	}
}

func (c *LimitCalculator) limit(last float64, multiplier decimal.Decimal) (float64, error) {
	if last <= 0 {
		return 0, fmt.Errorf("LimitCalculator: quote must be positive, got %v", last)
	}

	limit := decimal.NewFromFloat(last).Mul(multiplier).Round(2)

	return limit.InexactFloat64(), nil
}
