package models

import "fmt"

type TradierOrderSide string

const (
	TradierOrderSideBuy  TradierOrderSide = "buy"
	TradierOrderSideSell TradierOrderSide = "sell"
)

func (s TradierOrderSide) Validate() error {
	switch s {
	case TradierOrderSideBuy, TradierOrderSideSell:
		return nil
	default:
		return fmt.Errorf("invalid order side: %s", s)
	}
}

type TradierOrderType string

const (
	TradierOrderTypeMarket TradierOrderType = "market"
	TradierOrderTypeLimit  TradierOrderType = "limit"
)

func (t TradierOrderType) Validate() error {
	switch t {
	case TradierOrderTypeMarket, TradierOrderTypeLimit:
		return nil
	default:
		return fmt.Errorf("invalid order type: %s", t)
	}
}

type TradeDuration string

const (
	TradeDurationDay TradeDuration = "day"
	TradeDurationGTC TradeDuration = "gtc"
)

func (d TradeDuration) Validate() error {
	switch d {
	case TradeDurationDay, TradeDurationGTC:
		return nil
	default:
		return fmt.Errorf("invalid trade duration: %s", d)
	}
}

const TradierOrderClassEquity = "equity"

// Order is a single equity order request. It is constructed fresh per
// submission and never mutated after creation.
type Order struct {
	Symbol     string
	Side       TradierOrderSide
	Quantity   int
	OrderType  TradierOrderType
	LimitPrice float64 // set only when OrderType is limit
	Duration   TradeDuration
	Tag        string
	DryRun     bool
}

func NewEquityOrder(symbol string, quantity int, side TradierOrderSide, duration TradeDuration, tag string, dryRun bool) *Order {
	return &Order{
		Symbol:    symbol,
		Side:      side,
		Quantity:  quantity,
		OrderType: TradierOrderTypeLimit,
		Duration:  duration,
		Tag:       tag,
		DryRun:    dryRun,
	}
}

// WithLimitPrice returns a copy of the order priced at the given limit,
// leaving the receiver untouched.
func (o *Order) WithLimitPrice(price float64) *Order {
	priced := *o
	priced.LimitPrice = price
	return &priced
}

func (o *Order) Validate() error {
	if o.Symbol == "" {
		return fmt.Errorf("Order.Validate: symbol is required")
	}

	if o.Quantity <= 0 {
		return fmt.Errorf("Order.Validate: quantity must be positive, got %d", o.Quantity)
	}

	if err := o.Side.Validate(); err != nil {
		return fmt.Errorf("Order.Validate: %w", err)
	}

	if err := o.OrderType.Validate(); err != nil {
		return fmt.Errorf("Order.Validate: %w", err)
	}

	if err := o.Duration.Validate(); err != nil {
		return fmt.Errorf("Order.Validate: %w", err)
	}

	if o.OrderType == TradierOrderTypeLimit && o.LimitPrice <= 0 {
		return fmt.Errorf("Order.Validate: limit order requires a positive limit price, got %.2f", o.LimitPrice)
	}

	return nil
}
