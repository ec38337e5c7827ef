package services

import (
	"context"
	"fmt"

	"github.com/jastley/tradier-autotrader/src/models"
)

// MockBroker is an in-memory Broker for tests. Submissions succeed with
// status 200 unless a per-account status override is set, and successful
// fills are reflected back into the mock's position book so refresh
// behavior can be exercised.
type MockBroker struct {
	Accounts      []models.TradierAccountDTO
	Positions     map[string][]models.TradierPositionDTO
	PositionsErrs map[string]error
	Quote         *models.TradierQuoteDTO
	QuoteErr      error
	Balances      map[string]*models.TradierBalancesDTO
	PlaceStatus   map[string]int

	Requests []*models.SubmissionResult
}

func NewMockBroker() *MockBroker {
	return &MockBroker{
		Positions:     make(map[string][]models.TradierPositionDTO),
		PositionsErrs: make(map[string]error),
		Balances:      make(map[string]*models.TradierBalancesDTO),
		PlaceStatus:   make(map[string]int),
	}
}

func (b *MockBroker) AddAccount(accountNumber string, symbols ...string) {
	b.Accounts = append(b.Accounts, models.TradierAccountDTO{AccountNumber: accountNumber, Type: "margin", Status: "active"})
	b.Positions[accountNumber] = nil
	for _, symbol := range symbols {
		b.Positions[accountNumber] = append(b.Positions[accountNumber], models.TradierPositionDTO{Symbol: symbol, Quantity: 1})
	}
}

func (b *MockBroker) FetchAccounts(ctx context.Context) ([]models.TradierAccountDTO, error) {
	return b.Accounts, nil
}

func (b *MockBroker) FetchPositions(ctx context.Context, accountID string) ([]models.TradierPositionDTO, error) {
	if err, found := b.PositionsErrs[accountID]; found {
		return nil, err
	}

	return b.Positions[accountID], nil
}

func (b *MockBroker) FetchQuote(ctx context.Context, symbol string) (*models.TradierQuoteDTO, error) {
	if b.QuoteErr != nil {
		return nil, b.QuoteErr
	}

	if b.Quote == nil {
		return nil, fmt.Errorf("MockBroker.FetchQuote: %s: %w", symbol, models.ErrNoQuoteFound)
	}

	return b.Quote, nil
}

func (b *MockBroker) FetchBalances(ctx context.Context, accountID string) (*models.TradierBalancesDTO, error) {
	balances, found := b.Balances[accountID]
	if !found {
		return nil, fmt.Errorf("MockBroker.FetchBalances: no balances for account %s", accountID)
	}

	return balances, nil
}

func (b *MockBroker) PlaceOrder(ctx context.Context, accountID string, order *models.Order) (*models.SubmissionResult, error) {
	status, found := b.PlaceStatus[accountID]
	if !found {
		status = 200
	}

	result := &models.SubmissionResult{
		Account:    accountID,
		Order:      order,
		StatusCode: status,
		Body:       `{"order":{"id":123,"status":"ok"}}`,
	}

	b.Requests = append(b.Requests, result)

	if result.OK() && !order.DryRun {
		b.applyFill(accountID, order)
	}

	return result, nil
}

func (b *MockBroker) applyFill(accountID string, order *models.Order) {
	if order.Side == models.TradierOrderSideBuy {
		b.Positions[accountID] = append(b.Positions[accountID], models.TradierPositionDTO{Symbol: order.Symbol, Quantity: float64(order.Quantity)})
		return
	}

	remaining := make([]models.TradierPositionDTO, 0, len(b.Positions[accountID]))
	for _, position := range b.Positions[accountID] {
		if position.Symbol != order.Symbol {
			remaining = append(remaining, position)
		}
	}

	b.Positions[accountID] = remaining
}
