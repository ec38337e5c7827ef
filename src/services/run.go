package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jastley/tradier-autotrader/src/models"
)

// RunCoordinator drives one (symbol, action) run: discover accounts, build
// the positions snapshot once, then evaluate accounts sequentially in
// discovery order, stopping on the first failed submission. Sequential
// processing is deliberate: the accounts share the broker's rate limits and
// the fail-fast guarantee depends on the ordering.
type RunCoordinator struct {
	broker    Broker
	tracker   *PositionTracker
	limits    *LimitCalculator
	submitter *OrderSubmitter
	config    *models.TradeConfig
}

func NewRunCoordinator(broker Broker, config *models.TradeConfig) *RunCoordinator {
	return &RunCoordinator{
		broker:    broker,
		tracker:   NewPositionTracker(broker),
		limits:    NewLimitCalculator(config),
		submitter: NewOrderSubmitter(broker),
		config:    config,
	}
}

func (c *RunCoordinator) Run(ctx context.Context, symbol string, side models.TradierOrderSide, quantity int, dryRun bool) (*models.RunResult, error) {
	// The broker reports held symbols in uppercase; normalize before any
	// eligibility decision so a lowercase symbol cannot slip past the
	// held-check.
	symbol = strings.ToUpper(symbol)

	result := &models.RunResult{
		Symbol: symbol,
		Side:   side,
		State:  models.RunStateNotStarted,
	}

	if err := side.Validate(); err != nil {
		return c.abort(result, fmt.Errorf("RunCoordinator.Run: %w", err))
	}

	if quantity <= 0 {
		return c.abort(result, fmt.Errorf("RunCoordinator.Run: quantity must be positive, got %d", quantity))
	}

	accounts, err := c.broker.FetchAccounts(ctx)
	if err != nil {
		return c.abort(result, fmt.Errorf("RunCoordinator.Run: failed to discover accounts: %w", err))
	}

	positions, err := c.tracker.Build(ctx, accounts)
	if err != nil {
		return c.abort(result, fmt.Errorf("RunCoordinator.Run: %w", err))
	}

	result.State = models.RunStatePositionsLoaded

	tag := fmt.Sprintf("run-%s", uuid.New().String())
	log.Infof("run %s: %s %s x%d across %d accounts", tag, side, symbol, quantity, len(accounts))

	result.State = models.RunStateEvaluating

	for _, account := range accounts {
		decision := Decide(account.AccountNumber, symbol, side, quantity, positions, c.config, tag, dryRun)
		if !decision.ShouldSubmit() {
			log.Infof("skipping account %s: %s", account.AccountNumber, decision.Reason)
			result.Accounts = append(result.Accounts, models.AccountResult{
				Account: account.AccountNumber,
				Outcome: models.AccountOutcomeSkipped,
				Reason:  decision.Reason,
			})

			continue
		}

		quote, err := c.broker.FetchQuote(ctx, symbol)
		if err != nil {
			return c.abort(result, fmt.Errorf("RunCoordinator.Run: account %s: %w", account.AccountNumber, err))
		}

		limit, err := c.limits.Limit(side, quote.Last)
		if err != nil {
			return c.abort(result, fmt.Errorf("RunCoordinator.Run: account %s: %w", account.AccountNumber, err))
		}

		order := decision.Order.WithLimitPrice(limit)

		submission, err := c.submitter.Submit(ctx, account.AccountNumber, order)
		if err != nil {
			return c.abort(result, fmt.Errorf("RunCoordinator.Run: account %s: %w", account.AccountNumber, err))
		}

		if !submission.OK() {
			result.Accounts = append(result.Accounts, models.AccountResult{
				Account:    account.AccountNumber,
				Outcome:    models.AccountOutcomeFailed,
				Reason:     fmt.Sprintf("submission returned status %d", submission.StatusCode),
				Submission: submission,
			})

			return c.abort(result, &models.OrderSubmissionError{
				Account:    account.AccountNumber,
				StatusCode: submission.StatusCode,
				Body:       submission.Body,
			})
		}

		result.Accounts = append(result.Accounts, models.AccountResult{
			Account:    account.AccountNumber,
			Outcome:    models.AccountOutcomeSubmitted,
			Submission: submission,
		})

		if c.config.RefreshAfterSubmit {
			positions, err = c.tracker.Build(ctx, accounts)
			if err != nil {
				return c.abort(result, fmt.Errorf("RunCoordinator.Run: refresh after submit: %w", err))
			}
		}
	}

	result.State = models.RunStateCompleted
	log.Info(result.Summary())

	return result, nil
}

func (c *RunCoordinator) abort(result *models.RunResult, err error) (*models.RunResult, error) {
	result.State = models.RunStateAborted
	result.Err = err
	log.Error(result.Summary())

	return result, err
}
