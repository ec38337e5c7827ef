package models

import "fmt"

type RunState string

const (
	RunStateNotStarted      RunState = "not_started"
	RunStatePositionsLoaded RunState = "positions_loaded"
	RunStateEvaluating      RunState = "evaluating"
	RunStateCompleted       RunState = "completed"
	RunStateAborted         RunState = "aborted"
)

type AccountOutcome string

const (
	AccountOutcomeSubmitted AccountOutcome = "submitted"
	AccountOutcomeSkipped   AccountOutcome = "skipped"
	AccountOutcomeFailed    AccountOutcome = "failed"
)

// SubmissionResult carries the broker's answer to one order POST. It exists
// only to decide whether the run continues.
type SubmissionResult struct {
	Account    string
	Order      *Order
	StatusCode int
	Body       string
}

func (r *SubmissionResult) OK() bool {
	return r.StatusCode < 300
}

type AccountResult struct {
	Account    string
	Outcome    AccountOutcome
	Reason     string
	Submission *SubmissionResult
}

// RunResult summarizes one (symbol, action) run across all discovered
// accounts.
type RunResult struct {
	Symbol   string
	Side     TradierOrderSide
	State    RunState
	Accounts []AccountResult
	Err      error
}

func (r *RunResult) Submitted() int {
	return r.count(AccountOutcomeSubmitted)
}

func (r *RunResult) Skipped() int {
	return r.count(AccountOutcomeSkipped)
}

func (r *RunResult) count(outcome AccountOutcome) int {
	n := 0
	for _, account := range r.Accounts {
		if account.Outcome == outcome {
			n++
		}
	}

	return n
}

func (r *RunResult) Summary() string {
	if r.State == RunStateAborted {
		return fmt.Sprintf("%s %s aborted after %d submitted, %d skipped: %v", r.Side, r.Symbol, r.Submitted(), r.Skipped(), r.Err)
	}

	return fmt.Sprintf("%s %s completed: %d submitted, %d skipped", r.Side, r.Symbol, r.Submitted(), r.Skipped())
}
