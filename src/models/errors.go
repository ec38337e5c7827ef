package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse marks a broker payload that is neither a single
	// record nor a list of records where one was expected.
	ErrMalformedResponse = errors.New("malformed broker response")

	// ErrNoQuoteFound marks a quote lookup that returned zero entries.
	ErrNoQuoteFound = errors.New("no quote found")
)

// PositionsQueryError reports a failed positions fetch for one account. It is
// distinct from an empty positions list: a failed fetch must never be treated
// as "no positions held".
type PositionsQueryError struct {
	Account string
	Status  string
	Err     error
}

func (e *PositionsQueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("positions query failed for account %s: %v", e.Account, e.Err)
	}

	return fmt.Sprintf("positions query failed for account %s: %s", e.Account, e.Status)
}

func (e *PositionsQueryError) Unwrap() error {
	return e.Err
}

// OrderSubmissionError reports an order POST that came back with a
// non-success status. It aborts the remainder of the run.
type OrderSubmissionError struct {
	Account    string
	StatusCode int
	Body       string
}

func (e *OrderSubmissionError) Error() string {
	return fmt.Sprintf("order submission failed for account %s: status %d: %s", e.Account, e.StatusCode, e.Body)
}
