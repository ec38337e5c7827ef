package utils

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jastley/tradier-autotrader/src/models"
)

// ParseTradierResponse unwraps Tradier's two-level envelope, e.g.
// {"positions": {"position": [...]}} or {"quotes": {"quote": {...}}}. A
// single record decodes to a one-element slice; an account with nothing to
// report comes back as the literal "null" payload and decodes to an empty
// slice.
func ParseTradierResponse[T any](response []byte) ([]T, error) {
	envelope := make(map[string]json.RawMessage)
	if err := json.Unmarshal(response, &envelope); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse: failed to unmarshal envelope: %v: %w", err, models.ErrMalformedResponse)
	}

	if len(envelope) != 1 {
		return nil, fmt.Errorf("ParseTradierResponse: expected 1 key in envelope, got %d: %w", len(envelope), models.ErrMalformedResponse)
	}

	var inner json.RawMessage
	for _, v := range envelope {
		inner = v
	}

	if isNullPayload(inner) {
		return []T{}, nil
	}

	body := make(map[string]json.RawMessage)
	if err := json.Unmarshal(inner, &body); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse: failed to unmarshal body: %v: %w", err, models.ErrMalformedResponse)
	}

	if len(body) != 1 {
		return nil, fmt.Errorf("ParseTradierResponse: expected 1 key in body, got %d: %w", len(body), models.ErrMalformedResponse)
	}

	var records json.RawMessage
	for _, v := range body {
		records = v
	}

	dtos, err := NormalizeList[T](records)
	if err != nil {
		return nil, fmt.Errorf("ParseTradierResponse: %w", err)
	}

	return dtos, nil
}

// NormalizeList decodes either a single record or a list of records into a
// slice. Any other payload shape is a malformed response.
func NormalizeList[T any](data []byte) ([]T, error) {
	var list []T
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single T
	if err := json.Unmarshal(data, &single); err == nil {
		return []T{single}, nil
	}

	return nil, fmt.Errorf("NormalizeList: expected a record or list of records: %w", models.ErrMalformedResponse)
}

// Tradier encodes an empty positions list as the JSON string "null" rather
// than a JSON null.
func isNullPayload(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return bytes.Equal(trimmed, []byte(`"null"`)) || bytes.Equal(trimmed, []byte(`null`))
}
