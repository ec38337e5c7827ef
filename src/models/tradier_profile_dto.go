package models

import (
	"encoding/json"
	"fmt"
)

type TradierProfileResponseDTO struct {
	Profile TradierProfileDTO `json:"profile"`
}

type TradierProfileDTO struct {
	ID      string                `json:"id"`
	Name    string                `json:"name"`
	Account TradierAccountListDTO `json:"account"`
}

type TradierAccountDTO struct {
	AccountNumber  string `json:"account_number"`
	Classification string `json:"classification"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	DayTrader      bool   `json:"day_trader"`
	DateCreated    string `json:"date_created"`
}

// TradierAccountListDTO absorbs Tradier's habit of encoding a one-account
// profile as a bare object instead of a one-element list.
type TradierAccountListDTO []TradierAccountDTO

func (l *TradierAccountListDTO) UnmarshalJSON(data []byte) error {
	var accounts []TradierAccountDTO
	if err := json.Unmarshal(data, &accounts); err == nil {
		*l = accounts
		return nil
	}

	var single TradierAccountDTO
	if err := json.Unmarshal(data, &single); err == nil {
		*l = TradierAccountListDTO{single}
		return nil
	}

	return fmt.Errorf("TradierAccountListDTO: expected an account or list of accounts: %w", ErrMalformedResponse)
}
