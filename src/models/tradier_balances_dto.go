package models

type FetchTradierBalancesResponseDTO struct {
	Balances TradierBalancesDTO `json:"balances"`
}

type TradierBalancesDTO struct {
	AccountNumber   string  `json:"account_number"`
	AccountType     string  `json:"account_type"`
	TotalEquity     float64 `json:"total_equity"`
	TotalCash       float64 `json:"total_cash"`
	MarketValue     float64 `json:"market_value"`
	OpenPL          float64 `json:"open_pl"`
	ClosePL         float64 `json:"close_pl"`
	Equity          float64 `json:"equity"`
	LongMarketValue float64 `json:"long_market_value"`
}
