package models

type TradierPositionDTO struct {
	CostBasis    float64 `json:"cost_basis"`
	DateAcquired string  `json:"date_acquired"`
	ID           int     `json:"id"`
	Quantity     float64 `json:"quantity"`
	Symbol       string  `json:"symbol"`
}
