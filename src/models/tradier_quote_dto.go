package models

type TradierQuoteDTO struct {
	Symbol           string  `json:"symbol"`
	Description      string  `json:"description"`
	Exch             string  `json:"exch"`
	Type             string  `json:"type"`
	Last             float64 `json:"last"`
	Change           float64 `json:"change"`
	Volume           int     `json:"volume"`
	Open             float64 `json:"open"`
	High             float64 `json:"high"`
	Low              float64 `json:"low"`
	Close            float64 `json:"close"`
	Bid              float64 `json:"bid"`
	Ask              float64 `json:"ask"`
	ChangePercentage float64 `json:"change_percentage"`
	PrevClose        float64 `json:"prevclose"`
	TradeDate        int64   `json:"trade_date"`
}
