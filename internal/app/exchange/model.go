package exchange

import "time"

// RateOverride is an admin-managed rate that takes precedence over the
// external provider for one currency pair.
type RateOverride struct {
	ID             uint64    `json:"id" gorm:"primaryKey"`
	BaseCurrency   string    `json:"baseCurrency" gorm:"not null;uniqueIndex:idx_rate_pair"`
	TargetCurrency string    `json:"targetCurrency" gorm:"not null;uniqueIndex:idx_rate_pair"`
	Rate           float64   `json:"rate" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RatesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

type QuoteRequest struct {
	BaseCurrency   string  `json:"baseCurrency" binding:"required,len=3"`
	TargetCurrency string  `json:"targetCurrency" binding:"required,len=3"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
}

type Quote struct {
	BaseCurrency    string  `json:"baseCurrency"`
	TargetCurrency  string  `json:"targetCurrency"`
	Amount          float64 `json:"amount"`
	Rate            float64 `json:"rate"`
	ConvertedAmount float64 `json:"convertedAmount"`
	Fee             float64 `json:"fee"`
}

type UpsertOverrideRequest struct {
	BaseCurrency   string  `json:"baseCurrency" binding:"required,len=3"`
	TargetCurrency string  `json:"targetCurrency" binding:"required,len=3"`
	Rate           float64 `json:"rate" binding:"required,gt=0"`
}

type OverrideListResponse struct {
	Overrides []*RateOverride `json:"overrides"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
