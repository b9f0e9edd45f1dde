package plan

import "time"

// InvestmentPlan mirrors the products offered on the client dashboard.
// A nil MaxInvestment means the plan is uncapped.
type InvestmentPlan struct {
	ID            uint64    `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"unique;not null"`
	MaxInvestment *float64  `json:"maxInvestment,omitempty"`
	MinMonthly    float64   `json:"minMonthlyContribution" gorm:"not null"`
	ReturnRateMin float64   `json:"returnRateMin" gorm:"not null"`
	ReturnRateMax float64   `json:"returnRateMax" gorm:"not null"`
	TaxRate       float64   `json:"taxRate" gorm:"not null"`
	MonthlyFee    float64   `json:"monthlyFee" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type UpsertPlanRequest struct {
	Name          string   `json:"name" binding:"required"`
	MaxInvestment *float64 `json:"maxInvestment"`
	MinMonthly    float64  `json:"minMonthlyContribution" binding:"required,gt=0"`
	ReturnRateMin float64  `json:"returnRateMin" binding:"gte=0"`
	ReturnRateMax float64  `json:"returnRateMax" binding:"gte=0"`
	TaxRate       float64  `json:"taxRate" binding:"gte=0"`
	MonthlyFee    float64  `json:"monthlyFee" binding:"gte=0"`
}

type ProjectionRequest struct {
	InitialInvestment   float64 `json:"initialInvestment" binding:"required,gt=0"`
	MonthlyContribution float64 `json:"monthlyContribution" binding:"required,gt=0"`
}

// Projection is the compounded outcome over one horizon.
type Projection struct {
	Years       int     `json:"years"`
	TotalAmount float64 `json:"totalAmount"`
	TotalProfit float64 `json:"totalProfit"`
	Taxes       float64 `json:"taxes"`
	Fees        float64 `json:"fees"`
}

type PlanListResponse struct {
	Plans []*InvestmentPlan `json:"plans"`
}

type ProjectionResponse struct {
	Projections []Projection `json:"projections"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
