package transaction

import "time"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type Transaction struct {
	ID              uint64    `json:"id" gorm:"primaryKey"`
	UserID          string    `json:"userId" gorm:"type:uuid;not null;index"`
	Type            string    `json:"type" gorm:"not null;default:'Exchange'"`
	BaseCurrency    string    `json:"baseCurrency" gorm:"not null"`
	TargetCurrency  string    `json:"targetCurrency" gorm:"not null"`
	Amount          float64   `json:"amount" gorm:"not null"`
	ConvertedAmount float64   `json:"convertedAmount" gorm:"not null"`
	Fee             float64   `json:"fee" gorm:"not null"`
	Status          string    `json:"status" gorm:"not null;default:'Pending'"`
	CreatedAt       time.Time `json:"timestamp"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateTransactionRequest struct {
	Type            string  `json:"type"`
	BaseCurrency    string  `json:"baseCurrency" binding:"required,len=3"`
	TargetCurrency  string  `json:"targetCurrency" binding:"required,len=3"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	ConvertedAmount float64 `json:"convertedAmount" binding:"required,gt=0"`
	Fee             float64 `json:"fee" binding:"gte=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Approved Rejected"`
}

type TransactionListResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
