package transaction

import (
	"time"

	"gorm.io/gorm"
)

type Filter struct {
	Type   string
	Status string
	UserID string
}

type Repository interface {
	CreateTransaction(tx *Transaction) error
	GetTransactionByID(id uint64) (*Transaction, error)
	ListTransactions(filter Filter) ([]*Transaction, error)
	UpdateStatus(id uint64, status string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTransaction(tx *Transaction) error {
	return r.db.Create(tx).Error
}

func (r *repository) GetTransactionByID(id uint64) (*Transaction, error) {
	var tx Transaction
	err := r.db.Where("id = ?", id).First(&tx).Error
	return &tx, err
}

func (r *repository) ListTransactions(filter Filter) ([]*Transaction, error) {
	query := r.db.Model(&Transaction{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var transactions []*Transaction
	err := query.
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *repository) UpdateStatus(id uint64, status string) error {
	return r.db.Model(&Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}
