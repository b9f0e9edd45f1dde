package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type Service interface {
	CreateTransaction(ctx context.Context, userID string, req CreateTransactionRequest) (*Transaction, error)
	ListTransactions(ctx context.Context, filter Filter) ([]*Transaction, error)
	UpdateStatus(ctx context.Context, id uint64, status string) (*Transaction, error)
}

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Sugar(),
	}
}

func (s *service) CreateTransaction(ctx context.Context, userID string, req CreateTransactionRequest) (*Transaction, error) {
	txType := req.Type
	if txType == "" {
		txType = "Exchange"
	}

	now := time.Now().UTC()
	tx := &Transaction{
		UserID:          userID,
		Type:            txType,
		BaseCurrency:    req.BaseCurrency,
		TargetCurrency:  req.TargetCurrency,
		Amount:          req.Amount,
		ConvertedAmount: req.ConvertedAmount,
		Fee:             req.Fee,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateTransaction(tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.logger.Infow("Transaction created",
		"transaction_id", tx.ID,
		"user_id", userID,
		"type", tx.Type,
		"amount", tx.Amount,
	)
	return tx, nil
}

func (s *service) ListTransactions(ctx context.Context, filter Filter) ([]*Transaction, error) {
	transactions, err := s.repo.ListTransactions(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uint64, status string) (*Transaction, error) {
	if _, err := s.repo.GetTransactionByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if err := s.repo.UpdateStatus(id, status); err != nil {
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}

	s.logger.Infow("Transaction status updated", "transaction_id", id, "status", status)
	return s.repo.GetTransactionByID(id)
}
