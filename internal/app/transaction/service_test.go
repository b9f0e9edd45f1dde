package transaction

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeTransactionRepo struct {
	transactions map[uint64]*Transaction
	nextID       uint64
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[uint64]*Transaction)}
}

func (f *fakeTransactionRepo) CreateTransaction(tx *Transaction) error {
	f.nextID++
	tx.ID = f.nextID
	f.transactions[tx.ID] = tx
	return nil
}

func (f *fakeTransactionRepo) GetTransactionByID(id uint64) (*Transaction, error) {
	tx, ok := f.transactions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tx, nil
}

func (f *fakeTransactionRepo) ListTransactions(filter Filter) ([]*Transaction, error) {
	var out []*Transaction
	for id := f.nextID; id >= 1; id-- {
		tx, ok := f.transactions[id]
		if !ok {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && tx.UserID != filter.UserID {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (f *fakeTransactionRepo) UpdateStatus(id uint64, status string) error {
	tx, ok := f.transactions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	tx.Status = status
	return nil
}

func TestService_CreateTransactionDefaults(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := NewService(repo, zap.NewNop())

	tx, err := svc.CreateTransaction(context.Background(), "user-1", CreateTransactionRequest{
		BaseCurrency:    "USD",
		TargetCurrency:  "EUR",
		Amount:          500,
		ConvertedAmount: 450,
		Fee:             20,
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	if tx.Type != "Exchange" {
		t.Errorf("Type = %q, want the Exchange default", tx.Type)
	}
	if tx.Status != StatusPending {
		t.Errorf("Status = %q, want %q", tx.Status, StatusPending)
	}
	if tx.UserID != "user-1" {
		t.Errorf("UserID = %q, want the authenticated user", tx.UserID)
	}
}

func TestService_ListTransactionsFiltersByUser(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := NewService(repo, zap.NewNop())

	for _, userID := range []string{"user-1", "user-2", "user-1"} {
		if _, err := svc.CreateTransaction(context.Background(), userID, CreateTransactionRequest{
			BaseCurrency:    "USD",
			TargetCurrency:  "EUR",
			Amount:          500,
			ConvertedAmount: 450,
		}); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
	}

	mine, err := svc.ListTransactions(context.Background(), Filter{UserID: "user-1"})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 transactions for user-1, got %d", len(mine))
	}
	for _, tx := range mine {
		if tx.UserID != "user-1" {
			t.Errorf("filter leaked a foreign transaction: %+v", tx)
		}
	}

	all, err := svc.ListTransactions(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unfiltered list should return everything, got %d", len(all))
	}
}

func TestService_UpdateStatus(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.CreateTransaction(context.Background(), "user-1", CreateTransactionRequest{
		BaseCurrency:    "USD",
		TargetCurrency:  "EUR",
		Amount:          500,
		ConvertedAmount: 450,
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), created.ID, StatusApproved)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != StatusApproved {
		t.Errorf("Status = %q, want %q", updated.Status, StatusApproved)
	}

	if _, err := svc.UpdateStatus(context.Background(), 999, StatusApproved); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("error = %v, want ErrTransactionNotFound", err)
	}
}
