package seeder

import (
	"time"

	"backend/internal/app/plan"
	"backend/internal/app/user"
	"backend/internal/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

func (s *Seeder) Seed() error {
	s.logger.Info("Running database seeders...")

	if err := s.seedPlans(); err != nil {
		return err
	}
	if err := s.seedAdmin(); err != nil {
		return err
	}

	s.logger.Info("Database seeders completed successfully")
	return nil
}

func (s *Seeder) seedPlans() error {
	var count int64
	s.db.Model(&plan.InvestmentPlan{}).Count(&count)
	if count > 0 {
		s.logger.Info("Investment plans already exist, skipping seed")
		return nil
	}

	now := time.Now().UTC()
	plans := []plan.InvestmentPlan{
		{
			Name:          "Basic Savings Plan",
			MaxInvestment: ptr(25000.0),
			MinMonthly:    50,
			ReturnRateMin: 0.01,
			ReturnRateMax: 0.02,
			TaxRate:       0,
			MonthlyFee:    0.002,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			Name:          "Growth Savings Plan",
			MaxInvestment: ptr(40000.0),
			MinMonthly:    100,
			ReturnRateMin: 0.03,
			ReturnRateMax: 0.06,
			TaxRate:       0.05,
			MonthlyFee:    0.004,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			Name:          "Advanced Portfolio Plan",
			MaxInvestment: nil,
			MinMonthly:    250,
			ReturnRateMin: 0.05,
			ReturnRateMax: 0.15,
			TaxRate:       0.15,
			MonthlyFee:    0.01,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}

	if err := s.db.Create(&plans).Error; err != nil {
		return err
	}

	s.logger.Info("Seeded investment plans", zap.Int("count", len(plans)))
	return nil
}

// seedAdmin guarantees the support desk exists: every client conversation is
// held with the oldest ADMIN account.
func (s *Seeder) seedAdmin() error {
	var count int64
	s.db.Model(&user.User{}).Where("role = ?", user.RoleAdmin).Count(&count)
	if count > 0 {
		s.logger.Info("Admin account already exists, skipping seed")
		return nil
	}

	hash, err := auth.HashPassword("ChangeMe123!")
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := user.User{
		ID:           uuid.NewString(),
		UserName:     "Administrator",
		Email:        "admin@portfolio.local",
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	s.logger.Info("Seeded admin account", zap.String("email", admin.Email))
	return nil
}

func ptr(v float64) *float64 {
	return &v
}
