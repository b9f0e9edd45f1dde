package plan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Horizons the calculator reports on, in years.
var projectionHorizons = []int{1, 3, 10}

const taxFreeProfitThreshold = 10000

var (
	ErrPlanNotFound  = errors.New("investment plan not found")
	ErrInvalidAmount = errors.New("amount outside the plan's limits")
)

type Service interface {
	GetAllPlans(ctx context.Context) ([]*InvestmentPlan, error)
	GetPlanByID(ctx context.Context, id uint64) (*InvestmentPlan, error)
	CreatePlan(ctx context.Context, req UpsertPlanRequest) (*InvestmentPlan, error)
	UpdatePlan(ctx context.Context, id uint64, req UpsertPlanRequest) (*InvestmentPlan, error)
	DeletePlan(ctx context.Context, id uint64) error
	Project(ctx context.Context, planID uint64, req ProjectionRequest) ([]Projection, error)
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

func (s *service) GetAllPlans(ctx context.Context) ([]*InvestmentPlan, error) {
	return s.repo.GetAllPlans()
}

func (s *service) GetPlanByID(ctx context.Context, id uint64) (*InvestmentPlan, error) {
	plan, err := s.repo.GetPlanByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return plan, nil
}

func (s *service) CreatePlan(ctx context.Context, req UpsertPlanRequest) (*InvestmentPlan, error) {
	now := time.Now().UTC()
	plan := &InvestmentPlan{
		Name:          req.Name,
		MaxInvestment: req.MaxInvestment,
		MinMonthly:    req.MinMonthly,
		ReturnRateMin: req.ReturnRateMin,
		ReturnRateMax: req.ReturnRateMax,
		TaxRate:       req.TaxRate,
		MonthlyFee:    req.MonthlyFee,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreatePlan(plan); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	s.logger.Infow("Investment plan created", "plan_id", plan.ID, "name", plan.Name)
	return plan, nil
}

func (s *service) UpdatePlan(ctx context.Context, id uint64, req UpsertPlanRequest) (*InvestmentPlan, error) {
	plan, err := s.GetPlanByID(ctx, id)
	if err != nil {
		return nil, err
	}

	plan.Name = req.Name
	plan.MaxInvestment = req.MaxInvestment
	plan.MinMonthly = req.MinMonthly
	plan.ReturnRateMin = req.ReturnRateMin
	plan.ReturnRateMax = req.ReturnRateMax
	plan.TaxRate = req.TaxRate
	plan.MonthlyFee = req.MonthlyFee
	plan.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdatePlan(plan); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	return plan, nil
}

func (s *service) DeletePlan(ctx context.Context, id uint64) error {
	if _, err := s.GetPlanByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeletePlan(id)
}

// Project compounds the investment over each reporting horizon using the
// midpoint of the plan's return-rate band.
func (s *service) Project(ctx context.Context, planID uint64, req ProjectionRequest) ([]Projection, error) {
	plan, err := s.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	if req.InitialInvestment <= 0 || req.MonthlyContribution < plan.MinMonthly {
		return nil, ErrInvalidAmount
	}
	if plan.MaxInvestment != nil && req.InitialInvestment > *plan.MaxInvestment {
		return nil, ErrInvalidAmount
	}

	projections := make([]Projection, 0, len(projectionHorizons))
	for _, years := range projectionHorizons {
		projections = append(projections, project(plan, req.InitialInvestment, req.MonthlyContribution, years))
	}
	return projections, nil
}

func project(plan *InvestmentPlan, initial, monthly float64, years int) Projection {
	annualRate := (plan.ReturnRateMin + plan.ReturnRateMax) / 2

	total := initial
	for i := 0; i < years; i++ {
		total += total*annualRate + monthly*12
		total -= total * plan.MonthlyFee
	}

	profit := total - (initial + monthly*12*float64(years))

	var taxes float64
	if profit > taxFreeProfitThreshold {
		taxes = profit * plan.TaxRate
	}
	fees := profit * plan.MonthlyFee

	return Projection{
		Years:       years,
		TotalAmount: round2(total),
		TotalProfit: round2(profit),
		Taxes:       round2(taxes),
		Fees:        round2(fees),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
