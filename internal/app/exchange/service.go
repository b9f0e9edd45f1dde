package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"backend/internal/providers/redis"

	"go.uber.org/zap"
)

const (
	minExchangeAmount = 250
	maxExchangeAmount = 10000

	rateCachePrefix = "exchange:rates"
)

var (
	ErrAmountOutOfRange = fmt.Errorf("amount must be between %d and %d", minExchangeAmount, maxExchangeAmount)
	ErrUnknownCurrency  = errors.New("unknown currency code")
)

// RateFetcher is the external rate provider. *RateClient satisfies it.
type RateFetcher interface {
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}

type Service interface {
	// GetRates returns provider rates for a base currency with admin
	// overrides applied on top.
	GetRates(ctx context.Context, base string) (*RatesResponse, error)
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
	ListOverrides(ctx context.Context) ([]*RateOverride, error)
	UpsertOverride(ctx context.Context, req UpsertOverrideRequest) (*RateOverride, error)
	DeleteOverride(ctx context.Context, base, target string) error
}

type service struct {
	repo     Repository
	fetcher  RateFetcher
	redisP   *redis.RedisProvider
	logger   *zap.SugaredLogger
	cacheTTL time.Duration
}

func NewService(repo Repository, fetcher RateFetcher, redisP *redis.RedisProvider, logger *zap.Logger, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		fetcher:  fetcher,
		redisP:   redisP,
		logger:   logger.Sugar(),
		cacheTTL: cacheTTL,
	}
}

func (s *service) GetRates(ctx context.Context, base string) (*RatesResponse, error) {
	base = strings.ToUpper(base)

	rates, err := s.providerRates(ctx, base)
	if err != nil {
		return nil, err
	}

	overrides, err := s.repo.GetOverridesByBase(base)
	if err != nil {
		s.logger.Warnw("Failed to load rate overrides", "base", base, "error", err)
	} else {
		for _, o := range overrides {
			rates[o.TargetCurrency] = o.Rate
		}
	}

	return &RatesResponse{Base: base, Rates: rates}, nil
}

func (s *service) providerRates(ctx context.Context, base string) (map[string]float64, error) {
	cacheKey := fmt.Sprintf("%s:%s", rateCachePrefix, base)

	cached, err := s.redisP.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var rates map[string]float64
		if json.Unmarshal([]byte(cached), &rates) == nil {
			return rates, nil
		}
	}

	rates, err := s.fetcher.FetchRates(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("rate provider unavailable: %w", err)
	}

	if data, err := json.Marshal(rates); err == nil {
		s.redisP.SetEX(ctx, cacheKey, data, s.cacheTTL)
	}

	return rates, nil
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if req.Amount < minExchangeAmount || req.Amount > maxExchangeAmount {
		return nil, ErrAmountOutOfRange
	}

	resp, err := s.GetRates(ctx, req.BaseCurrency)
	if err != nil {
		return nil, err
	}

	target := strings.ToUpper(req.TargetCurrency)
	rate, ok := resp.Rates[target]
	if !ok {
		return nil, ErrUnknownCurrency
	}

	return &Quote{
		BaseCurrency:    resp.Base,
		TargetCurrency:  target,
		Amount:          req.Amount,
		Rate:            rate,
		ConvertedAmount: round2(req.Amount * rate),
		Fee:             round2(exchangeFee(req.Amount)),
	}, nil
}

// exchangeFee applies the tiered commission: 4% up to 500, 3% up to 2000,
// 2% above.
func exchangeFee(amount float64) float64 {
	switch {
	case amount <= 500:
		return amount * 0.04
	case amount <= 2000:
		return amount * 0.03
	default:
		return amount * 0.02
	}
}

func (s *service) ListOverrides(ctx context.Context) ([]*RateOverride, error) {
	return s.repo.GetAllOverrides()
}

func (s *service) UpsertOverride(ctx context.Context, req UpsertOverrideRequest) (*RateOverride, error) {
	now := time.Now().UTC()
	override := &RateOverride{
		BaseCurrency:   strings.ToUpper(req.BaseCurrency),
		TargetCurrency: strings.ToUpper(req.TargetCurrency),
		Rate:           req.Rate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.UpsertOverride(override); err != nil {
		return nil, fmt.Errorf("failed to upsert rate override: %w", err)
	}

	s.redisP.Del(ctx, fmt.Sprintf("%s:%s", rateCachePrefix, override.BaseCurrency))
	s.logger.Infow("Rate override saved",
		"base", override.BaseCurrency,
		"target", override.TargetCurrency,
		"rate", override.Rate,
	)
	return override, nil
}

func (s *service) DeleteOverride(ctx context.Context, base, target string) error {
	base = strings.ToUpper(base)
	if err := s.repo.DeleteOverride(base, strings.ToUpper(target)); err != nil {
		return fmt.Errorf("failed to delete rate override: %w", err)
	}
	s.redisP.Del(ctx, fmt.Sprintf("%s:%s", rateCachePrefix, base))
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
