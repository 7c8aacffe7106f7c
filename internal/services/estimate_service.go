package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"valleycars/internal/cache"
	intconfig "valleycars/internal/config"
	"valleycars/internal/domain"
	"valleycars/internal/domain/models"
	"valleycars/internal/pricing"
	"valleycars/internal/repositories"
	"valleycars/internal/utils"
)

// EstimateResult is what the estimate endpoint returns.
type EstimateResult struct {
	Estimate pricing.Estimate  `json:"estimate"`
	Car      models.CarSummary `json:"car"`
	Scope    pricing.Scope     `json:"scope"`
	Date     string            `json:"date"`
}

type EstimateService struct {
	CarRepo   repositories.CarRepository
	RuleRepo  repositories.PriceRuleRepository
	Rules     *cache.RuleCache
	Area      pricing.ServiceArea
	Now       func() time.Time
	RequestID string
	DB        *sql.DB
}

func (s EstimateService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s EstimateService) cars() repositories.CarRepository {
	if s.CarRepo.DB != nil {
		return s.CarRepo
	}
	return repositories.CarRepository{DB: s.db()}
}

func (s EstimateService) rules() repositories.PriceRuleRepository {
	if s.RuleRepo.DB != nil {
		return s.RuleRepo
	}
	return repositories.PriceRuleRepository{DB: s.db()}
}

func (s EstimateService) area() pricing.ServiceArea {
	if s.Area.Empty() {
		return pricing.NewServiceArea(pricing.DefaultSrinagarPins)
	}
	return s.Area
}

func (s EstimateService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return utils.NowUTC()
}

// ActiveRules returns the active rules in evaluation order, through the cache when configured.
func (s EstimateService) ActiveRules(ctx context.Context) ([]models.PriceRule, error) {
	return s.Rules.ActiveRules(ctx, s.rules().ListActive)
}

// Estimate validates req, resolves the car and runs the pricing engine.
// Unknown and inactive cars are both reported as not found.
func (s EstimateService) Estimate(ctx context.Context, req domain.EstimateRequest) (EstimateResult, error) {
	q, err := domain.ParseEstimateRequest(req, s.area(), s.now())
	if err != nil {
		return EstimateResult{}, err
	}

	car, err := s.cars().GetByID(ctx, q.CarID)
	if err != nil {
		return EstimateResult{}, err
	}
	if !car.Active {
		return EstimateResult{}, domain.NotFoundError{Resource: "car"}
	}

	rules, err := s.ActiveRules(ctx)
	if err != nil {
		return EstimateResult{}, err
	}

	est := pricing.Apply(pricing.Input{
		Base:  float64(car.BasePrice),
		PerKm: float64(car.PerKm),
		Kms:   q.Kms,
		Rules: models.EngineRules(rules),
		Date:  q.Date,
		Scope: q.Scope,
	})

	utils.LogEvent(s.RequestID, "pricing", "estimate",
		fmt.Sprintf("car_id=%s scope=%s kms=%.1f rules=%d applied=%d total=%d",
			car.ID, q.Scope, q.Kms, len(rules), len(est.Adjustments), est.Total))

	return EstimateResult{
		Estimate: est,
		Car:      car.Summary(),
		Scope:    q.Scope,
		Date:     q.Date.UTC().Format(time.RFC3339),
	}, nil
}
