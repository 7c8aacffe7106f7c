package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"valleycars/internal/domain/models"
	"valleycars/internal/pricing"
	"valleycars/internal/utils"
)

// EstimateQuery is a validated estimate request, ready for the engine.
type EstimateQuery struct {
	CarID string
	Kms   float64
	Scope pricing.Scope
	Date  time.Time
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParseCarPayload validates and normalizes an admin car body.
func ParseCarPayload(p CarPayload, requireID bool) (models.Car, error) {
	id := strings.TrimSpace(p.ID)
	if requireID && id == "" {
		return models.Car{}, ValidationError{Field: "id", Msg: "car id is required"}
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		return models.Car{}, ValidationError{Field: "name", Msg: "car name is required"}
	}

	category := models.CategorySedan
	if c := strings.TrimSpace(p.Category); c != "" {
		category = models.CarCategory(strings.ToLower(c))
	}
	if !category.Valid() {
		return models.Car{}, ValidationError{Field: "category", Msg: "invalid category"}
	}

	if !p.BasePrice.Set || p.BasePrice.Invalid || !finite(p.BasePrice.Value) || p.BasePrice.Value < 0 {
		return models.Car{}, ValidationError{Field: "base_price", Msg: "base_price must be a non-negative number"}
	}
	perKm := 0.0
	if p.PerKm.Set {
		if p.PerKm.Invalid || !finite(p.PerKm.Value) || p.PerKm.Value < 0 {
			return models.Car{}, ValidationError{Field: "per_km", Msg: "per_km must be a non-negative number"}
		}
		perKm = p.PerKm.Value
	}

	var image *string
	if p.ImageURL != nil {
		if s := strings.TrimSpace(*p.ImageURL); s != "" {
			image = &s
		}
	}

	active := true
	if p.Active != nil {
		active = *p.Active
	}

	return models.Car{
		ID:        id,
		Name:      name,
		Category:  category,
		BasePrice: int64(math.Round(p.BasePrice.Value)),
		PerKm:     int64(math.Round(perKm)),
		ImageURL:  image,
		Active:    active,
	}, nil
}

// ParsePriceRulePayload validates an admin rule body. Multipliers must be
// positive. With strictSigns, discounts must be <= 0 and surcharges >= 0;
// the engine itself applies whatever signed value is stored.
func ParsePriceRulePayload(p PriceRulePayload, requireID, strictSigns bool) (models.PriceRule, error) {
	id := strings.TrimSpace(p.ID)
	if requireID && id == "" {
		return models.PriceRule{}, ValidationError{Field: "id", Msg: "rule id is required"}
	}

	name := strings.TrimSpace(p.RuleName)
	if name == "" {
		return models.PriceRule{}, ValidationError{Field: "rule_name", Msg: "rule_name is required"}
	}

	ruleType, err := pricing.ParseRuleType(p.Type)
	if err != nil {
		return models.PriceRule{}, ValidationError{Field: "type", Msg: "invalid type", Err: err}
	}
	scope, err := pricing.ParseScope(p.Scope)
	if err != nil {
		return models.PriceRule{}, ValidationError{Field: "scope", Msg: "invalid scope", Err: err}
	}

	if !p.Value.Set || p.Value.Invalid || !finite(p.Value.Value) {
		return models.PriceRule{}, ValidationError{Field: "value", Msg: "value must be a number"}
	}
	value := p.Value.Value

	switch {
	case ruleType == pricing.RuleMultiplier && value <= 0:
		return models.PriceRule{}, ValidationError{Field: "value", Msg: "multiplier must be greater than zero"}
	case strictSigns && ruleType == pricing.RuleDiscount && value > 0:
		return models.PriceRule{}, ValidationError{Field: "value", Msg: "discount value must not be positive"}
	case strictSigns && ruleType == pricing.RuleSurcharge && value < 0:
		return models.PriceRule{}, ValidationError{Field: "value", Msg: "surcharge value must not be negative"}
	}

	active := true
	if p.Active != nil {
		active = *p.Active
	}

	return models.PriceRule{
		ID:       id,
		RuleName: name,
		Type:     ruleType,
		Scope:    scope,
		Value:    value,
		Active:   active,
	}, nil
}

// MaxEstimateKms caps the distance accepted for an estimate.
const MaxEstimateKms = 100000

// ParseEstimateRequest validates an estimate body. An explicit scope wins;
// otherwise the scope is classified from pickup/dropoff, defaulting to srinagar.
func ParseEstimateRequest(req EstimateRequest, area pricing.ServiceArea, now time.Time) (EstimateQuery, error) {
	carID := strings.TrimSpace(req.CarID)
	if carID == "" {
		return EstimateQuery{}, ValidationError{Field: "carId", Msg: "carId is required"}
	}

	kms := 0.0
	if req.Kms.Set {
		if req.Kms.Invalid || !finite(req.Kms.Value) || req.Kms.Value < 0 {
			return EstimateQuery{}, ValidationError{Field: "kms", Msg: "kms must be a non-negative number"}
		}
		if req.Kms.Value > MaxEstimateKms {
			return EstimateQuery{}, ValidationError{Field: "kms", Msg: fmt.Sprintf("kms must not exceed %d", MaxEstimateKms)}
		}
		kms = req.Kms.Value
	}

	var scope pricing.Scope
	switch {
	case strings.TrimSpace(req.Scope) != "":
		sc, err := pricing.ParseTripScope(req.Scope)
		if err != nil {
			return EstimateQuery{}, ValidationError{Field: "scope", Msg: "scope must be srinagar or outside_srinagar", Err: err}
		}
		scope = sc
	case strings.TrimSpace(req.Pickup) != "" || strings.TrimSpace(req.Dropoff) != "":
		scope = area.Classify(req.Pickup, req.Dropoff)
	default:
		scope = pricing.ScopeSrinagar
	}

	date := now
	if strings.TrimSpace(req.DateISO) != "" {
		d, err := utils.ParseInstant(req.DateISO)
		if err != nil {
			return EstimateQuery{}, ValidationError{Field: "dateISO", Msg: "invalid dateISO", Err: err}
		}
		date = d
	}

	return EstimateQuery{CarID: carID, Kms: kms, Scope: scope, Date: date}, nil
}
