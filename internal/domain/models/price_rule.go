package models

import (
	"time"

	"valleycars/internal/pricing"
)

// PriceRule is a stored pricing adjustment.
type PriceRule struct {
	ID        string           `json:"id"`
	RuleName  string           `json:"rule_name"`
	Type      pricing.RuleType `json:"type"`
	Scope     pricing.Scope    `json:"scope"`
	Value     float64          `json:"value"`
	Active    bool             `json:"active"`
	CreatedAt time.Time        `json:"created_at"`
}

func (r PriceRule) ToEngineRule() pricing.Rule {
	return pricing.Rule{
		ID:       r.ID,
		RuleName: r.RuleName,
		Type:     r.Type,
		Scope:    r.Scope,
		Value:    r.Value,
		Active:   r.Active,
	}
}

// EngineRules converts rules preserving their order.
func EngineRules(rules []PriceRule) []pricing.Rule {
	out := make([]pricing.Rule, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.ToEngineRule())
	}
	return out
}
