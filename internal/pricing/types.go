package pricing

import (
	"fmt"
	"strings"
	"time"
)

// RuleType decides how a rule's Value is read by the engine.
type RuleType string

const (
	RuleDiscount   RuleType = "discount"
	RuleSurcharge  RuleType = "surcharge"
	RuleMultiplier RuleType = "multiplier"
)

// Scope selects when a rule applies.
type Scope string

const (
	ScopeSrinagar        Scope = "srinagar"
	ScopeOutsideSrinagar Scope = "outside_srinagar"
	ScopeWeekend         Scope = "weekend"
	ScopeCustom          Scope = "custom"
)

// Rule is the engine's view of a stored price rule.
type Rule struct {
	ID       string   `json:"id"`
	RuleName string   `json:"rule_name"`
	Type     RuleType `json:"type"`
	Scope    Scope    `json:"scope"`
	Value    float64  `json:"value"`
	Active   bool     `json:"active"`
}

// Adjustment is one applied rule's signed contribution.
type Adjustment struct {
	RuleID   string  `json:"ruleId"`
	RuleName string  `json:"rule_name"`
	Delta    float64 `json:"delta"`
}

// Estimate is the priced breakdown returned to callers.
type Estimate struct {
	Base           float64      `json:"base"`
	PerKmComponent float64      `json:"perKmComponent"`
	Adjustments    []Adjustment `json:"adjustments"`
	Total          int64        `json:"total"`
}

// Input carries everything one evaluation needs. Rules are applied in slice order.
type Input struct {
	Base  float64
	PerKm float64
	Kms   float64
	Rules []Rule
	Date  time.Time
	Scope Scope
}

func ParseRuleType(s string) (RuleType, error) {
	switch t := RuleType(strings.TrimSpace(s)); t {
	case RuleDiscount, RuleSurcharge, RuleMultiplier:
		return t, nil
	}
	return "", fmt.Errorf("invalid rule type %q", s)
}

func ParseScope(s string) (Scope, error) {
	switch sc := Scope(strings.TrimSpace(s)); sc {
	case ScopeSrinagar, ScopeOutsideSrinagar, ScopeWeekend, ScopeCustom:
		return sc, nil
	}
	return "", fmt.Errorf("invalid scope %q", s)
}

// ParseTripScope accepts only the geographic scopes a trip can be classified into.
func ParseTripScope(s string) (Scope, error) {
	switch sc := Scope(strings.TrimSpace(s)); sc {
	case ScopeSrinagar, ScopeOutsideSrinagar:
		return sc, nil
	}
	return "", fmt.Errorf("invalid trip scope %q", s)
}
