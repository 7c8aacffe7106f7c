package pricing

import (
	"math"
	"time"
)

// CustomPolicy controls whether rules scoped "custom" match the generic matcher.
type CustomPolicy int

const (
	// CustomAlways applies custom-scoped rules to every trip.
	CustomAlways CustomPolicy = iota
	// CustomNever leaves custom-scoped rules out of automatic evaluation.
	CustomNever
)

// DefaultCustomPolicy is the policy used by Apply.
const DefaultCustomPolicy = CustomAlways

// Engine evaluates price rules. The zero value uses CustomAlways.
type Engine struct {
	CustomPolicy CustomPolicy
}

// Apply evaluates in with DefaultCustomPolicy.
func Apply(in Input) Estimate {
	return Engine{CustomPolicy: DefaultCustomPolicy}.Apply(in)
}

// Apply computes the estimate for in. Percentage rules compound on the running
// total in the order given; only the final total is rounded.
func (e Engine) Apply(in Input) Estimate {
	base := math.Max(0, in.Base)
	perKmComponent := math.Max(0, in.PerKm) * math.Max(0, in.Kms)
	running := base + perKmComponent
	weekend := IsWeekend(in.Date)

	adjustments := make([]Adjustment, 0, len(in.Rules))
	for _, rule := range in.Rules {
		if !rule.Active || !e.matches(rule.Scope, in.Scope, weekend) {
			continue
		}
		if math.IsNaN(rule.Value) || math.IsInf(rule.Value, 0) {
			continue
		}

		var delta float64
		switch rule.Type {
		case RuleDiscount, RuleSurcharge:
			delta = running * rule.Value
			running += delta
		case RuleMultiplier:
			if rule.Value <= 0 {
				continue
			}
			next := running * rule.Value
			delta = next - running
			running = next
		default:
			continue
		}
		adjustments = append(adjustments, Adjustment{RuleID: rule.ID, RuleName: rule.RuleName, Delta: delta})
	}

	return Estimate{
		Base:           base,
		PerKmComponent: perKmComponent,
		Adjustments:    adjustments,
		Total:          roundTotal(running),
	}
}

func (e Engine) matches(ruleScope, tripScope Scope, weekend bool) bool {
	switch ruleScope {
	case ScopeWeekend:
		return weekend
	case ScopeCustom:
		return e.CustomPolicy == CustomAlways
	case ScopeSrinagar, ScopeOutsideSrinagar:
		return ruleScope == tripScope
	}
	return false
}

// IsWeekend reports whether t falls on a Saturday or Sunday in UTC.
func IsWeekend(t time.Time) bool {
	switch t.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

// Reconciles reports whether e's breakdown sums to its total.
func Reconciles(e Estimate) bool {
	sum := e.Base + e.PerKmComponent
	for _, a := range e.Adjustments {
		sum += a.Delta
	}
	return roundTotal(sum) == e.Total
}

// roundTotal floors at zero and saturates at math.MaxInt64.
func roundTotal(v float64) int64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	r := math.Round(v)
	if r >= float64(math.MaxInt64) {
		return math.MaxInt64
	}
	return int64(r)
}
