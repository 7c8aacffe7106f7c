package pricing

import (
	"math"
	"testing"
	"time"
)

var (
	tuesday  = time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func rule(id string, t RuleType, s Scope, v float64) Rule {
	return Rule{ID: id, RuleName: id, Type: t, Scope: s, Value: v, Active: true}
}

func TestApply_NoRules(t *testing.T) {
	got := Apply(Input{Base: 10000, PerKm: 50, Kms: 20, Date: tuesday, Scope: ScopeSrinagar})
	if got.PerKmComponent != 1000 {
		t.Fatalf("perKmComponent = %v, want 1000", got.PerKmComponent)
	}
	if got.Total != 11000 {
		t.Fatalf("total = %d, want 11000", got.Total)
	}
	if got.Adjustments == nil || len(got.Adjustments) != 0 {
		t.Fatalf("adjustments should be an empty, non-nil slice, got %#v", got.Adjustments)
	}
}

func TestApply_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		in         Input
		wantTotal  int64
		wantDeltas []float64
	}{
		{
			name: "srinagar discount",
			in: Input{
				Base:  16000,
				Rules: []Rule{rule("d", RuleDiscount, ScopeSrinagar, -0.15)},
				Date:  tuesday,
				Scope: ScopeSrinagar,
			},
			wantTotal:  13600,
			wantDeltas: []float64{-2400},
		},
		{
			name: "outside surcharge",
			in: Input{
				Base:  16000,
				Rules: []Rule{rule("s", RuleSurcharge, ScopeOutsideSrinagar, 0.10)},
				Date:  tuesday,
				Scope: ScopeOutsideSrinagar,
			},
			wantTotal:  17600,
			wantDeltas: []float64{1600},
		},
		{
			name: "scope mismatch skips rule",
			in: Input{
				Base:  16000,
				Rules: []Rule{rule("d", RuleDiscount, ScopeSrinagar, -0.15)},
				Date:  tuesday,
				Scope: ScopeOutsideSrinagar,
			},
			wantTotal:  16000,
			wantDeltas: nil,
		},
		{
			name: "chained discount then surcharge compounds",
			in: Input{
				Base: 10000,
				Rules: []Rule{
					rule("d", RuleDiscount, ScopeSrinagar, -0.15),
					rule("s", RuleSurcharge, ScopeSrinagar, 0.10),
				},
				Date:  tuesday,
				Scope: ScopeSrinagar,
			},
			wantTotal:  9350,
			wantDeltas: []float64{-1500, 850},
		},
		{
			name: "multiplier scales running total",
			in: Input{
				Base:  10000,
				PerKm: 10,
				Kms:   100,
				Rules: []Rule{rule("m", RuleMultiplier, ScopeSrinagar, 1.10)},
				Date:  tuesday,
				Scope: ScopeSrinagar,
			},
			wantTotal:  12100,
			wantDeltas: []float64{1100},
		},
		{
			name: "multiplier of one is recorded with zero delta",
			in: Input{
				Base:  5000,
				Rules: []Rule{rule("m", RuleMultiplier, ScopeSrinagar, 1)},
				Date:  tuesday,
				Scope: ScopeSrinagar,
			},
			wantTotal:  5000,
			wantDeltas: []float64{0},
		},
		{
			name: "non-positive multipliers are skipped",
			in: Input{
				Base: 5000,
				Rules: []Rule{
					rule("zero", RuleMultiplier, ScopeSrinagar, 0),
					rule("neg", RuleMultiplier, ScopeSrinagar, -1.2),
				},
				Date:  tuesday,
				Scope: ScopeSrinagar,
			},
			wantTotal:  5000,
			wantDeltas: nil,
		},
		{
			name: "positive discount raises price",
			in: Input{
				Base:  1000,
				Rules: []Rule{rule("d", RuleDiscount, ScopeSrinagar, 0.2)},
				Date:  tuesday,
				Scope: ScopeSrinagar,
			},
			wantTotal:  1200,
			wantDeltas: []float64{200},
		},
		{
			name: "inactive rules are ignored",
			in: Input{
				Base: 1000,
				Rules: []Rule{{
					ID: "off", RuleName: "off", Type: RuleSurcharge, Scope: ScopeSrinagar, Value: 0.5, Active: false,
				}},
				Date:  tuesday,
				Scope: ScopeSrinagar,
			},
			wantTotal:  1000,
			wantDeltas: nil,
		},
		{
			name: "negative inputs are clamped",
			in: Input{
				Base:  -500,
				PerKm: -10,
				Kms:   40,
				Date:  tuesday,
				Scope: ScopeSrinagar,
			},
			wantTotal:  0,
			wantDeltas: nil,
		},
		{
			name: "total floors at zero",
			in: Input{
				Base:  10000,
				Rules: []Rule{rule("d", RuleDiscount, ScopeSrinagar, -1.5)},
				Date:  tuesday,
				Scope: ScopeSrinagar,
			},
			wantTotal:  0,
			wantDeltas: []float64{-15000},
		},
		{
			name: "rounding happens once on the final total",
			in: Input{
				Base: 999,
				Rules: []Rule{
					rule("a", RuleDiscount, ScopeSrinagar, -0.1),
					rule("b", RuleSurcharge, ScopeSrinagar, 0.05),
				},
				Date:  tuesday,
				Scope: ScopeSrinagar,
			},
			// 999 * 0.9 = 899.1, * 1.05 = 944.055
			wantTotal:  944,
			wantDeltas: []float64{-99.9, 44.955},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.in)
			if got.Total != tt.wantTotal {
				t.Fatalf("total = %d, want %d", got.Total, tt.wantTotal)
			}
			if len(got.Adjustments) != len(tt.wantDeltas) {
				t.Fatalf("adjustments = %d, want %d (%#v)", len(got.Adjustments), len(tt.wantDeltas), got.Adjustments)
			}
			for i, want := range tt.wantDeltas {
				if !approx(got.Adjustments[i].Delta, want) {
					t.Errorf("adjustment[%d].Delta = %v, want %v", i, got.Adjustments[i].Delta, want)
				}
			}
			if !Reconciles(got) {
				t.Errorf("breakdown does not reconcile: %#v", got)
			}
		})
	}
}

func TestApply_AdjustmentCarriesRuleIdentity(t *testing.T) {
	r := Rule{ID: "r-42", RuleName: "Srinagar Discount", Type: RuleDiscount, Scope: ScopeSrinagar, Value: -0.15, Active: true}
	got := Apply(Input{Base: 16000, Rules: []Rule{r}, Date: tuesday, Scope: ScopeSrinagar})
	if len(got.Adjustments) != 1 {
		t.Fatalf("expected one adjustment, got %d", len(got.Adjustments))
	}
	adj := got.Adjustments[0]
	if adj.RuleID != "r-42" || adj.RuleName != "Srinagar Discount" {
		t.Fatalf("unexpected adjustment identity: %#v", adj)
	}
}

func TestApply_WeekendRules(t *testing.T) {
	weekendSurcharge := rule("w", RuleSurcharge, ScopeWeekend, 0.2)

	tests := []struct {
		name  string
		date  time.Time
		scope Scope
		want  int64
	}{
		{"saturday srinagar", saturday, ScopeSrinagar, 12000},
		{"sunday outside", sunday, ScopeOutsideSrinagar, 12000},
		{"tuesday", tuesday, ScopeSrinagar, 10000},
		// 2026-10-17 03:00 in UTC+5:30 is still Friday 21:30 UTC.
		{"weekday in utc", time.Date(2026, 10, 17, 3, 0, 0, 0, time.FixedZone("IST", 5*3600+1800)), ScopeSrinagar, 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(Input{Base: 10000, Rules: []Rule{weekendSurcharge}, Date: tt.date, Scope: tt.scope})
			if got.Total != tt.want {
				t.Fatalf("total = %d, want %d", got.Total, tt.want)
			}
		})
	}
}

func TestIsWeekend(t *testing.T) {
	for d := 0; d < 7; d++ {
		day := time.Date(2026, 10, 18+d, 12, 0, 0, 0, time.UTC)
		want := day.Weekday() == time.Saturday || day.Weekday() == time.Sunday
		if got := IsWeekend(day); got != want {
			t.Errorf("IsWeekend(%s) = %v, want %v", day.Weekday(), got, want)
		}
	}
}

func TestApply_CustomScopePolicy(t *testing.T) {
	custom := rule("c", RuleSurcharge, ScopeCustom, 0.25)
	in := Input{Base: 8000, Rules: []Rule{custom}, Date: tuesday, Scope: ScopeSrinagar}

	always := Engine{CustomPolicy: CustomAlways}.Apply(in)
	if always.Total != 10000 || len(always.Adjustments) != 1 {
		t.Fatalf("CustomAlways: total=%d adjustments=%d, want 10000 and 1", always.Total, len(always.Adjustments))
	}

	never := Engine{CustomPolicy: CustomNever}.Apply(in)
	if never.Total != 8000 || len(never.Adjustments) != 0 {
		t.Fatalf("CustomNever: total=%d adjustments=%d, want 8000 and 0", never.Total, len(never.Adjustments))
	}

	if def := Apply(in); def.Total != always.Total {
		t.Fatalf("Apply should follow DefaultCustomPolicy (CustomAlways), got total %d", def.Total)
	}
}

func TestApply_OrderIsPreserved(t *testing.T) {
	a := rule("a", RuleDiscount, ScopeSrinagar, -0.15)
	b := rule("b", RuleSurcharge, ScopeSrinagar, 0.10)

	ab := Apply(Input{Base: 10000, Rules: []Rule{a, b}, Date: tuesday, Scope: ScopeSrinagar})
	ba := Apply(Input{Base: 10000, Rules: []Rule{b, a}, Date: tuesday, Scope: ScopeSrinagar})

	if ab.Adjustments[0].RuleID != "a" || ba.Adjustments[0].RuleID != "b" {
		t.Fatalf("adjustments not recorded in evaluation order")
	}
	// Each rule reads the already-adjusted total, so its delta depends on position.
	if approx(ab.Adjustments[1].Delta, ba.Adjustments[0].Delta) {
		t.Fatalf("surcharge delta should differ by position: %v vs %v", ab.Adjustments[1].Delta, ba.Adjustments[0].Delta)
	}
	if !approx(ba.Adjustments[0].Delta, 1000) || !approx(ba.Adjustments[1].Delta, -1650) {
		t.Fatalf("unexpected deltas for [b,a]: %#v", ba.Adjustments)
	}

	zeroA := rule("za", RuleDiscount, ScopeSrinagar, 0)
	zeroB := rule("zb", RuleSurcharge, ScopeSrinagar, 0)
	z1 := Apply(Input{Base: 10000, Rules: []Rule{zeroA, zeroB}, Date: tuesday, Scope: ScopeSrinagar})
	z2 := Apply(Input{Base: 10000, Rules: []Rule{zeroB, zeroA}, Date: tuesday, Scope: ScopeSrinagar})
	if z1.Total != z2.Total || z1.Adjustments[0].Delta != z2.Adjustments[0].Delta {
		t.Fatalf("zero-valued rules should be order independent")
	}
}

func TestApply_FloorAndPercentMix(t *testing.T) {
	rules := []Rule{
		rule("weekend", RuleSurcharge, ScopeWeekend, 0.2),
		rule("outside", RuleSurcharge, ScopeOutsideSrinagar, 0.1),
		rule("luxury", RuleMultiplier, ScopeCustom, 1.5),
		rule("local", RuleDiscount, ScopeSrinagar, -0.15),
	}
	got := Apply(Input{Base: 20000, PerKm: 25, Kms: 80, Rules: rules, Date: saturday, Scope: ScopeOutsideSrinagar})
	// 22000 * 1.2 = 26400, * 1.1 = 29040, * 1.5 = 43560
	if got.Total != 43560 {
		t.Fatalf("total = %d, want 43560", got.Total)
	}
	if len(got.Adjustments) != 3 {
		t.Fatalf("adjustments = %d, want 3", len(got.Adjustments))
	}
	if !Reconciles(got) {
		t.Fatalf("breakdown does not reconcile: %#v", got)
	}
}

func TestApply_SkipsNonFiniteValues(t *testing.T) {
	rules := []Rule{
		rule("nan", RuleSurcharge, ScopeSrinagar, math.NaN()),
		rule("inf", RuleMultiplier, ScopeSrinagar, math.Inf(1)),
	}
	got := Apply(Input{Base: 1000, Rules: rules, Date: tuesday, Scope: ScopeSrinagar})
	if got.Total != 1000 || len(got.Adjustments) != 0 {
		t.Fatalf("non-finite rule values should be skipped, got %#v", got)
	}
}

func TestApply_HugeDistanceSaturatesTotal(t *testing.T) {
	got := Apply(Input{Base: 16000, PerKm: 50, Kms: 1e300, Date: tuesday, Scope: ScopeSrinagar})
	if got.Total != math.MaxInt64 {
		t.Fatalf("total = %d, want %d", got.Total, int64(math.MaxInt64))
	}

	rules := []Rule{rule("double", RuleMultiplier, ScopeSrinagar, 2)}
	got = Apply(Input{Base: 16000, PerKm: 100, Kms: 1e17, Rules: rules, Date: tuesday, Scope: ScopeSrinagar})
	if got.Total != math.MaxInt64 || !Reconciles(got) {
		t.Fatalf("total should saturate and still reconcile, got %#v", got)
	}

	got = Apply(Input{Base: math.NaN(), Date: tuesday, Scope: ScopeSrinagar})
	if got.Total != 0 {
		t.Fatalf("NaN base should floor to zero, got %d", got.Total)
	}
}

func TestParseEnums(t *testing.T) {
	if _, err := ParseRuleType("multiplier"); err != nil {
		t.Fatalf("ParseRuleType: %v", err)
	}
	if _, err := ParseRuleType("percent"); err == nil {
		t.Fatalf("ParseRuleType should reject unknown types")
	}
	if _, err := ParseScope("custom"); err != nil {
		t.Fatalf("ParseScope: %v", err)
	}
	if _, err := ParseTripScope("weekend"); err == nil {
		t.Fatalf("ParseTripScope should reject weekend")
	}
	if sc, err := ParseTripScope(" outside_srinagar "); err != nil || sc != ScopeOutsideSrinagar {
		t.Fatalf("ParseTripScope trimmed = %q, %v", sc, err)
	}
}
