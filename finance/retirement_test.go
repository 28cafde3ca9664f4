package finance_test

import (
	"errors"
	"math"
	"testing"

	"github.com/financegpt/finance-engine/finance"
)

func defaultRetirementInput() finance.RetirementInput {
	return finance.RetirementInput{
		CurrentAge:            30,
		RetirementAge:         65,
		CurrentSavings:        25000,
		MonthlyContribution:   500,
		EmployerMatchPercent:  3,
		ExpectedReturnPercent: 7,
		CurrentIncome:         75000,
		InflationRatePercent:  2.5,
	}
}

// =============================================================================
// PROJECTION TESTS
// =============================================================================

func TestRetirementProjection_DefaultScenario(t *testing.T) {
	// GIVEN: Age 30 to 65, 25k saved, 500/month, 3% match, 7% return
	// WHEN: Projecting to retirement
	// THEN: 36 rows, final value ~1.407M, 4%-rule income ~4,691/month

	rows, summary, err := finance.RetirementProjection(defaultRetirementInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 36 {
		t.Fatalf("expected 36 rows (ages 30..65), got %d", len(rows))
	}
	if rows[0].Age != 30 || rows[len(rows)-1].Age != 65 {
		t.Errorf("expected ages 30..65, got %d..%d", rows[0].Age, rows[len(rows)-1].Age)
	}
	if rows[0].TotalValue != 25000 {
		t.Errorf("year 0 must carry current savings, got %v", rows[0].TotalValue)
	}

	if math.Abs(summary.TotalAtRetirement-1407368.78) > 1 {
		t.Errorf("expected ~1,407,368.78 at retirement, got %.2f", summary.TotalAtRetirement)
	}
	if math.Abs(summary.MonthlyRetirementIncome-4691.23) > 0.01 {
		t.Errorf("expected ~4,691.23 monthly income, got %.2f", summary.MonthlyRetirementIncome)
	}
	if summary.Readiness != finance.ReadinessGoodProgress {
		t.Errorf("expected Good Progress at ~94%% readiness, got %q", summary.Readiness)
	}
	if summary.Shortfall <= 0 {
		t.Errorf("expected a positive shortfall against the inflated target")
	}
}

func TestRetirementProjection_EmployerMatchCappedByContribution(t *testing.T) {
	// GIVEN: A generous 50% match on a 200k income but only 100/month saved
	// WHEN: Projecting
	// THEN: Match never exceeds the employee's own annual contribution

	input := defaultRetirementInput()
	input.CurrentIncome = 200000
	input.EmployerMatchPercent = 50
	input.MonthlyContribution = 100

	rows, _, err := finance.RetirementProjection(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	own := 100.0 * 12
	for _, row := range rows {
		if row.EmployerMatch > own+1e-9 {
			t.Fatalf("age %d: match %v exceeds own contribution %v", row.Age, row.EmployerMatch, own)
		}
	}
}

func TestRetirementProjection_ValueGrowsEveryYear(t *testing.T) {
	rows, _, err := finance.RetirementProjection(defaultRetirementInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(rows); i++ {
		if rows[i].TotalValue <= rows[i-1].TotalValue {
			t.Fatalf("total value should grow with positive return and contributions (age %d)", rows[i].Age)
		}
	}
}

// =============================================================================
// READINESS CLASSIFICATION TESTS
// =============================================================================

func TestRetirementProjection_ReadinessOnTrack(t *testing.T) {
	// Saving aggressively against a modest income reaches the 25x target.

	input := defaultRetirementInput()
	input.CurrentIncome = 40000
	input.MonthlyContribution = 2000
	input.CurrentSavings = 100000

	_, summary, err := finance.RetirementProjection(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Readiness != finance.ReadinessOnTrack {
		t.Errorf("expected On Track, got %q (%.1f%%)", summary.Readiness, summary.ReadinessPercent)
	}
	if summary.ReadinessPercent != 100 {
		t.Errorf("readiness percent is capped at 100, got %v", summary.ReadinessPercent)
	}
}

func TestRetirementProjection_ReadinessNeedsImprovement(t *testing.T) {
	input := defaultRetirementInput()
	input.MonthlyContribution = 50
	input.CurrentSavings = 1000
	input.ExpectedReturnPercent = 3

	_, summary, err := finance.RetirementProjection(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Readiness != finance.ReadinessNeedsImprovement {
		t.Errorf("expected Needs Improvement, got %q", summary.Readiness)
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestRetirementProjection_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*finance.RetirementInput)
		want   finance.Reason
	}{
		{"retirement age not after current age", func(in *finance.RetirementInput) { in.RetirementAge = 30 }, finance.ReasonTermNonPositive},
		{"negative savings", func(in *finance.RetirementInput) { in.CurrentSavings = -1 }, finance.ReasonAmountNonPositive},
		{"negative return", func(in *finance.RetirementInput) { in.ExpectedReturnPercent = -2 }, finance.ReasonRateNegative},
		{"negative inflation", func(in *finance.RetirementInput) { in.InflationRatePercent = -1 }, finance.ReasonRateNegative},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := defaultRetirementInput()
			tc.mutate(&input)

			_, _, err := finance.RetirementProjection(input)
			var verr *finance.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Reason != tc.want {
				t.Errorf("expected reason %q, got %q", tc.want, verr.Reason)
			}
		})
	}
}
