package finance_test

import (
	"errors"
	"math"
	"testing"

	"github.com/financegpt/finance-engine/finance"
)

// =============================================================================
// PAYMENT FORMULA TESTS
// =============================================================================

func TestComputeLoan_StandardAmortization(t *testing.T) {
	// GIVEN: 500,000 at 8.5% over 20 years (home loan, max 30)
	// WHEN: Computing the monthly payment
	// THEN: Payment matches the closed-form amortization formula to 2dp

	calc, err := finance.ComputeLoan(finance.LoanInput{
		Amount:            500000,
		AnnualRatePercent: 8.5,
		TermYears:         20,
		MaxTermYears:      30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(calc.MonthlyPayment-4339.12) > 0.01 {
		t.Errorf("expected monthly payment 4339.12, got %.2f", calc.MonthlyPayment)
	}
	if math.Abs(calc.TotalPayment-calc.MonthlyPayment*240) > 1e-6 {
		t.Errorf("total payment should be payment * n")
	}
	if math.Abs(calc.TotalInterest-(calc.TotalPayment-500000)) > 1e-6 {
		t.Errorf("total interest should be total payment minus principal")
	}
}

func TestComputeLoan_ZeroRate(t *testing.T) {
	// GIVEN: An interest-free loan
	// WHEN: Computing the payment
	// THEN: payment * n == amount exactly, zero interest

	calc, err := finance.ComputeLoan(finance.LoanInput{
		Amount:            12000,
		AnnualRatePercent: 0,
		TermYears:         5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calc.TotalInterest != 0 {
		t.Errorf("expected zero interest, got %v", calc.TotalInterest)
	}
	if math.Abs(calc.MonthlyPayment*60-12000) > 1e-9 {
		t.Errorf("expected payment*n == amount, got %v", calc.MonthlyPayment*60)
	}
}

// =============================================================================
// VALIDATION TESTS - First failing check wins, in declaration order
// =============================================================================

func TestComputeLoan_ValidationOrder(t *testing.T) {
	cases := []struct {
		name  string
		input finance.LoanInput
		want  finance.Reason
	}{
		{
			name:  "non-positive amount",
			input: finance.LoanInput{Amount: 0, AnnualRatePercent: 8, TermYears: 10},
			want:  finance.ReasonAmountNonPositive,
		},
		{
			name:  "negative rate",
			input: finance.LoanInput{Amount: 1000, AnnualRatePercent: -1, TermYears: 10},
			want:  finance.ReasonRateNegative,
		},
		{
			name:  "non-positive term",
			input: finance.LoanInput{Amount: 1000, AnnualRatePercent: 8, TermYears: 0},
			want:  finance.ReasonTermNonPositive,
		},
		{
			name:  "term exceeds product max",
			input: finance.LoanInput{Amount: 500000, AnnualRatePercent: 8.5, TermYears: 35, MaxTermYears: 30},
			want:  finance.ReasonTermExceedsMax,
		},
		{
			name:  "amount checked before rate",
			input: finance.LoanInput{Amount: -5, AnnualRatePercent: -1, TermYears: -1},
			want:  finance.ReasonAmountNonPositive,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := finance.ComputeLoan(tc.input)
			var verr *finance.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Reason != tc.want {
				t.Errorf("expected reason %q, got %q", tc.want, verr.Reason)
			}
			if !errors.Is(err, finance.ErrInvalidInput) {
				t.Errorf("validation errors must unwrap to ErrInvalidInput")
			}
		})
	}
}

// =============================================================================
// AMORTIZATION SCHEDULE TESTS
// =============================================================================

func TestAmortizationSchedule_BalanceReachesZero(t *testing.T) {
	// GIVEN: A valid loan and its computed payment
	// WHEN: Expanding the repayment schedule
	// THEN: Balance is non-increasing and ends at <= 0.01

	input := finance.LoanInput{Amount: 250000, AnnualRatePercent: 6.5, TermYears: 15, MaxTermYears: 30}
	calc, err := finance.ComputeLoan(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	schedule := finance.AmortizationSchedule(input, calc.MonthlyPayment)
	if len(schedule) == 0 {
		t.Fatal("expected a non-empty schedule")
	}

	prev := input.Amount
	for _, row := range schedule {
		if row.RemainingBalance > prev+1e-9 {
			t.Fatalf("balance increased at month %d: %v -> %v", row.Month, prev, row.RemainingBalance)
		}
		if math.Abs(row.Payment-(row.PrincipalPortion+row.InterestPortion)) > 1e-6 {
			t.Fatalf("month %d: payment != principal + interest", row.Month)
		}
		prev = row.RemainingBalance
	}

	final := schedule[len(schedule)-1].RemainingBalance
	if final > 0.01 {
		t.Errorf("expected final balance <= 0.01, got %v", final)
	}
}

func TestAmortizationSchedule_Restartable(t *testing.T) {
	// Two runs over identical input must yield identical rows.

	input := finance.LoanInput{Amount: 30000, AnnualRatePercent: 9, TermYears: 4, MaxTermYears: 7}
	calc, err := finance.ComputeLoan(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := finance.AmortizationSchedule(input, calc.MonthlyPayment)
	second := finance.AmortizationSchedule(input, calc.MonthlyPayment)

	if len(first) != len(second) {
		t.Fatalf("schedule lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("row %d differs between runs", i)
		}
	}
}

func TestAmortizationSchedule_InvalidInputYieldsNoRows(t *testing.T) {
	if rows := finance.AmortizationSchedule(finance.LoanInput{Amount: -1, TermYears: 10}, 100); rows != nil {
		t.Errorf("expected nil schedule for invalid input, got %d rows", len(rows))
	}
}
