/*
loan.go - Amortizing-loan payment and repayment schedule

PURPOSE:
  Computes the fixed monthly payment for an amortizing loan and expands it
  into a month-by-month repayment schedule. Validation failures carry a
  specific reason (amount/rate/term/term-exceeds-max) in declaration order:
  the first failing check wins.

FORMULA:
  r = annualRate / 100 / 12, n = termYears * 12
  payment = amount * r * (1+r)^n / ((1+r)^n - 1)
  Zero-rate loans degenerate to payment = amount / n with no interest.

SCHEDULE TERMINATION:
  The schedule stops as soon as the remaining balance drops to or below
  one cent. Float drift can otherwise produce trailing near-zero rows.

SEE ALSO:
  - types.go: LoanInput, LoanCalculation, AmortizationEntry, LoanTypes
  - errors.go: ValidationError reasons
*/
package finance

import (
	"fmt"
	"math"
)

// scheduleEpsilon is the remaining-balance cutoff for schedule rows.
const scheduleEpsilon = 0.01

// ComputeLoan validates the input and computes the fixed monthly payment.
// Checks run in order: amount > 0, rate >= 0, term > 0, term <= max.
// Nothing is rounded; presentation rounding is the caller's concern.
func ComputeLoan(input LoanInput) (LoanCalculation, error) {
	if err := validateLoan(input); err != nil {
		return LoanCalculation{}, err
	}

	n := input.TermYears * 12

	// Interest-free: straight division.
	if input.AnnualRatePercent == 0 {
		return LoanCalculation{
			MonthlyPayment: input.Amount / n,
			TotalPayment:   input.Amount,
			TotalInterest:  0,
		}, nil
	}

	r := input.AnnualRatePercent / 100 / 12
	growth := math.Pow(1+r, n)
	payment := input.Amount * r * growth / (growth - 1)
	total := payment * n

	return LoanCalculation{
		MonthlyPayment: payment,
		TotalPayment:   total,
		TotalInterest:  total - input.Amount,
	}, nil
}

// AmortizationSchedule expands a computed monthly payment into per-month
// rows. Call only after ComputeLoan succeeded for the same input; the
// schedule is recomputable and yields identical rows on every call.
func AmortizationSchedule(input LoanInput, monthlyPayment float64) []AmortizationEntry {
	if input.Amount <= 0 || input.AnnualRatePercent < 0 || input.TermYears <= 0 {
		return nil
	}

	r := input.AnnualRatePercent / 100 / 12
	months := int(input.TermYears * 12)
	remaining := input.Amount

	schedule := make([]AmortizationEntry, 0, months)
	for month := 1; month <= months; month++ {
		interest := remaining * r
		principal := monthlyPayment - interest
		remaining = math.Max(0, remaining-principal)

		schedule = append(schedule, AmortizationEntry{
			Month:            month,
			Payment:          monthlyPayment,
			PrincipalPortion: principal,
			InterestPortion:  interest,
			RemainingBalance: remaining,
		})

		if remaining <= scheduleEpsilon {
			break
		}
	}

	return schedule
}

func validateLoan(input LoanInput) error {
	if !isFinite(input.Amount) || !isFinite(input.AnnualRatePercent) || !isFinite(input.TermYears) {
		return invalid(ReasonAmountNonPositive, "inputs must be finite numbers")
	}
	if input.Amount <= 0 {
		return invalid(ReasonAmountNonPositive, "loan amount must be greater than 0")
	}
	if input.AnnualRatePercent < 0 {
		return invalid(ReasonRateNegative, "interest rate cannot be negative")
	}
	if input.TermYears <= 0 {
		return invalid(ReasonTermNonPositive, "tenure must be greater than 0")
	}
	if input.MaxTermYears > 0 && input.TermYears > float64(input.MaxTermYears) {
		return invalid(ReasonTermExceedsMax,
			fmt.Sprintf("tenure cannot exceed %d years", input.MaxTermYears))
	}
	return nil
}
