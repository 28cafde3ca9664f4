/*
retirement.go - Retirement projection and readiness classification

PURPOSE:
  Projects retirement savings from the current age to the retirement age,
  year by year, including an employer match capped by the employee's own
  contribution. The summary applies two fixed heuristics:

  4% RULE:
    A portfolio can sustainably fund 4% of its value per year, so the
    projected monthly retirement income is totalValue * 0.04 / 12.

  25x EXPENSES TARGET:
    Retirement is "funded" at 25x annual expenses, with expenses assumed
    to be 80% of current income. Readiness compares the projected value
    against currentIncome * 0.8 * 25:
      >= 100%  On Track
      >=  75%  Good Progress
      else     Needs Improvement

  The shortfall compares the 4%-rule income against 80% of current monthly
  income compounded by inflation over the projection horizon.

  Both heuristics are deliberate design constants, not tunables.

SEE ALSO:
  - compound.go: the simpler yearly iteration this mirrors
  - types.go: RetirementInput, RetirementProjectionRow, RetirementSummary
*/
package finance

import "math"

const (
	// withdrawalRate is the 4%-rule sustainable annual withdrawal fraction.
	withdrawalRate = 0.04

	// expenseRatio assumes retirement expenses at 80% of working income.
	expenseRatio = 0.8

	// targetMultiple is the 25x-annual-expenses funding target.
	targetMultiple = 25
)

// RetirementProjection projects savings growth to retirement age and derives
// the summary heuristics. The row slice covers year 0 (current age) through
// the retirement age inclusive.
func RetirementProjection(input RetirementInput) ([]RetirementProjectionRow, RetirementSummary, error) {
	if err := validateRetirement(input); err != nil {
		return nil, RetirementSummary{}, err
	}

	horizon := input.RetirementAge - input.CurrentAge
	annualContribution := input.MonthlyContribution * 12
	employerMatch := math.Min(input.CurrentIncome*input.EmployerMatchPercent/100, annualContribution)

	totalValue := input.CurrentSavings
	rows := make([]RetirementProjectionRow, 0, horizon+1)

	for year := 0; year <= horizon; year++ {
		var interestEarned float64
		if year > 0 {
			interestEarned = totalValue * input.ExpectedReturnPercent / 100
			totalValue += interestEarned + annualContribution + employerMatch
		}

		rows = append(rows, RetirementProjectionRow{
			Age:                input.CurrentAge + year,
			TotalValue:         totalValue,
			AnnualContribution: annualContribution + employerMatch,
			EmployerMatch:      employerMatch,
			InterestEarned:     interestEarned,
		})
	}

	summary := summarize(input, totalValue, horizon)
	return rows, summary, nil
}

func summarize(input RetirementInput, totalValue float64, horizon int) RetirementSummary {
	monthlyIncome := totalValue * withdrawalRate / 12

	// 80% of today's monthly income, inflated over the horizon.
	targetMonthly := input.CurrentIncome * expenseRatio / 12 *
		math.Pow(1+input.InflationRatePercent/100, float64(horizon))

	targetAmount := input.CurrentIncome * expenseRatio * targetMultiple
	readinessPct := 100.0
	if targetAmount > 0 {
		readinessPct = math.Min(totalValue/targetAmount*100, 100)
	}

	status := ReadinessNeedsImprovement
	switch {
	case readinessPct >= 100:
		status = ReadinessOnTrack
	case readinessPct >= 75:
		status = ReadinessGoodProgress
	}

	return RetirementSummary{
		TotalAtRetirement:       totalValue,
		MonthlyRetirementIncome: monthlyIncome,
		TargetMonthlyIncome:     targetMonthly,
		Shortfall:               math.Max(0, targetMonthly-monthlyIncome),
		ReadinessPercent:        readinessPct,
		Readiness:               status,
	}
}

func validateRetirement(input RetirementInput) error {
	for _, f := range []float64{
		input.CurrentSavings, input.MonthlyContribution, input.EmployerMatchPercent,
		input.ExpectedReturnPercent, input.CurrentIncome, input.InflationRatePercent,
	} {
		if !isFinite(f) {
			return invalid(ReasonAmountNonPositive, "inputs must be finite numbers")
		}
	}
	if input.CurrentSavings < 0 || input.MonthlyContribution < 0 || input.CurrentIncome < 0 {
		return invalid(ReasonAmountNonPositive, "savings, contribution and income cannot be negative")
	}
	if input.ExpectedReturnPercent < 0 || input.EmployerMatchPercent < 0 || input.InflationRatePercent < 0 {
		return invalid(ReasonRateNegative, "rates cannot be negative")
	}
	if input.RetirementAge <= input.CurrentAge {
		return invalid(ReasonTermNonPositive, "retirement age must be greater than current age")
	}
	return nil
}
