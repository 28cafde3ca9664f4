/*
compound.go - Compound-interest growth projection

PURPOSE:
  Projects a savings balance year by year under monthly compounding with a
  fixed monthly contribution. Produces one row per year boundary, year 0
  through the horizon, splitting the balance into contributed capital and
  earned interest.

MODEL:
  monthlyRate = annualRate / 100 / 12
  Each month: balance = balance * (1 + monthlyRate) + monthlyContribution
  At each year boundary:
    contributions = principal + monthlyContribution * 12 * year
    interest      = balance - contributions

  So for every row, balance == contributions + interest exactly (by
  construction; float rounding keeps it within 1e-6 in practice).

SEE ALSO:
  - types.go: ProjectionInput, ProjectionPoint
  - retirement.go: analogous yearly iteration with employer match
*/
package finance

import (
	"fmt"
	"math"
)

// CompoundGrowth projects a recurring-contribution balance over the input
// horizon. The returned slice has length input.Years+1 (year 0 is the
// starting state). Side-effect free and fully deterministic.
func CompoundGrowth(input ProjectionInput) ([]ProjectionPoint, error) {
	if err := validateProjection(input); err != nil {
		return nil, err
	}

	monthlyRate := input.AnnualRatePercent / 100 / 12
	balance := input.Principal

	points := make([]ProjectionPoint, 0, input.Years+1)
	for year := 0; year <= input.Years; year++ {
		contributions := input.Principal + input.MonthlyContribution*12*float64(year)
		points = append(points, ProjectionPoint{
			Year:          year,
			Balance:       balance,
			Contributions: contributions,
			Interest:      balance - contributions,
		})

		// Advance to the next year boundary.
		for month := 0; month < 12; month++ {
			balance = balance*(1+monthlyRate) + input.MonthlyContribution
		}
	}

	return points, nil
}

func validateProjection(input ProjectionInput) error {
	if !isFinite(input.Principal) || !isFinite(input.MonthlyContribution) || !isFinite(input.AnnualRatePercent) {
		return invalid(ReasonAmountNonPositive, "inputs must be finite numbers")
	}
	if input.Principal < 0 {
		return invalid(ReasonAmountNonPositive, "principal cannot be negative")
	}
	if input.MonthlyContribution < 0 {
		return invalid(ReasonAmountNonPositive, "monthly contribution cannot be negative")
	}
	if input.AnnualRatePercent < 0 {
		return invalid(ReasonRateNegative, "interest rate cannot be negative")
	}
	if input.Years < 1 {
		return invalid(ReasonTermNonPositive, "projection horizon must be at least 1 year")
	}
	if input.MaxYears > 0 && input.Years > input.MaxYears {
		return invalid(ReasonTermExceedsMax,
			fmt.Sprintf("projection horizon cannot exceed %d years", input.MaxYears))
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
