/*
Package finance provides the financial projection engine.

PURPOSE:
  Pure, deterministic calculators for compound-interest growth, loan
  amortization, and retirement projections. Every operation is a function
  over in-memory numbers: no I/O, no hidden state, no clocks. Calling the
  same operation twice with the same input always yields the same output.

KEY CONCEPTS IN THIS FILE (types.go):
  - ProjectionInput/ProjectionPoint: compound-growth inputs and yearly rows
  - LoanInput/LoanCalculation/AmortizationEntry: loan math
  - RetirementInput/RetirementProjectionRow/RetirementSummary
  - LoanType: per-product rate and tenure bounds (home, auto, ...)

NUMERIC SEMANTICS:
  All engine math uses float64. Nothing is rounded inside the engine;
  rounding to currency precision happens at the presentation boundary
  (see api/dto.go, which uses decimal for that).

SEE ALSO:
  - compound.go: compound growth projection
  - loan.go: payment formula and amortization schedule
  - retirement.go: retirement projection and readiness
  - errors.go: validation failure types
*/
package finance

// =============================================================================
// COMPOUND GROWTH
// =============================================================================

// ProjectionInput describes a recurring-contribution savings scenario.
type ProjectionInput struct {
	Principal           float64 // starting balance, >= 0
	MonthlyContribution float64 // added after each monthly compounding step, >= 0
	AnnualRatePercent   float64 // nominal annual rate, e.g. 7 for 7%
	Years               int     // projection horizon, >= 1

	// MaxYears bounds the horizon. Zero means no bound.
	MaxYears int
}

// ProjectionPoint is one yearly row of a compound-growth projection.
// Invariant: Balance == Contributions + Interest (within float tolerance).
type ProjectionPoint struct {
	Year          int     `json:"year"`
	Balance       float64 `json:"balance"`
	Contributions float64 `json:"contributions"`
	Interest      float64 `json:"interest"`
}

// =============================================================================
// LOANS
// =============================================================================

// LoanInput describes an amortizing loan.
type LoanInput struct {
	Amount            float64 // principal borrowed, > 0
	AnnualRatePercent float64 // >= 0; 0 means interest-free
	TermYears         float64 // > 0
	MaxTermYears      int     // product-specific cap; zero means no cap
}

// LoanCalculation is the result of a successful loan computation.
type LoanCalculation struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

// AmortizationEntry is one monthly row of a repayment schedule.
// Invariant: Payment == PrincipalPortion + InterestPortion (within tolerance);
// RemainingBalance is non-increasing and reaches ~0 by the final month.
type AmortizationEntry struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	PrincipalPortion float64 `json:"principal"`
	InterestPortion  float64 `json:"interest"`
	RemainingBalance float64 `json:"balance"`
}

// =============================================================================
// LOAN TYPES - Product presets with rate and tenure bounds
// =============================================================================

// LoanTypeID identifies a loan product preset.
type LoanTypeID string

const (
	LoanHome      LoanTypeID = "home"
	LoanAuto      LoanTypeID = "auto"
	LoanPersonal  LoanTypeID = "personal"
	LoanEducation LoanTypeID = "education"
)

// LoanType bounds user input for one loan product. The UI clamps rate
// sliders to [MinRatePercent, MaxRatePercent]; the engine enforces only
// MaxTenureYears (tenure is free-typed and validated here).
type LoanType struct {
	ID             LoanTypeID `json:"id"`
	Name           string     `json:"name"`
	MinRatePercent float64    `json:"min_rate"`
	MaxRatePercent float64    `json:"max_rate"`
	MaxTenureYears int        `json:"max_tenure_years"`
	Description    string     `json:"description"`
}

// LoanTypes lists the supported loan products.
var LoanTypes = map[LoanTypeID]LoanType{
	LoanHome: {
		ID:             LoanHome,
		Name:           "Home Loan",
		MinRatePercent: 6.5,
		MaxRatePercent: 15,
		MaxTenureYears: 30,
		Description:    "Home loans for buying or constructing a home",
	},
	LoanAuto: {
		ID:             LoanAuto,
		Name:           "Auto Loan",
		MinRatePercent: 7,
		MaxRatePercent: 18,
		MaxTenureYears: 7,
		Description:    "Financing for new and used vehicles",
	},
	LoanPersonal: {
		ID:             LoanPersonal,
		Name:           "Personal Loan",
		MinRatePercent: 10,
		MaxRatePercent: 24,
		MaxTenureYears: 5,
		Description:    "Unsecured loans for personal financial needs",
	},
	LoanEducation: {
		ID:             LoanEducation,
		Name:           "Education Loan",
		MinRatePercent: 8,
		MaxRatePercent: 16,
		MaxTenureYears: 15,
		Description:    "Educational financing for students and professionals",
	},
}

// =============================================================================
// RETIREMENT
// =============================================================================

// RetirementInput describes a retirement savings scenario.
type RetirementInput struct {
	CurrentAge            int
	RetirementAge         int     // must exceed CurrentAge
	CurrentSavings        float64 // >= 0
	MonthlyContribution   float64 // >= 0
	EmployerMatchPercent  float64 // % of income matched by employer, capped by own contribution
	ExpectedReturnPercent float64
	CurrentIncome         float64 // annual gross income
	InflationRatePercent  float64
}

// RetirementProjectionRow is one yearly row of a retirement projection.
type RetirementProjectionRow struct {
	Age                int     `json:"age"`
	TotalValue         float64 `json:"total_value"`
	AnnualContribution float64 `json:"annual_contribution"` // own + employer match
	EmployerMatch      float64 `json:"employer_match"`
	InterestEarned     float64 `json:"interest_earned"`
}

// ReadinessStatus classifies a projection against the 25x-expenses target.
type ReadinessStatus string

const (
	ReadinessOnTrack          ReadinessStatus = "On Track"
	ReadinessGoodProgress     ReadinessStatus = "Good Progress"
	ReadinessNeedsImprovement ReadinessStatus = "Needs Improvement"
)

// RetirementSummary derives headline numbers from the final projected value.
type RetirementSummary struct {
	TotalAtRetirement       float64         `json:"total_at_retirement"`
	MonthlyRetirementIncome float64         `json:"monthly_retirement_income"` // 4%-rule withdrawal
	TargetMonthlyIncome     float64         `json:"target_monthly_income"`     // inflation-adjusted 80% of income
	Shortfall               float64         `json:"shortfall"`
	ReadinessPercent        float64         `json:"readiness_percent"`
	Readiness               ReadinessStatus `json:"readiness"`
}
