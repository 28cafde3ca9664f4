/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's internal types from the external API contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *DTO / *Response: Types returned to clients

ROUNDING:
  The engine never rounds; currency fields are rounded to cents here with
  decimal, at the presentation boundary only.

SEE ALSO:
  - handlers.go: Uses these types
  - finance/types.go: Engine-side counterparts
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/financegpt/finance-engine/finance"
	"github.com/financegpt/finance-engine/llm"
)

// =============================================================================
// CALCULATOR TYPES
// =============================================================================

// CompoundRequest asks for a compound-growth projection.
type CompoundRequest struct {
	Principal           float64 `json:"principal"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	AnnualRatePercent   float64 `json:"annual_rate"`
	Years               int     `json:"years"`
	MaxYears            int     `json:"max_years,omitempty"`
}

// ProjectionPointDTO is one yearly projection row, rounded to cents.
type ProjectionPointDTO struct {
	Year          int     `json:"year"`
	Balance       float64 `json:"balance"`
	Contributions float64 `json:"contributions"`
	Interest      float64 `json:"interest"`
}

// CompoundResponse carries the projection and its headline numbers.
type CompoundResponse struct {
	Points             []ProjectionPointDTO `json:"points"`
	FinalBalance       float64              `json:"final_balance"`
	TotalContributions float64              `json:"total_contributions"`
	TotalInterest      float64              `json:"total_interest"`
}

// LoanRequest asks for a loan computation. LoanType selects the product
// preset whose tenure cap applies; unknown or empty means uncapped.
type LoanRequest struct {
	LoanType          string  `json:"loan_type,omitempty"`
	Amount            float64 `json:"amount"`
	AnnualRatePercent float64 `json:"annual_rate"`
	TermYears         float64 `json:"term_years"`
}

// LoanResponse is a successful loan computation, rounded to cents.
type LoanResponse struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

// AmortizationEntryDTO is one schedule row, rounded to cents.
type AmortizationEntryDTO struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	PrincipalPortion float64 `json:"principal"`
	InterestPortion  float64 `json:"interest"`
	RemainingBalance float64 `json:"balance"`
}

// ScheduleResponse wraps the schedule with its source computation.
type ScheduleResponse struct {
	Loan     LoanResponse           `json:"loan"`
	Schedule []AmortizationEntryDTO `json:"schedule"`
}

// RetirementRequest asks for a retirement projection.
type RetirementRequest struct {
	CurrentAge            int     `json:"current_age"`
	RetirementAge         int     `json:"retirement_age"`
	CurrentSavings        float64 `json:"current_savings"`
	MonthlyContribution   float64 `json:"monthly_contribution"`
	EmployerMatchPercent  float64 `json:"employer_match"`
	ExpectedReturnPercent float64 `json:"expected_return"`
	CurrentIncome         float64 `json:"current_income"`
	InflationRatePercent  float64 `json:"inflation_rate"`
}

// RetirementRowDTO is one yearly retirement row, rounded to cents.
type RetirementRowDTO struct {
	Age                int     `json:"age"`
	TotalValue         float64 `json:"total_value"`
	AnnualContribution float64 `json:"annual_contribution"`
	EmployerMatch      float64 `json:"employer_match"`
	InterestEarned     float64 `json:"interest_earned"`
}

// RetirementResponse carries the rows and the summary heuristics.
type RetirementResponse struct {
	Rows    []RetirementRowDTO   `json:"rows"`
	Summary RetirementSummaryDTO `json:"summary"`
}

// RetirementSummaryDTO mirrors finance.RetirementSummary rounded to cents.
type RetirementSummaryDTO struct {
	TotalAtRetirement       float64 `json:"total_at_retirement"`
	MonthlyRetirementIncome float64 `json:"monthly_retirement_income"`
	TargetMonthlyIncome     float64 `json:"target_monthly_income"`
	Shortfall               float64 `json:"shortfall"`
	ReadinessPercent        float64 `json:"readiness_percent"`
	Readiness               string  `json:"readiness"`
}

// =============================================================================
// PROGRESS TYPES
// =============================================================================

// TimeSpentRequest records minutes spent in a module.
type TimeSpentRequest struct {
	Minutes int `json:"minutes"`
}

// ModuleProgressDTO is one module's record plus its derived score.
type ModuleProgressDTO struct {
	ModuleID          string   `json:"moduleId"`
	CompletedSections []string `json:"completedSections"`
	QuestionsAsked    int      `json:"questionsAsked"`
	TimeSpentMinutes  int      `json:"timeSpent"`
	LastAccessed      string   `json:"lastAccessed"`
	Completed         bool     `json:"completed"`
	Progress          int      `json:"progress"`
}

// ImportResponse reports the outcome of a backup import.
type ImportResponse struct {
	Imported bool `json:"imported"`
}

// =============================================================================
// CHAT TYPES
// =============================================================================

// ChatRequest is a user chat turn with optional history and module topic.
type ChatRequest struct {
	Message   string        `json:"message"`
	History   []ChatMessage `json:"history,omitempty"`
	Topic     string        `json:"topic,omitempty"`
	SessionID string        `json:"session_id,omitempty"`
}

// ChatMessage is one prior turn of the conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ExplainRequest asks for a one-shot topic explanation. Level is
// "beginner", "intermediate", or "advanced"; anything else falls back to
// beginner.
type ExplainRequest struct {
	Topic string `json:"topic"`
	Level string `json:"level,omitempty"`
}

// ExplainResponse is the structured explanation.
type ExplainResponse struct {
	Topic       string `json:"topic"`
	Explanation string `json:"explanation"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// round2 rounds a currency amount to cents for presentation.
func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

func toLoanResponse(calc finance.LoanCalculation) LoanResponse {
	return LoanResponse{
		MonthlyPayment: round2(calc.MonthlyPayment),
		TotalPayment:   round2(calc.TotalPayment),
		TotalInterest:  round2(calc.TotalInterest),
	}
}

func toProjectionDTOs(points []finance.ProjectionPoint) []ProjectionPointDTO {
	out := make([]ProjectionPointDTO, len(points))
	for i, p := range points {
		out[i] = ProjectionPointDTO{
			Year:          p.Year,
			Balance:       round2(p.Balance),
			Contributions: round2(p.Contributions),
			Interest:      round2(p.Interest),
		}
	}
	return out
}

func toScheduleDTOs(rows []finance.AmortizationEntry) []AmortizationEntryDTO {
	out := make([]AmortizationEntryDTO, len(rows))
	for i, r := range rows {
		out[i] = AmortizationEntryDTO{
			Month:            r.Month,
			Payment:          round2(r.Payment),
			PrincipalPortion: round2(r.PrincipalPortion),
			InterestPortion:  round2(r.InterestPortion),
			RemainingBalance: round2(r.RemainingBalance),
		}
	}
	return out
}

func toRetirementDTOs(rows []finance.RetirementProjectionRow, summary finance.RetirementSummary) RetirementResponse {
	dtos := make([]RetirementRowDTO, len(rows))
	for i, r := range rows {
		dtos[i] = RetirementRowDTO{
			Age:                r.Age,
			TotalValue:         round2(r.TotalValue),
			AnnualContribution: round2(r.AnnualContribution),
			EmployerMatch:      round2(r.EmployerMatch),
			InterestEarned:     round2(r.InterestEarned),
		}
	}
	return RetirementResponse{
		Rows: dtos,
		Summary: RetirementSummaryDTO{
			TotalAtRetirement:       round2(summary.TotalAtRetirement),
			MonthlyRetirementIncome: round2(summary.MonthlyRetirementIncome),
			TargetMonthlyIncome:     round2(summary.TargetMonthlyIncome),
			Shortfall:               round2(summary.Shortfall),
			ReadinessPercent:        round2(summary.ReadinessPercent),
			Readiness:               string(summary.Readiness),
		},
	}
}

func toLLMHistory(history []ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(history))
	for _, m := range history {
		role := llm.RoleAssistant
		if m.Role == "user" {
			role = llm.RoleUser
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	return out
}
