/*
handlers.go - HTTP API handlers for the financial education backend

PURPOSE:
  Exposes the projection engine, progress service, and budget analytics
  via REST. Handles HTTP request/response and JSON serialization, and
  delegates to the domain packages.

ENDPOINTS:
  Calculators:
    GET  /api/calculators/loan/types      List loan product presets
    POST /api/calculators/compound        Compound growth projection
    POST /api/calculators/loan            Loan payment computation
    POST /api/calculators/loan/schedule   Full amortization schedule
    POST /api/calculators/retirement      Retirement projection

  Progress:
    GET    /api/progress                            Full store snapshot
    DELETE /api/progress                            Reset everything
    GET    /api/progress/export                     Backup blob
    POST   /api/progress/import                     Restore backup
    GET    /api/progress/modules/{id}               Record + score
    DELETE /api/progress/modules/{id}               Reset one module
    POST   /api/progress/modules/{id}/access        Record module access
    POST   /api/progress/modules/{id}/questions     Record question asked
    POST   /api/progress/modules/{id}/time          Record minutes spent
    PUT    /api/progress/modules/{id}/sections/{sectionId}  Mark complete
    DELETE /api/progress/modules/{id}/sections/{sectionId}  Mark incomplete

  Budget:
    GET /api/budget                       Snapshot with totals
    GET /api/budget/insights              Spending insights
    PUT /api/budget/categories/{id}       Update a category's value

  Chat:
    GET  /api/chat/modules                List specialist chat modules
    POST /api/chat                        See chat.go
    POST /api/explain                     Topic explainer, see chat.go

  Market:
    GET /api/market/...                   See market.go

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation failures, invalid input
  - 404: Unknown category/section
  - 502: LLM upstream failures
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/financegpt/finance-engine/budget"
	"github.com/financegpt/finance-engine/finance"
	"github.com/financegpt/finance-engine/llm"
	"github.com/financegpt/finance-engine/market"
	"github.com/financegpt/finance-engine/progress"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Progress *progress.Service
	Budget   *budget.Service
	LLM      *llm.Client
	Market   *market.Client
}

// NewHandler creates a handler over the given services.
func NewHandler(prog *progress.Service, budg *budget.Service, chat *llm.Client, mkt *market.Client) *Handler {
	return &Handler{Progress: prog, Budget: budg, LLM: chat, Market: mkt}
}

// =============================================================================
// CALCULATOR HANDLERS
// =============================================================================

// ListLoanTypes returns the loan product presets, stable-ordered by ID.
func (h *Handler) ListLoanTypes(w http.ResponseWriter, r *http.Request) {
	types := make([]finance.LoanType, 0, len(finance.LoanTypes))
	for _, lt := range finance.LoanTypes {
		types = append(types, lt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].ID < types[j].ID })
	writeJSON(w, http.StatusOK, types)
}

// ComputeCompound runs the compound-growth projection.
func (h *Handler) ComputeCompound(w http.ResponseWriter, r *http.Request) {
	var req CompoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	points, err := finance.CompoundGrowth(finance.ProjectionInput{
		Principal:           req.Principal,
		MonthlyContribution: req.MonthlyContribution,
		AnnualRatePercent:   req.AnnualRatePercent,
		Years:               req.Years,
		MaxYears:            req.MaxYears,
	})
	if err != nil {
		writeValidationError(w, err)
		return
	}

	last := points[len(points)-1]
	writeJSON(w, http.StatusOK, CompoundResponse{
		Points:             toProjectionDTOs(points),
		FinalBalance:       round2(last.Balance),
		TotalContributions: round2(last.Contributions),
		TotalInterest:      round2(last.Interest),
	})
}

// ComputeLoan computes the fixed monthly payment for a loan.
func (h *Handler) ComputeLoan(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeLoan(w, r)
	if !ok {
		return
	}

	calc, err := finance.ComputeLoan(input)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLoanResponse(calc))
}

// ComputeLoanSchedule computes the payment and expands the full schedule.
func (h *Handler) ComputeLoanSchedule(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeLoan(w, r)
	if !ok {
		return
	}

	calc, err := finance.ComputeLoan(input)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	schedule := finance.AmortizationSchedule(input, calc.MonthlyPayment)
	writeJSON(w, http.StatusOK, ScheduleResponse{
		Loan:     toLoanResponse(calc),
		Schedule: toScheduleDTOs(schedule),
	})
}

// ComputeRetirement runs the retirement projection.
func (h *Handler) ComputeRetirement(w http.ResponseWriter, r *http.Request) {
	var req RetirementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rows, summary, err := finance.RetirementProjection(finance.RetirementInput{
		CurrentAge:            req.CurrentAge,
		RetirementAge:         req.RetirementAge,
		CurrentSavings:        req.CurrentSavings,
		MonthlyContribution:   req.MonthlyContribution,
		EmployerMatchPercent:  req.EmployerMatchPercent,
		ExpectedReturnPercent: req.ExpectedReturnPercent,
		CurrentIncome:         req.CurrentIncome,
		InflationRatePercent:  req.InflationRatePercent,
	})
	if err != nil {
		writeValidationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRetirementDTOs(rows, summary))
}

// decodeLoan parses a loan request and resolves its product tenure cap.
func (h *Handler) decodeLoan(w http.ResponseWriter, r *http.Request) (finance.LoanInput, bool) {
	var req LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return finance.LoanInput{}, false
	}

	input := finance.LoanInput{
		Amount:            req.Amount,
		AnnualRatePercent: req.AnnualRatePercent,
		TermYears:         req.TermYears,
	}
	if req.LoanType != "" {
		lt, ok := finance.LoanTypes[finance.LoanTypeID(req.LoanType)]
		if !ok {
			writeError(w, http.StatusBadRequest, "Unknown loan type: "+req.LoanType, nil)
			return finance.LoanInput{}, false
		}
		input.MaxTermYears = lt.MaxTenureYears
	}
	return input, true
}

// =============================================================================
// PROGRESS HANDLERS
// =============================================================================

// GetAllProgress returns the full store snapshot.
func (h *Handler) GetAllProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Progress.All())
}

// GetModuleProgress returns one module's record plus its derived score.
func (h *Handler) GetModuleProgress(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "id")
	totalSections := 0
	if v := r.URL.Query().Get("total_sections"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "total_sections must be a non-negative integer", err)
			return
		}
		totalSections = n
	}

	score := h.Progress.ModuleProgress(r.Context(), moduleID, totalSections)
	m := h.Progress.ModuleData(r.Context(), moduleID)

	writeJSON(w, http.StatusOK, ModuleProgressDTO{
		ModuleID:          m.ModuleID,
		CompletedSections: m.CompletedSections,
		QuestionsAsked:    m.QuestionsAsked,
		TimeSpentMinutes:  m.TimeSpentMinutes,
		LastAccessed:      m.LastAccessed.Format(time.RFC3339),
		Completed:         m.Completed,
		Progress:          score,
	})
}

// RecordModuleAccess stamps a module as accessed.
func (h *Handler) RecordModuleAccess(w http.ResponseWriter, r *http.Request) {
	h.Progress.RecordModuleAccess(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// RecordQuestionAsked bumps a module's question counter.
func (h *Handler) RecordQuestionAsked(w http.ResponseWriter, r *http.Request) {
	h.Progress.RecordQuestionAsked(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// RecordTimeSpent adds minutes to a module's time total.
func (h *Handler) RecordTimeSpent(w http.ResponseWriter, r *http.Request) {
	var req TimeSpentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Minutes < 0 {
		writeError(w, http.StatusBadRequest, "minutes cannot be negative", nil)
		return
	}

	h.Progress.RecordTimeSpent(r.Context(), chi.URLParam(r, "id"), req.Minutes)
	w.WriteHeader(http.StatusNoContent)
}

// MarkSectionCompleted adds a section to the module's completed set.
func (h *Handler) MarkSectionCompleted(w http.ResponseWriter, r *http.Request) {
	h.Progress.MarkSectionCompleted(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "sectionId"))
	w.WriteHeader(http.StatusNoContent)
}

// MarkSectionIncomplete removes a section from the completed set.
func (h *Handler) MarkSectionIncomplete(w http.ResponseWriter, r *http.Request) {
	h.Progress.MarkSectionIncomplete(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "sectionId"))
	w.WriteHeader(http.StatusNoContent)
}

// ResetModuleProgress removes one module's record.
func (h *Handler) ResetModuleProgress(w http.ResponseWriter, r *http.Request) {
	h.Progress.ResetModule(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// ResetAllProgress wipes the whole store.
func (h *Handler) ResetAllProgress(w http.ResponseWriter, r *http.Request) {
	h.Progress.ResetAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ExportProgress returns the backup blob.
func (h *Handler) ExportProgress(w http.ResponseWriter, r *http.Request) {
	blob, err := h.Progress.Export()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export progress", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="financegpt-progress.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(blob); err != nil {
		log.Printf("api: failed to write export: %v", err)
	}
}

// ImportProgress restores a backup blob. Bad blobs leave state untouched.
func (h *Handler) ImportProgress(w http.ResponseWriter, r *http.Request) {
	blob, err := readBody(r, 1<<20)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	if !h.Progress.Import(r.Context(), blob) {
		writeJSON(w, http.StatusBadRequest, ImportResponse{Imported: false})
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{Imported: true})
}

// =============================================================================
// BUDGET HANDLERS
// =============================================================================

// GetBudget returns the full budget snapshot.
func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Budget.Data())
}

// GetBudgetInsights returns spending insights.
func (h *Handler) GetBudgetInsights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Budget.Insights())
}

// UpdateBudgetCategory sets one category's monthly value.
func (h *Handler) UpdateBudgetCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Value < 0 {
		writeError(w, http.StatusBadRequest, "value cannot be negative", nil)
		return
	}

	id := chi.URLParam(r, "id")
	if !h.Budget.UpdateCategory(id, req.Value) {
		writeError(w, http.StatusNotFound, "Unknown budget category: "+id, nil)
		return
	}
	writeJSON(w, http.StatusOK, h.Budget.Data())
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Error: message}
	if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeValidationError maps engine validation failures to 400 with their
// reason code; anything else is a 500.
func writeValidationError(w http.ResponseWriter, err error) {
	var verr *finance.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  verr.Message,
			Reason: string(verr.Reason),
		})
		return
	}
	writeError(w, http.StatusInternalServerError, "Computation failed", err)
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, limit))
}
