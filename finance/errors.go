/*
errors.go - Validation failure types for the projection engine

PURPOSE:
  A single ValidationError kind covers every rejected input. The engine
  never panics on bad numbers: callers get a typed failure with a stable
  reason code and a human-readable message, and no numeric result.

REASON CODES:
  amount_non_positive   principal/amount fails its sign requirement
  rate_negative         interest or return rate below zero
  term_non_positive     years/term must be positive
  term_exceeds_maximum  term above the product-specific cap

USAGE:
  calc, err := finance.ComputeLoan(input)
  var verr *finance.ValidationError
  if errors.As(err, &verr) {
      // verr.Reason, verr.Message -> 400 response
  }

SEE ALSO:
  - loan.go, compound.go, retirement.go: producers of these errors
  - api/handlers.go: maps them to HTTP 400
*/
package finance

import "errors"

// =============================================================================
// SENTINEL
// =============================================================================

// ErrInvalidInput is the sentinel wrapped by every ValidationError.
// Use errors.Is(err, ErrInvalidInput) when the reason doesn't matter.
var ErrInvalidInput = errors.New("invalid input")

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// Reason is a stable machine-readable code for a validation failure.
type Reason string

const (
	ReasonAmountNonPositive Reason = "amount_non_positive"
	ReasonRateNegative      Reason = "rate_negative"
	ReasonTermNonPositive   Reason = "term_non_positive"
	ReasonTermExceedsMax    Reason = "term_exceeds_maximum"
)

// ValidationError reports why an input was rejected.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string { return string(e.Reason) + ": " + e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(reason Reason, message string) *ValidationError {
	return &ValidationError{Reason: reason, Message: message}
}
