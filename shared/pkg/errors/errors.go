package errors

import (
	"errors"
	"fmt"
)

// Severity classifier contract errors. These are programming-contract violations raised
// by internal/severity, not user-data problems; they are never expected on a well-formed
// infringement produced by internal/rules.
var (
	ErrInvalidExcess     = errors.New("severity classification requested with non-positive excess")
	ErrUnknownRuleKind   = errors.New("severity classification requested for unknown rule kind")
	ErrNotAnInfringement = errors.New("break severity classification requested for a non-infringing break length")
)

// AppError represents a structured application error
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// DatabaseError creates a database error
func DatabaseError(operation string, err error) *AppError {
	return &AppError{
		Code:    "DATABASE_ERROR",
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Err:     err,
		Details: map[string]interface{}{
			"operation": operation,
		},
	}
}

// ExternalServiceError creates an external service error
func ExternalServiceError(service string, err error) *AppError {
	return &AppError{
		Code:    "EXTERNAL_SERVICE_ERROR",
		Message: fmt.Sprintf("external service error: %s", service),
		Err:     err,
		Details: map[string]interface{}{
			"service": service,
		},
	}
}

// InvalidExcessError creates an error for a classifier call with non-positive excess hours.
func InvalidExcessError(ruleKind string, excessHours float64) *AppError {
	return &AppError{
		Code:    "INVALID_EXCESS",
		Message: fmt.Sprintf("excess hours must be positive for rule %q", ruleKind),
		Err:     ErrInvalidExcess,
		Details: map[string]interface{}{
			"rule_kind":    ruleKind,
			"excess_hours": excessHours,
		},
	}
}

// UnknownRuleKindError creates an error for a classifier call with an unrecognized rule kind.
func UnknownRuleKindError(ruleKind string) *AppError {
	return &AppError{
		Code:    "UNKNOWN_RULE_KIND",
		Message: fmt.Sprintf("unknown rule kind %q", ruleKind),
		Err:     ErrUnknownRuleKind,
		Details: map[string]interface{}{
			"rule_kind": ruleKind,
		},
	}
}

// NotAnInfringementError creates an error for a break-severity call on a non-infringing length.
func NotAnInfringementError(breakMinutes float64) *AppError {
	return &AppError{
		Code:    "NOT_AN_INFRINGEMENT",
		Message: "break length does not constitute an infringement",
		Err:     ErrNotAnInfringement,
		Details: map[string]interface{}{
			"break_minutes": breakMinutes,
		},
	}
}
