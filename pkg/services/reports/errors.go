package reports

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrExecutionFailed   = errors.New("report query failed")
)

// FieldViolation describes a single rejected request parameter.
type FieldViolation struct {
	Field  string
	Reason string
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

// ValidationError aggregates every rejected parameter of a request.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("%s: %s", ErrInvalidParameters, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidParameters
}

// Fields returns the names of the rejected parameters.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// ExecutionError wraps a failure reported by the query executor.
type ExecutionError struct {
	ReportID string
	Err      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("report %s: %s: %v", e.ReportID, ErrExecutionFailed, e.Err)
}

func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecutionFailed
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
