package entity

import "fmt"

// ConfigErrorKind enumerates the ways caller-supplied configuration can be malformed.
type ConfigErrorKind string

const (
	BadHorizon        ConfigErrorKind = "BadHorizon"
	InvalidTime       ConfigErrorKind = "InvalidTime"
	UnknownConstraint ConfigErrorKind = "UnknownConstraint"
	BadWeight         ConfigErrorKind = "BadWeight"
)

// ConfigError is raised at input validation, before any domain object is constructed.
type ConfigError struct {
	Kind    ConfigErrorKind
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error [%s]: %s", e.Kind, e.Message)
}

func NewConfigError(kind ConfigErrorKind, message string) *ConfigError {
	return &ConfigError{Kind: kind, Message: message}
}

// ValidationErrorKind enumerates which domain invariant was violated.
type ValidationErrorKind string

const (
	InvalidWorker       ValidationErrorKind = "InvalidWorker"
	InvalidShiftType    ValidationErrorKind = "InvalidShiftType"
	InvalidRequest      ValidationErrorKind = "InvalidRequest"
	InvalidFrequencyReq ValidationErrorKind = "InvalidFrequencyReq"
)

// ValidationError is raised when a domain invariant is violated during construction.
type ValidationError struct {
	Kind    ValidationErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Kind, e.Message)
}

func NewValidationError(kind ValidationErrorKind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

// FeasibilityIssueSeverity distinguishes diagnostics that block a solve from informational ones.
type FeasibilityIssueSeverity string

const (
	SeverityFatal FeasibilityIssueSeverity = "FATAL"
	SeverityWarn  FeasibilityIssueSeverity = "WARN"
)

// FeasibilityIssue is one actionable pre-solve diagnostic (spec §4.4).
type FeasibilityIssue struct {
	Severity FeasibilityIssueSeverity
	Kind     string
	Message  string
}

// PreSolveInfeasible is raised/returned when the feasibility checker finds a Fatal issue.
type PreSolveInfeasible struct {
	Issues []FeasibilityIssue
}

func (e *PreSolveInfeasible) Error() string {
	msg := fmt.Sprintf("pre-solve infeasible: %d issue(s)", len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Severity == SeverityFatal {
			msg += fmt.Sprintf("; [%s] %s", issue.Kind, issue.Message)
		}
	}
	return msg
}

// BackendError is an opaque wrapper around a solver-backend fault, propagated unchanged.
type BackendError struct {
	Message string
	Cause   error
}

func (e *BackendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("backend error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("backend error: %s", e.Message)
}

func (e *BackendError) Unwrap() error { return e.Cause }

// CoreInvariantBroken is raised instead of relying on a disabled assertion; it indicates a bug.
type CoreInvariantBroken struct {
	Description string
}

func (e *CoreInvariantBroken) Error() string {
	return fmt.Sprintf("core invariant broken: %s", e.Description)
}

// KeyErrorKind enumerates the reasons a variable lookup can fail (spec §4.3).
type KeyErrorKind string

const (
	UnknownWorker KeyErrorKind = "UnknownWorker"
	UnknownShift  KeyErrorKind = "UnknownShift"
	BadPeriod     KeyErrorKind = "BadPeriod"
)

// KeyError is raised by variable-builder accessors when an offending key is identified.
type KeyError struct {
	Kind KeyErrorKind
	Key  string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key error [%s]: %s", e.Kind, e.Key)
}
