package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes grouped by the recovery action the caller should take.
const (
	CodeValidation      = "VALIDATION_FAILED"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInvalidState    = "INVALID_STATE"
	CodeDependency      = "DEPENDENCY_FAILED"
	CodeForbidden       = "FORBIDDEN"
	CodeAlreadyApproved = "ALREADY_APPROVED"
)

// NewValidationError reports malformed or missing input; no mutation was attempted.
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewNotFoundError reports a missing referenced entity, naming the offending ID.
func NewNotFoundError(entity string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s with id %v not found", entity, id))
}

// NewConflictError reports a duplicate unique field.
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// NewStateError reports an entity not in the required state for the operation.
func NewStateError(message string) *DomainError {
	return NewDomainError(CodeInvalidState, message)
}

// NewDependencyError reports a hard operational failure that aborts the whole transaction.
func NewDependencyError(message string) *DomainError {
	return NewDomainError(CodeDependency, message)
}

// NewForbiddenError reports an authorization failure.
func NewForbiddenError(message string) *DomainError {
	return NewDomainError(CodeForbidden, message)
}

// NewAlreadyApprovedError reports a duplicate approval by the same user.
func NewAlreadyApprovedError(message string) *DomainError {
	return NewDomainError(CodeAlreadyApproved, message)
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeConflict, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeValidation, "Invalid input provided")
	ErrForbidden     = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)
