package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data (e.g., unique constraint violation).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeForeignKey indicates a foreign key constraint violation.
	ErrCodeForeignKey ErrorCode = "foreign_key"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
	// ErrCodeNetwork indicates a transport-level failure (DNS, connect, TLS, reset).
	ErrCodeNetwork ErrorCode = "network"
	// ErrCodeHTTP4xx indicates an HTTP 4xx response from a remote board.
	ErrCodeHTTP4xx ErrorCode = "http_4xx"
	// ErrCodeHTTP5xx indicates an HTTP 5xx response from a remote board.
	ErrCodeHTTP5xx ErrorCode = "http_5xx"
	// ErrCodeParse indicates a response body that did not match the provider contract.
	ErrCodeParse ErrorCode = "parse"
	// ErrCodePolicyBlocked indicates a fetch disallowed by robots.txt.
	ErrCodePolicyBlocked ErrorCode = "policy_blocked"
	// ErrCodeRequiresJS indicates a page that only renders through JavaScript.
	ErrCodeRequiresJS ErrorCode = "requires_js"
	// ErrCodeNoCandidateTokens indicates a seed name that produced no usable tokens.
	ErrCodeNoCandidateTokens ErrorCode = "no_candidate_tokens"
	// ErrCodePartialCollection indicates a paginated listing that failed mid-way.
	ErrCodePartialCollection ErrorCode = "partial_collection"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
	// Status is the HTTP status code for http_4xx/http_5xx errors (optional)
	Status int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
	}
}

// Conflictf creates a new Conflict error with formatted message.
func Conflictf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// ForeignKey creates a new ForeignKey error.
func ForeignKey(message string) *AppError {
	return &AppError{
		Code:    ErrCodeForeignKey,
		Message: message,
	}
}

// ForeignKeyf creates a new ForeignKey error with formatted message.
func ForeignKeyf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeForeignKey,
		Message: fmt.Sprintf(format, args...),
	}
}

// Network creates a new Network error wrapping a transport failure.
func Network(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeNetwork,
		Message: message,
		Cause:   err,
	}
}

// HTTPStatus creates an error for a non-2xx HTTP response, categorized as
// http_4xx or http_5xx by the status code.
func HTTPStatus(status int, message string) *AppError {
	code := ErrCodeHTTP5xx
	if status >= 400 && status < 500 {
		code = ErrCodeHTTP4xx
	}
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// Parse creates a new Parse error.
func Parse(message string) *AppError {
	return &AppError{
		Code:    ErrCodeParse,
		Message: message,
	}
}

// Parsef creates a new Parse error with formatted message.
func Parsef(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeParse,
		Message: fmt.Sprintf(format, args...),
	}
}

// PolicyBlocked creates a new PolicyBlocked error.
func PolicyBlocked(message string) *AppError {
	return &AppError{
		Code:    ErrCodePolicyBlocked,
		Message: message,
	}
}

// RequiresJS creates a new RequiresJS error.
func RequiresJS(message string) *AppError {
	return &AppError{
		Code:    ErrCodeRequiresJS,
		Message: message,
	}
}

// NoCandidateTokens creates a new NoCandidateTokens error.
func NoCandidateTokens(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNoCandidateTokens,
		Message: message,
	}
}

// PartialCollection wraps a pagination failure after pagesOK successful pages.
func PartialCollection(pagesOK int, err error) *AppError {
	return &AppError{
		Code:    ErrCodePartialCollection,
		Message: fmt.Sprintf("collection incomplete after %d pages", pagesOK),
		Cause:   err,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// MessageTemplate describes a lazily formatted error message used with Wrapf.
type MessageTemplate struct {
	format string
	args   []any
}

// Messagef creates a lazily formatted message template for Wrapf.
func Messagef(format string, args ...any) MessageTemplate {
	return MessageTemplate{
		format: format,
		args:   args,
	}
}

func (mt MessageTemplate) String() string {
	if len(mt.args) == 0 {
		return mt.format
	}
	return fmt.Sprintf(mt.format, mt.args...)
}

// WrapTemplate wraps an existing error with an AppError using a preconstructed message template.
func WrapTemplate(err error, code ErrorCode, template MessageTemplate) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: template.String(),
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return WrapTemplate(err, code, Messagef(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsForeignKey checks if an error is a ForeignKey error.
func IsForeignKey(err error) bool {
	return isCode(err, ErrCodeForeignKey)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// IsNetwork checks if an error is a Network error.
func IsNetwork(err error) bool {
	return isCode(err, ErrCodeNetwork)
}

// IsHTTP4xx checks if an error is an http_4xx error.
func IsHTTP4xx(err error) bool {
	return isCode(err, ErrCodeHTTP4xx)
}

// IsHTTP5xx checks if an error is an http_5xx error.
func IsHTTP5xx(err error) bool {
	return isCode(err, ErrCodeHTTP5xx)
}

// IsParse checks if an error is a Parse error.
func IsParse(err error) bool {
	return isCode(err, ErrCodeParse)
}

// IsPolicyBlocked checks if an error is a PolicyBlocked error.
func IsPolicyBlocked(err error) bool {
	return isCode(err, ErrCodePolicyBlocked)
}

// IsRequiresJS checks if an error is a RequiresJS error.
func IsRequiresJS(err error) bool {
	return isCode(err, ErrCodeRequiresJS)
}

// IsNoCandidateTokens checks if an error is a NoCandidateTokens error.
func IsNoCandidateTokens(err error) bool {
	return isCode(err, ErrCodeNoCandidateTokens)
}

// IsPartialCollection checks if an error is a PartialCollection error.
func IsPartialCollection(err error) bool {
	return isCode(err, ErrCodePartialCollection)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// GetStatus returns the HTTP status from an error, or 0 if not an AppError or no status set.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}

// Retryable reports whether a fetch error is worth retrying: 5xx, 429,
// network failures and timeouts are transient; other 4xx, parse, policy
// and cancellation errors are terminal.
func Retryable(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	switch appErr.Code {
	case ErrCodeHTTP5xx, ErrCodeNetwork, ErrCodeTimeout:
		return true
	case ErrCodeHTTP4xx:
		return appErr.Status == 429
	default:
		return false
	}
}
