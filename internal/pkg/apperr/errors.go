package apperr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeReportPrivate   = "REPORT_PRIVATE"
	CodeUnsupportedJob  = "UNSUPPORTED_JOB"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeUpstreamFailure = "UPSTREAM_FAILURE"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusBadRequest, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrUnauthorized is returned when the admin key is missing or wrong.
	ErrUnauthorized = New(fiber.StatusUnauthorized, CodeUnauthorized, "unauthorized: invalid or missing credentials")

	// ErrReportPrivate is returned when FFLogs denies access to a linked report.
	ErrReportPrivate = New(fiber.StatusBadRequest, CodeReportPrivate, "linked report is private or no longer available")

	// ErrUnsupportedJob is returned when a player's job has no analysis support.
	ErrUnsupportedJob = New(fiber.StatusBadRequest, CodeUnsupportedJob, "job is not supported for analysis")

	// ErrUpstream is returned when FFLogs or a job build provider misbehaves.
	ErrUpstream = New(fiber.StatusBadGateway, CodeUpstreamFailure, "upstream service returned an unexpected response")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]any

type CritError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *CritError {
	return &CritError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// Msg returns a copy of the error with a formatted message, leaving the
// original sentinel untouched.
func (e CritError) Msg(format string, parts ...any) *CritError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e CritError) WithExtras(extras Extras) *CritError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations any) *CritError {
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *CritError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
