package apierr

import "fmt"

const (
	CodeInvalidRequest      = "invalid_request"
	CodeUnauthorized        = "unauthorized"
	CodeAuthFailed          = "auth_failed"
	CodeGenerationFailed    = "generation_failed"
	CodeTranscriptionFailed = "transcription_failed"
	CodeEvaluationFailed    = "evaluation_failed"
	CodeInvalidTransition   = "invalid_transition"
	CodeNotFound            = "not_found"
	CodeInternal            = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}
