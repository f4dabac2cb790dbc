package auth

import "errors"

var ErrInvalidToken = errors.New("invalid or expired session token")

const (
	MethodAPIKey   = "api_key"
	MethodPassword = "password"
)

// AuthError reports a rejected login. Err carries the provider or comparison failure.
type AuthError struct {
	Method string
	Err    error
}

func (e *AuthError) Error() string {
	switch e.Method {
	case MethodPassword:
		return "invalid access password"
	default:
		if e.Err != nil {
			return "api key rejected: " + e.Err.Error()
		}
		return "api key rejected"
	}
}

func (e *AuthError) Unwrap() error { return e.Err }
