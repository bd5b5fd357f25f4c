package identity

import "fmt"

type AuthCode string

const (
	CodeInvalidEmail      AuthCode = "INVALID_EMAIL"
	CodeUserDisabled      AuthCode = "USER_DISABLED"
	CodeUserNotFound      AuthCode = "USER_NOT_FOUND"
	CodeIncorrectPassword AuthCode = "INCORRECT_PASSWORD"
	CodeMissingToken      AuthCode = "MISSING_TOKEN"
	CodeTokenInvalid      AuthCode = "TOKEN_INVALID"
	CodeTokenExpired      AuthCode = "TOKEN_EXPIRED"
	CodeTokenRevoked      AuthCode = "TOKEN_REVOKED"
	CodeNotConfigured     AuthCode = "OPERATION_DENIED"
	CodeUnknown           AuthCode = "UNKNOWN_ERROR"
)

var codeMessages = map[AuthCode]string{
	CodeInvalidEmail:      "The email address is not valid.",
	CodeUserDisabled:      "This account has been disabled.",
	CodeUserNotFound:      "No admin account found with this email.",
	CodeIncorrectPassword: "Incorrect password. Please try again.",
	CodeMissingToken:      "Please sign in to continue.",
	CodeTokenInvalid:      "Your session is not valid. Please sign in again.",
	CodeTokenExpired:      "Your session has expired. Please sign in again.",
	CodeTokenRevoked:      "You have been signed out. Please sign in again.",
	CodeNotConfigured:     "Sign-in is not available right now.",
	CodeUnknown:           "An error occurred during authentication.",
}

// AuthError is returned by every Provider method that rejects a caller.
type AuthError struct {
	Code AuthCode
	Err  error
}

func newAuthError(code AuthCode, err error) *AuthError {
	return &AuthError{Code: code, Err: err}
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth %s: %v", e.Code, e.Err)
	}
	return "auth " + string(e.Code)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Message is the text shown to the person signing in.
func (e *AuthError) Message() string {
	if m, ok := codeMessages[e.Code]; ok {
		return m
	}
	return codeMessages[CodeUnknown]
}

// Forbidden reports whether the caller is known but not allowed in.
func (e *AuthError) Forbidden() bool {
	return e.Code == CodeUserDisabled
}
