package auth

import "errors"

// Sentinel errors for authentication and authorization. Callers log
// the distinction; the HTTP layer collapses every one of these to the
// same outward "not authorized" outcome so a denial never reveals
// which check failed.
var (
	ErrMissingToken   = errors.New("auth: missing token")
	ErrTokenMalformed = errors.New("auth: token malformed")
	ErrTokenExpired   = errors.New("auth: token expired")
	ErrBadSignature   = errors.New("auth: bad signature")
	ErrForbidden      = errors.New("auth: access denied")

	// ErrNoSecret is a startup condition, not a per-request error.
	ErrNoSecret = errors.New("auth: signing secret is not configured")
)

// Denied reports whether err is any gate denial.
func Denied(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrBadSignature) ||
		errors.Is(err, ErrForbidden)
}

// Reason classifies a gate denial for logs and metrics. The class never
// reaches the caller; outward every denial looks the same.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "missing-token"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrBadSignature):
		return "bad-signature"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "unknown"
	}
}
