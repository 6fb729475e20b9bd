package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Validator verifies bearer tokens against the shared secret and
// reconstructs the identity snapshot they carry. It never consults the
// identity store: the claims are the identity, exactly as issued.
type Validator struct {
	cfg Config
	now func() time.Time
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithValidatorClock overrides the time source. Intended for tests.
func WithValidatorClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) { v.now = now }
}

// NewValidator creates a validator from a validated Config.
func NewValidator(cfg Config, opts ...ValidatorOption) *Validator {
	v := &Validator{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks the token's signature and expiry and returns the
// embedded identity. Expiry has zero grace: a token whose exp equals
// or precedes now is rejected. Failures are typed (ErrTokenExpired,
// ErrBadSignature, ErrTokenMalformed) so callers can log the
// distinction while surfacing one uniform outcome.
func (v *Validator) Validate(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.Parse(
		tokenString,
		func(t *jwt.Token) (any, error) { return v.cfg.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	return identityFromClaims(claims), nil
}

func identityFromClaims(claims jwt.MapClaims) *Identity {
	id := &Identity{Roles: []string{}}

	if sub, ok := claims["sub"].(string); ok {
		id.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if roles, ok := claims["roles"].([]any); ok {
		for _, r := range roles {
			if s, ok := r.(string); ok {
				id.Roles = append(id.Roles, s)
			}
		}
	}

	return id
}
