package auth

import (
	"context"
	"strings"
)

// Classification is the static access class of an operation. Every
// operation carries exactly one; a single gate function checks it
// instead of per-endpoint declarative metadata.
type Classification int

const (
	// Public operations need no identity.
	Public Classification = iota

	// Authenticated operations need any valid, non-expired token.
	Authenticated

	// AdminOnly operations need a valid token holding the Admin role.
	AdminOnly
)

func (c Classification) String() string {
	switch c {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case AdminOnly:
		return "admin-only"
	default:
		return "unknown"
	}
}

// Gate decides allow/deny for a classified operation given the bearer
// token carried in the request context. Stateless and safe for
// arbitrary concurrent use.
type Gate struct {
	validator *Validator
}

// NewGate creates a gate over the given validator.
func NewGate(validator *Validator) *Gate {
	return &Gate{validator: validator}
}

// Check applies the access policy for the classification to the token
// in ctx. On allow it returns the caller's identity, or nil when an
// anonymous caller reaches a Public operation; a Public check never
// denies, even on a bad token. On deny it returns one of the package's
// sentinel errors.
func (g *Gate) Check(ctx context.Context, class Classification) (*Identity, error) {
	token, ok := TokenFromContext(ctx)

	if class == Public {
		if !ok {
			return nil, nil
		}
		id, err := g.validator.Validate(token)
		if err != nil {
			return nil, nil
		}
		return id, nil
	}

	if !ok {
		return nil, ErrMissingToken
	}

	id, err := g.validator.Validate(token)
	if err != nil {
		return nil, err
	}

	if class == AdminOnly && !id.IsAdmin() {
		return nil, ErrForbidden
	}

	return id, nil
}

// ParseBearer extracts the token from an Authorization header value.
// Returns ("", false) when the header is empty or not a bearer scheme.
func ParseBearer(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", false
	}
	return token, true
}
