package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenLifetime is the validity window for issued tokens.
const DefaultTokenLifetime = 24 * time.Hour

// Config holds the process-wide token signing configuration. One
// instance is constructed at startup and passed to both the Issuer and
// the Validator; the same secret must be used for both.
type Config struct {
	secret   []byte
	lifetime time.Duration
}

// NewConfig creates a signing configuration. An empty secret returns
// ErrNoSecret: callers must treat that as fatal at process start.
// A non-positive lifetime falls back to DefaultTokenLifetime.
func NewConfig(secret []byte, lifetime time.Duration) (Config, error) {
	if len(secret) == 0 {
		return Config{}, ErrNoSecret
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return Config{secret: secret, lifetime: lifetime}, nil
}

// Issuer mints signed, time-bounded bearer tokens for authenticated
// identities. Tokens are self-contained: no server-side session state
// exists, so a token cannot be revoked before its expiry.
type Issuer struct {
	cfg Config
	now func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithIssuerClock overrides the time source. Intended for tests.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer creates an issuer from a validated Config.
func NewIssuer(cfg Config, opts ...IssuerOption) *Issuer {
	i := &Issuer{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue signs a token for the identity, valid from now for the
// configured lifetime. The jti nonce only makes two tokens issued for
// the same identity at the same instant distinguishable; it carries no
// replay-prevention contract.
func (i *Issuer) Issue(id Identity) (string, error) {
	now := i.now()

	roles := id.Roles
	if roles == nil {
		roles = []string{}
	}

	claims := jwt.MapClaims{
		"sub":   id.Subject,
		"email": id.Email,
		"jti":   uuid.NewString(),
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(i.cfg.lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.cfg.secret)
}
