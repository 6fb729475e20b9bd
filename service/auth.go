package service

import (
	"context"
	"errors"
	"strings"

	"github.com/skillsnap/portfolio/auth"
	"github.com/skillsnap/portfolio/identity"
	"github.com/skillsnap/portfolio/observe"
)

// Sentinel errors for the auth operations.
var (
	// ErrInvalidRegistration covers malformed registration payloads.
	ErrInvalidRegistration = errors.New("service: invalid registration data")

	// ErrInvalidCredentials is the uniform login failure: unknown email
	// and wrong password are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("service: invalid email or password")
)

const minPasswordLength = 8

// Session is what a successful register or login returns. The token is
// the only credential; logout is client-side discard.
type Session struct {
	Token string   `json:"token"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Auth serves registration and login against the identity collaborator.
type Auth struct {
	accounts identity.Accounts
	issuer   *auth.Issuer
	log      observe.Logger
}

// NewAuth creates the auth service.
func NewAuth(accounts identity.Accounts, issuer *auth.Issuer, log observe.Logger) *Auth {
	if log == nil {
		log = observe.NopLogger{}
	}
	return &Auth{accounts: accounts, issuer: issuer, log: log}
}

// Register creates an account and immediately issues a token for it.
func (a *Auth) Register(ctx context.Context, email, password string) (Session, error) {
	if !strings.Contains(email, "@") || len(password) < minPasswordLength {
		return Session{}, ErrInvalidRegistration
	}

	acct, err := a.accounts.Create(ctx, email, password)
	if err != nil {
		return Session{}, err
	}

	a.log.Info(ctx, "account registered", observe.F("subject", acct.ID))
	return a.issue(acct)
}

// Login verifies the password and issues a token carrying the account's
// current roles. Unknown email and bad password surface identically.
func (a *Auth) Login(ctx context.Context, email, password string) (Session, error) {
	acct, err := a.accounts.FindByEmail(ctx, email)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}

	if err := a.accounts.VerifyPassword(ctx, acct.ID, password); err != nil {
		a.log.Warn(ctx, "login rejected", observe.F("subject", acct.ID))
		return Session{}, ErrInvalidCredentials
	}

	roles, err := a.accounts.Roles(ctx, acct.ID)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	acct.Roles = roles

	a.log.Info(ctx, "login succeeded", observe.F("subject", acct.ID))
	return a.issue(acct)
}

func (a *Auth) issue(acct identity.Account) (Session, error) {
	roles := acct.Roles
	if roles == nil {
		roles = []string{}
	}

	token, err := a.issuer.Issue(auth.Identity{
		Subject: acct.ID,
		Email:   acct.Email,
		Roles:   roles,
	})
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, Email: acct.Email, Roles: roles}, nil
}
