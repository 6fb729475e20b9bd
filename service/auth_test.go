package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skillsnap/portfolio/auth"
	"github.com/skillsnap/portfolio/identity"
)

func newAuthFixture(t *testing.T) (*Auth, *auth.Validator, *identity.MemoryAccounts) {
	t.Helper()
	cfg, err := auth.NewConfig([]byte("service-test-secret-0123456789ab"), time.Hour)
	if err != nil {
		t.Fatalf("auth.NewConfig failed: %v", err)
	}
	accounts := identity.NewMemoryAccounts()
	return NewAuth(accounts, auth.NewIssuer(cfg), nil), auth.NewValidator(cfg), accounts
}

func TestAuth_RegisterIssuesToken(t *testing.T) {
	svc, validator, _ := newAuthFixture(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, "dev@example.com", "long-enough-password")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if sess.Email != "dev@example.com" {
		t.Errorf("session email = %q", sess.Email)
	}
	if len(sess.Roles) != 0 {
		t.Errorf("fresh account should have no roles, got %v", sess.Roles)
	}

	id, err := validator.Validate(sess.Token)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if id.Email != "dev@example.com" {
		t.Errorf("token email = %q", id.Email)
	}
}

func TestAuth_RegisterRejectsBadPayloads(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"no at sign", "not-an-email", "long-enough-password"},
		{"short password", "dev@example.com", "short"},
		{"both empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.email, tt.password); !errors.Is(err, ErrInvalidRegistration) {
				t.Errorf("Register = %v, want ErrInvalidRegistration", err)
			}
		})
	}
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dev@example.com", "password-one-long"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "dev@example.com", "password-two-long"); !errors.Is(err, identity.ErrEmailTaken) {
		t.Errorf("duplicate Register = %v, want ErrEmailTaken", err)
	}
}

func TestAuth_LoginUniformFailure(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dev@example.com", "long-enough-password"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	_, unknownErr := svc.Login(ctx, "nobody@example.com", "long-enough-password")
	_, wrongErr := svc.Login(ctx, "dev@example.com", "not-the-password")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown email = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Errorf("wrong password = %v, want ErrInvalidCredentials", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Error("the two failures must surface identically")
	}
}

func TestAuth_LoginCarriesCurrentRoles(t *testing.T) {
	svc, validator, accounts := newAuthFixture(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, "dev@example.com", "long-enough-password")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Grant a role after registration; the next login's token must
	// carry it, the old token must not.
	acct, err := accounts.FindByEmail(ctx, "dev@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if err := accounts.Grant(acct.ID, auth.RoleAdmin); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}

	oldID, err := validator.Validate(sess.Token)
	if err != nil {
		t.Fatalf("old token failed validation: %v", err)
	}
	if oldID.IsAdmin() {
		t.Error("pre-grant token must not carry the Admin role")
	}

	fresh, err := svc.Login(ctx, "dev@example.com", "long-enough-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	newID, err := validator.Validate(fresh.Token)
	if err != nil {
		t.Fatalf("fresh token failed validation: %v", err)
	}
	if !newID.IsAdmin() {
		t.Error("post-grant login token must carry the Admin role")
	}
}
