package auth

import (
	"errors"
	"testing"
	"time"
)

var testSecret = []byte("test-signing-secret-0123456789ab")

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := NewConfig(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	return cfg
}

func TestNewConfig_EmptySecret(t *testing.T) {
	if _, err := NewConfig(nil, time.Hour); !errors.Is(err, ErrNoSecret) {
		t.Errorf("NewConfig with empty secret = %v, want ErrNoSecret", err)
	}
}

func TestNewConfig_DefaultLifetime(t *testing.T) {
	cfg, err := NewConfig(testSecret, 0)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	if cfg.lifetime != DefaultTokenLifetime {
		t.Errorf("lifetime = %v, want %v", cfg.lifetime, DefaultTokenLifetime)
	}
}

func TestIssueValidate_RoundTrip(t *testing.T) {
	cfg := testConfig(t)
	issuer := NewIssuer(cfg)
	validator := NewValidator(cfg)

	in := Identity{
		Subject: "acct-1",
		Email:   "dev@example.com",
		Roles:   []string{"Admin", "User"},
	}

	token, err := issuer.Issue(in)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	out, err := validator.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if out.Subject != in.Subject || out.Email != in.Email {
		t.Errorf("identity changed through the round trip: %+v", out)
	}
	if len(out.Roles) != 2 || out.Roles[0] != "Admin" || out.Roles[1] != "User" {
		t.Errorf("roles changed through the round trip: %v", out.Roles)
	}
}

func TestIssue_NilRolesSurviveAsEmpty(t *testing.T) {
	cfg := testConfig(t)
	token, err := NewIssuer(cfg).Issue(Identity{Subject: "acct-2"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	id, err := NewValidator(cfg).Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if id.Roles == nil || len(id.Roles) != 0 {
		t.Errorf("Roles = %#v, want empty non-nil slice", id.Roles)
	}
}

func TestIssue_TokensDifferPerCall(t *testing.T) {
	issuer := NewIssuer(testConfig(t))
	id := Identity{Subject: "acct-3"}

	t1, err := issuer.Issue(id)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	t2, err := issuer.Issue(id)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if t1 == t2 {
		t.Error("two tokens for the same identity should differ (jti nonce)")
	}
}

func TestValidate_MissingToken(t *testing.T) {
	v := NewValidator(testConfig(t))
	if _, err := v.Validate(""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("Validate(\"\") = %v, want ErrMissingToken", err)
	}
}

func TestValidate_Malformed(t *testing.T) {
	v := NewValidator(testConfig(t))
	for _, tok := range []string{"garbage", "a.b", "a.b.c.d", "header.payload.sig"} {
		if _, err := v.Validate(tok); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Validate(%q) = %v, want ErrTokenMalformed", tok, err)
		}
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewIssuer(testConfig(t)).Issue(Identity{Subject: "acct-4"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	otherCfg, err := NewConfig([]byte("a-completely-different-secret!!!"), time.Hour)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	if _, err := NewValidator(otherCfg).Validate(token); !errors.Is(err, ErrBadSignature) {
		t.Errorf("Validate with wrong secret = %v, want ErrBadSignature", err)
	}
}

func TestValidate_ExpiryHasZeroGrace(t *testing.T) {
	cfg := testConfig(t)
	issuedAt := time.Unix(1_700_000_000, 0)
	issuer := NewIssuer(cfg, WithIssuerClock(func() time.Time { return issuedAt }))

	token, err := issuer.Issue(Identity{Subject: "acct-5"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"well within lifetime", issuedAt.Add(30 * time.Minute), nil},
		{"one second before expiry", issuedAt.Add(time.Hour - time.Second), nil},
		{"exactly at expiry", issuedAt.Add(time.Hour), ErrTokenExpired},
		{"after expiry", issuedAt.Add(2 * time.Hour), ErrTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(cfg, WithValidatorClock(func() time.Time { return tt.now }))
			_, err := v.Validate(token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate at %v = %v, want %v", tt.now, err, tt.wantErr)
			}
		})
	}
}

func TestDenied(t *testing.T) {
	for _, err := range []error{ErrMissingToken, ErrTokenMalformed, ErrTokenExpired, ErrBadSignature, ErrForbidden} {
		if !Denied(err) {
			t.Errorf("Denied(%v) = false, want true", err)
		}
	}
	if Denied(errors.New("database down")) {
		t.Error("Denied should not match unrelated errors")
	}
	if Denied(nil) {
		t.Error("Denied(nil) should be false")
	}
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrMissingToken, "missing-token"},
		{ErrTokenMalformed, "malformed"},
		{ErrTokenExpired, "expired"},
		{ErrBadSignature, "bad-signature"},
		{ErrForbidden, "forbidden"},
		{errors.New("database down"), "unknown"},
	}
	for _, tt := range tests {
		if got := Reason(tt.err); got != tt.want {
			t.Errorf("Reason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestIdentity_Roles(t *testing.T) {
	admin := Identity{Roles: []string{"Admin"}}
	user := Identity{Roles: []string{"User"}}
	none := Identity{}

	if !admin.IsAdmin() {
		t.Error("identity with Admin role should be admin")
	}
	if user.IsAdmin() {
		t.Error("identity without Admin role should not be admin")
	}
	if none.HasRole("User") {
		t.Error("identity with no roles should have no role")
	}
	if !user.HasRole("User") {
		t.Error("HasRole(User) should match")
	}
	// Role comparison is exact, not case folded.
	if user.HasRole("user") {
		t.Error("role matching must be case sensitive")
	}
}
