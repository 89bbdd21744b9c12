package auth

import (
	"testing"
	"time"

	"github.com/campus_management/internal/models"
)

func newTestUser() *models.User {
	return &models.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Status:   models.UserStatusEnabled,
	}
}

func TestGenerateAndParse(t *testing.T) {
	svc := NewTokenService("test-secret", "campus_test", time.Hour)

	token, err := svc.Generate(newTestUser(), []string{"ADMIN"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("subject = %q, want %q", claims.Subject, "alice")
	}
	if claims.Username != "alice" {
		t.Errorf("username = %q, want %q", claims.Username, "alice")
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "ADMIN" {
		t.Errorf("roles = %v, want [ADMIN]", claims.Roles)
	}
	if claims.ID == "" {
		t.Error("expected a non-empty JTI")
	}
}

func TestParseExpiredToken(t *testing.T) {
	// 有效期为负，签出的Token立即过期
	svc := NewTokenService("test-secret", "campus_test", -time.Minute)

	token, err := svc.Generate(newTestUser(), nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := svc.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", "campus_test", time.Hour)
	verifier := NewTokenService("secret-b", "campus_test", time.Hour)

	token, err := issuer.Generate(newTestUser(), nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestParseMalformedToken(t *testing.T) {
	svc := NewTokenService("test-secret", "campus_test", time.Hour)
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Parse(raw); err == nil {
			t.Errorf("Parse(%q) should fail", raw)
		}
	}
}

func TestExpirationSeconds(t *testing.T) {
	svc := NewTokenService("test-secret", "campus_test", 24*time.Hour)
	if got := svc.ExpirationSeconds(); got != 86400 {
		t.Errorf("ExpirationSeconds() = %d, want 86400", got)
	}
}

func TestStripBearerPrefix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"abc.def.ghi", "abc.def.ghi"},
		{"  Bearer abc  ", "abc"},
	}
	for _, tc := range cases {
		if got := StripBearerPrefix(tc.in); got != tc.want {
			t.Errorf("StripBearerPrefix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDenylist(t *testing.T) {
	AddToDenylist("jti-active", time.Now().Add(time.Hour))
	AddToDenylist("jti-expired", time.Now().Add(-time.Hour))

	if !IsTokenDenylisted("jti-active") {
		t.Error("jti-active should be denylisted")
	}
	if IsTokenDenylisted("jti-expired") {
		t.Error("jti-expired should not count as denylisted after expiry")
	}
	if IsTokenDenylisted("jti-unknown") {
		t.Error("unknown JTI should not be denylisted")
	}
}
