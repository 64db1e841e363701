package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
)

func newJWTServiceForTest(accessTTL, refreshTTL time.Duration) domain.TokenService {
	return NewJWTService("test-secret-key", "authsvc-test", accessTTL, refreshTTL)
}

func TestJWTServiceImpl_AccessTokenRoundTrip(t *testing.T) {
	svc := newJWTServiceForTest(15*time.Minute, 168*time.Hour)

	token, err := svc.GenerateAccessToken(42, domain.RoleStaff)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user_id 42, got %d", claims.UserID)
	}
	if claims.Role != domain.RoleStaff {
		t.Errorf("expected role staff, got %q", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("expected token type access, got %q", claims.TokenType)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Error("expiry must be after issuance")
	}
}

func TestJWTServiceImpl_RefreshTokenRoundTrip(t *testing.T) {
	svc := newJWTServiceForTest(15*time.Minute, 168*time.Hour)

	token, err := svc.GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user_id 42, got %d", claims.UserID)
	}
	if claims.Role != "" {
		t.Errorf("refresh token must not carry a role, got %q", claims.Role)
	}
}

func TestJWTServiceImpl_TokenTypeConfusion(t *testing.T) {
	svc := newJWTServiceForTest(15*time.Minute, 168*time.Hour)

	access, err := svc.GenerateAccessToken(1, domain.RoleCustomer)
	if err != nil {
		t.Fatalf("generate access: %v", err)
	}
	refresh, err := svc.GenerateRefreshToken(1)
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}

	if _, err := svc.ValidateRefreshToken(access); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("access token must not validate as refresh, got %v", err)
	}
	if _, err := svc.ValidateAccessToken(refresh); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("refresh token must not validate as access, got %v", err)
	}
}

func TestJWTServiceImpl_ExpiredToken(t *testing.T) {
	svc := newJWTServiceForTest(-time.Minute, -time.Minute)

	token, err := svc.GenerateAccessToken(1, domain.RoleCustomer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTServiceImpl_TamperedToken(t *testing.T) {
	svc := newJWTServiceForTest(15*time.Minute, 168*time.Hour)
	other := NewJWTService("different-secret", "authsvc-test", 15*time.Minute, 168*time.Hour)

	token, err := other.GenerateAccessToken(1, domain.RoleCustomer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("token signed with another key must be rejected, got %v", err)
	}

	if _, err := svc.ValidateAccessToken("not.a.token"); err == nil {
		t.Error("garbage input must be rejected")
	}
}
