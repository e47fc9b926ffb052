// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkrzemien-software/homely-sub001/internal/config"
	"github.com/mkrzemien-software/homely-sub001/internal/core"
)

func newTestManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	if err := GenerateKeyPair(privatePath, publicPath); err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privatePath,
		PublicKeyPath:     publicPath,
		AccessTokenExpire: expire,
		Issuer:            "homely",
		Audience:          "homely-api",
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	return manager
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newTestManager(t, 15*time.Minute)

	token, err := manager.CreateAccessToken("user-42", "person@example.com")
	if err != nil {
		t.Fatalf("CreateAccessToken() error = %v", err)
	}

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyAccessToken() error = %v", err)
	}

	if claims.UserID != "user-42" {
		t.Errorf("user id = %q", claims.UserID)
	}
	if claims.Email != "person@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := newTestManager(t, -1*time.Minute)

	token, err := manager.CreateAccessToken("user-42", "person@example.com")
	if err != nil {
		t.Fatalf("CreateAccessToken() error = %v", err)
	}

	_, err = manager.VerifyAccessToken(context.Background(), token)
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Fatalf("VerifyAccessToken() error = %v, want token expired", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager := newTestManager(t, 15*time.Minute)

	_, err := manager.VerifyAccessToken(
		context.Background(), "not.a.token",
	)
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("VerifyAccessToken() error = %v, want token invalid", err)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuing := newTestManager(t, 15*time.Minute)
	verifying := newTestManager(t, 15*time.Minute)

	token, err := issuing.CreateAccessToken("user-42", "person@example.com")
	if err != nil {
		t.Fatalf("CreateAccessToken() error = %v", err)
	}

	_, err = verifying.VerifyAccessToken(context.Background(), token)
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("VerifyAccessToken() error = %v, want token invalid", err)
	}
}
