package auth_test

import (
	"testing"

	"github.com/uslu-pos/api/internal/auth"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := auth.GenerateToken(secret, "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := auth.ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}

	if claims.Username != "admin" {
		t.Errorf("username: got %v, want admin", claims.Username)
	}
}

func TestValidateTokenWithWrongSecret(t *testing.T) {
	token, err := auth.GenerateToken("secret-a", "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, err = auth.ValidateToken("secret-b", token)
	if err == nil {
		t.Fatal("expected error validating with wrong secret")
	}
}

func TestValidateTokenWithInvalidString(t *testing.T) {
	_, err := auth.ValidateToken("secret", "not-a-jwt")
	if err == nil {
		t.Fatal("expected error validating invalid token string")
	}
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	secret := "test-secret"

	token, err := auth.GenerateRefreshToken(secret, "admin")
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	username, err := auth.ValidateRefreshToken(secret, token)
	if err != nil {
		t.Fatalf("validate refresh token: %v", err)
	}
	if username != "admin" {
		t.Errorf("subject: got %v, want admin", username)
	}
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	secret := "test-secret"

	token, err := auth.GenerateToken(secret, "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	// Access tokens carry no subject, so the refresh path rejects them.
	if _, err := auth.ValidateRefreshToken(secret, token); err == nil {
		t.Fatal("expected access token to be rejected as refresh token")
	}
}
