package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken("user-123", "founder")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("Subject = %q, want user-123", claims.Subject)
	}
	if claims.Role != "founder" {
		t.Errorf("Role = %q, want founder", claims.Role)
	}
}

func TestGenerateTokenEmptyUserID(t *testing.T) {
	svc := NewJWTService("test-secret")

	if _, err := svc.GenerateToken("", "founder"); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("GenerateToken(\"\") error = %v, want ErrEmptyUserID", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	signer := NewJWTService("secret-a")
	verifier := NewJWTService("secret-b")

	token, err := signer.GenerateToken("user-123", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := verifier.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService("test-secret")

	if _, err := svc.ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService("test-secret")

	// Expired well past the validation leeway
	past := time.Now().Add(-2 * time.Hour)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(AccessTokenExpiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken() error = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenRejectsWrongAlgorithm(t *testing.T) {
	svc := NewJWTService("test-secret")

	// alg=none tokens must never validate
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestDualKeyRotation(t *testing.T) {
	old := NewJWTService("old-secret")
	oldToken, err := old.GenerateToken("user-123", "investor")
	if err != nil {
		t.Fatal(err)
	}

	rotated := NewJWTServiceWithRotation("new-secret", "old-secret")

	// Tokens signed with the previous secret still validate
	claims, err := rotated.ValidateToken(oldToken)
	if err != nil {
		t.Fatalf("ValidateToken(old token) error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("Subject = %q, want user-123", claims.Subject)
	}

	// New tokens are signed with the current secret
	newToken, err := rotated.GenerateToken("user-456", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewJWTService("new-secret").ValidateToken(newToken); err != nil {
		t.Errorf("new token should validate with current secret: %v", err)
	}
	if _, err := NewJWTService("old-secret").ValidateToken(newToken); err == nil {
		t.Error("new token should not validate with the previous secret alone")
	}
}

func TestRotationWithEmptyPrevious(t *testing.T) {
	svc := NewJWTServiceWithRotation("only-secret", "")

	token, err := svc.GenerateToken("user-123", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ValidateToken(token); err != nil {
		t.Errorf("ValidateToken() error: %v", err)
	}
}
