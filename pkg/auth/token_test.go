package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/epc-retail/exclusivity-backend/pkg/config"
)

func mintTestToken(t *testing.T, cfg config.JWTConfig, claims AccessTokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func testClaims(issuer string) AccessTokenClaims {
	now := time.Now()
	return AccessTokenClaims{
		UserID: uuid.New(),
		Name:   "Pat Reyes",
		Email:  "pat.reyes@example.com",
		Role:   "merchandiser",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestParseAccessTokenRoundTrip(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test-secret", Issuer: "epc-retail"}
	claims := testClaims(cfg.Issuer)
	signed := mintTestToken(t, cfg, claims)

	parsed, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.UserID != claims.UserID {
		t.Fatalf("user id mismatch: %s vs %s", parsed.UserID, claims.UserID)
	}
	if parsed.Email != claims.Email {
		t.Fatalf("email mismatch: %s vs %s", parsed.Email, claims.Email)
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test-secret", Issuer: "epc-retail"}
	signed := mintTestToken(t, cfg, testClaims("someone-else"))

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected issuer validation failure")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test-secret", Issuer: "epc-retail"}
	claims := testClaims(cfg.Issuer)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	signed := mintTestToken(t, cfg, claims)

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expiry validation failure")
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test-secret", Issuer: "epc-retail"}
	signed := mintTestToken(t, cfg, testClaims(cfg.Issuer))

	wrong := config.JWTConfig{Secret: "other", Issuer: cfg.Issuer}
	if _, err := ParseAccessToken(wrong, signed); err == nil {
		t.Fatal("expected signature validation failure")
	}
}
