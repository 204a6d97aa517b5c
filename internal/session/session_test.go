package session

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifierParse(t *testing.T) {
	verifier := NewVerifier(testSecret)

	tokenStr := signToken(t, testSecret, &Claims{
		Role:  "TECH",
		Name:  "Dana",
		Email: "dana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	principal, err := verifier.Parse(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-1", principal.UserID)
	assert.Equal(t, domain.RoleTech, principal.Role)
	assert.Equal(t, "Dana", principal.Name)
}

func TestVerifierParseRejectsUnknownRole(t *testing.T) {
	verifier := NewVerifier(testSecret)

	tokenStr := signToken(t, testSecret, &Claims{
		Role: "SUPERVISOR",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := verifier.Parse(tokenStr)
	assert.Error(t, err)
}

func TestVerifierParseRejectsWrongSecret(t *testing.T) {
	verifier := NewVerifier(testSecret)

	tokenStr := signToken(t, "other-secret", &Claims{
		Role: "CLIENT",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := verifier.Parse(tokenStr)
	assert.Error(t, err)
}

func TestVerifierParseRejectsExpiredToken(t *testing.T) {
	verifier := NewVerifier(testSecret)

	tokenStr := signToken(t, testSecret, &Claims{
		Role: "CLIENT",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := verifier.Parse(tokenStr)
	assert.Error(t, err)
}

func TestVerifierParseRejectsMissingSubject(t *testing.T) {
	verifier := NewVerifier(testSecret)

	tokenStr := signToken(t, testSecret, &Claims{
		Role: "CLIENT",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := verifier.Parse(tokenStr)
	assert.Error(t, err)
}
