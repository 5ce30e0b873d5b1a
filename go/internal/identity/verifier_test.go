package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer = "lockerroomlink-idp"
)

var testSecret = []byte("test-secret-0123456789")

func signToken(t *testing.T, secret []byte, mutate func(*providerClaims)) string {
	t.Helper()
	pc := providerClaims{
		Role: RoleCoach,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	if mutate != nil {
		mutate(&pc)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, pc).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestVerify(t *testing.T) {
	v := NewVerifier(testSecret, testIssuer)

	subject := uuid.New()
	token := signToken(t, testSecret, func(pc *providerClaims) {
		pc.Subject = subject.String()
	})

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, subject, claims.CoachID)
	assert.Equal(t, RoleCoach, claims.Role)
}

func TestVerifyCommissionerRole(t *testing.T) {
	v := NewVerifier(testSecret, testIssuer)
	token := signToken(t, testSecret, func(pc *providerClaims) { pc.Role = RoleCommissioner })

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleCommissioner, claims.Role)
}

func TestVerifyRejections(t *testing.T) {
	v := NewVerifier(testSecret, testIssuer)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"wrong secret", signToken(t, []byte("other-secret"), nil)},
		{"wrong issuer", signToken(t, testSecret, func(pc *providerClaims) { pc.Issuer = "someone-else" })},
		{"expired", signToken(t, testSecret, func(pc *providerClaims) {
			pc.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		})},
		{"missing expiry", signToken(t, testSecret, func(pc *providerClaims) { pc.ExpiresAt = nil })},
		{"non-uuid subject", signToken(t, testSecret, func(pc *providerClaims) { pc.Subject = "coach-42" })},
		{"unknown role", signToken(t, testSecret, func(pc *providerClaims) { pc.Role = "referee" })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	v := NewVerifier(testSecret, testIssuer)

	pc := providerClaims{
		Role: RoleCoach,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, pc).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
