package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/auth"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	want := auth.Identity{
		UserID:     "3f0b8a1e-9a2c-4d7e-8f61-2b9c0d4e5a6b",
		EmployeeID: "7c1d2e3f-4a5b-4c6d-8e9f-0a1b2c3d4e5f",
		BusinessID: "9e8d7c6b-5a4f-4e3d-8c2b-1a0f9e8d7c6b",
		Role:       "employee",
	}

	tokenString, err := svc.GenerateAccessToken(want, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	got, err := svc.IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestIdentityFromClaims(t *testing.T) {
	svc := NewJWTService("test-secret")

	t.Run("rejects non-access token type", func(t *testing.T) {
		_, err := svc.IdentityFromClaims(map[string]interface{}{
			"type":        "refresh",
			"employee_id": "emp",
			"business_id": "biz",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects missing employee_id", func(t *testing.T) {
		_, err := svc.IdentityFromClaims(map[string]interface{}{
			"type":        "access",
			"business_id": "biz",
		})
		assert.ErrorIs(t, err, auth.ErrMissingClaims)
	})

	t.Run("rejects missing business_id", func(t *testing.T) {
		_, err := svc.IdentityFromClaims(map[string]interface{}{
			"type":        "access",
			"employee_id": "emp",
		})
		assert.ErrorIs(t, err, auth.ErrMissingClaims)
	})
}
