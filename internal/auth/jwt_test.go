package auth_test

import (
	"testing"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/auth"
	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123"

func TestVerifier_RoundTrip(t *testing.T) {
	v := auth.NewVerifier(secret)
	who := entities.Identity{UserID: "u1", Email: "u1@example.com", Role: entities.RoleAdmin}

	token, err := v.Issue(who, time.Hour)
	require.NoError(t, err)

	got, err := v.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, who, got)
}

func TestVerifier_Rejects(t *testing.T) {
	v := auth.NewVerifier(secret)

	expired, err := v.Issue(entities.Identity{UserID: "u1"}, -time.Minute)
	require.NoError(t, err)

	foreign, err := auth.NewVerifier("another-secret-value").Issue(entities.Identity{UserID: "u1"}, time.Hour)
	require.NoError(t, err)

	noSubject, err := v.Issue(entities.Identity{Email: "x@example.com"}, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := map[string]string{
		"garbage":    "not-a-token",
		"expired":    expired,
		"bad secret": foreign,
		"no subject": noSubject,
		"alg none":   none,
	}

	for name, token := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Parse(token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}
