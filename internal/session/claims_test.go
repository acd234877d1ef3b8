package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("not-our-secret"))
	require.NoError(t, err)

	info, err := InspectToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", info.Subject)
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.True(t, info.IssuedAt.IsZero())
}

func TestInspectOpaqueToken(t *testing.T) {
	_, err := InspectToken("tok1")
	assert.Error(t, err)
}
