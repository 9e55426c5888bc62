package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samadhi-12/MinuteMe/pkg/config"
	"github.com/Samadhi-12/MinuteMe/pkg/jwt"
)

func TestJWTVerifier(t *testing.T) {
	m, err := jwt.NewManager("test-secret", "", "minuteme", time.Hour)
	require.NoError(t, err)
	tok, err := m.GenerateToken("user-1", "a@example.com", "Ann", "admin")
	require.NoError(t, err)

	p, err := NewJWTVerifier(m).Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.Subject)
	assert.Equal(t, "a@example.com", p.Email)
	assert.Equal(t, "admin", p.Role)

	_, err = NewJWTVerifier(m).Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSelectsJWT(t *testing.T) {
	v, err := New(context.Background(), &config.AuthConfig{Provider: config.AuthJWT, JWTSecret: "s", DevTokenExpiry: time.Hour})
	require.NoError(t, err)
	assert.IsType(t, &JWTVerifier{}, v)

	_, err = New(context.Background(), &config.AuthConfig{Provider: "saml"})
	assert.Error(t, err)
}
