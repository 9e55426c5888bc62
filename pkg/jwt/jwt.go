package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrExpired is returned for tokens past their exp claim
var ErrExpired = errors.New("token expired")

// Manager signs and verifies bearer tokens.
// HS256 with a shared secret, or RS256 verification against a provider public key.
type Manager struct {
	secret    []byte
	publicKey *rsa.PublicKey
	issuer    string
	expiry    time.Duration
}

// NewManager creates a new JWT manager. publicKeyPEM may be empty.
func NewManager(secret, publicKeyPEM, issuer string, expiry time.Duration) (*Manager, error) {
	m := &Manager{
		secret: []byte(secret),
		issuer: issuer,
		expiry: expiry,
	}
	if publicKeyPEM != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key: %w", err)
		}
		m.publicKey = key
	}
	if len(m.secret) == 0 && m.publicKey == nil {
		return nil, errors.New("jwt secret or public key is required")
	}
	if m.expiry <= 0 {
		m.expiry = 24 * time.Hour
	}
	return m, nil
}

// GenerateToken mints an HS256 token for local development and the CLI
func (m *Manager) GenerateToken(userID, email, name, role string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("cannot mint tokens without a shared secret")
	}
	now := time.Now()
	claims := &Claims{
		Email: email,
		Name:  name,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken validates and parses a token
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "RS256"})}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if len(m.secret) == 0 {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		case *jwt.SigningMethodRSA:
			if m.publicKey == nil {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.publicKey, nil
		}
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}

// Expiry returns the lifetime of minted tokens
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}
