// Package identity verifies bearer tokens issued by the configured identity provider.
package identity

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/Samadhi-12/MinuteMe/pkg/config"
	"github.com/Samadhi-12/MinuteMe/pkg/jwt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Principal is the verified subject of a bearer token
type Principal struct {
	Subject string
	Email   string
	Name    string
	Role    string
}

// Verifier turns a bearer token into a principal
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// New builds the verifier selected by AUTH_PROVIDER
func New(ctx context.Context, cfg *config.AuthConfig) (Verifier, error) {
	switch cfg.Provider {
	case config.AuthFirebase:
		return NewFirebaseVerifier(ctx, cfg)
	case config.AuthJWT:
		m, err := jwt.NewManager(cfg.JWTSecret, cfg.JWTPublicKeyPEM, cfg.JWTIssuer, cfg.DevTokenExpiry)
		if err != nil {
			return nil, err
		}
		return NewJWTVerifier(m), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}

// FirebaseVerifier checks Firebase ID tokens
type FirebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier initializes the Firebase admin auth client
func NewFirebaseVerifier(ctx context.Context, cfg *config.AuthConfig) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON)))
	}
	var fbCfg *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify validates the ID token signature and expiry
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	t, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	p := &Principal{Subject: t.UID}
	if email, ok := t.Claims["email"].(string); ok {
		p.Email = email
	}
	if name, ok := t.Claims["name"].(string); ok {
		p.Name = name
	}
	return p, nil
}

// JWTVerifier checks HS256/RS256 tokens from a self-hosted provider or the dev CLI
type JWTVerifier struct {
	manager *jwt.Manager
}

// NewJWTVerifier wraps a jwt manager
func NewJWTVerifier(m *jwt.Manager) *JWTVerifier {
	return &JWTVerifier{manager: m}
}

// Verify validates the token and maps its claims
func (v *JWTVerifier) Verify(_ context.Context, token string) (*Principal, error) {
	claims, err := v.manager.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &Principal{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Role:    claims.Role,
	}, nil
}
