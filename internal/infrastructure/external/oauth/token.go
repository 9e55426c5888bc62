package oauth

import (
	"golang.org/x/oauth2"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// ToEntity converts an oauth2 token into the persisted credential
func ToEntity(t *oauth2.Token) *entities.OAuthToken {
	if t == nil {
		return nil
	}
	return &entities.OAuthToken{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

// FromEntity converts a persisted credential back into an oauth2 token
func FromEntity(t *entities.OAuthToken) *oauth2.Token {
	if t == nil {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}
