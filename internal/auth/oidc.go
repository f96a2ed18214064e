package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	config "github.com/Wesley-SdS/modern-ecommerce/configs"
	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

const stateKey = "oidc_state"

var ErrStateMismatch = errors.New("oidc state mismatch")

type OIDC struct {
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
}

// NewOIDC discovers the provider at cfg.Issuer.
func NewOIDC(ctx context.Context, cfg config.OIDCConfig) (*OIDC, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("OIDC provider init: %w", err)
	}

	return &OIDC{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email", "phone"},
		},
	}, nil
}

// LoginURL stores a fresh state in the session and returns the provider's
// authorization URL.
func (o *OIDC) LoginURL(c *gin.Context) (string, error) {
	state := uuid.NewString()
	sess := sessions.Default(c)
	sess.Set(stateKey, state)
	if err := sess.Save(); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return o.oauth2Config.AuthCodeURL(state), nil
}

// Exchange checks the callback state, trades the code for tokens and
// returns the verified ID token claims.
func (o *OIDC) Exchange(c *gin.Context, state, code string) (service.OIDCClaims, error) {
	var claims service.OIDCClaims

	sess := sessions.Default(c)
	want, _ := sess.Get(stateKey).(string)
	sess.Delete(stateKey)
	_ = sess.Save()
	if want == "" || want != state {
		return claims, ErrStateMismatch
	}
	if code == "" {
		return claims, errors.New("code missing")
	}

	ctx := c.Request.Context()
	token, err := o.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return claims, fmt.Errorf("token exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return claims, errors.New("no id_token in token response")
	}

	idToken, err := o.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return claims, fmt.Errorf("token verification failed: %w", err)
	}
	if err := idToken.Claims(&claims); err != nil {
		return claims, fmt.Errorf("claims parse error: %w", err)
	}
	return claims, nil
}
