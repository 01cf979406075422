// Package jwtauth valida ID tokens firmados con HS256 cuando el deploy
// comparte el secreto con el servicio de identidad, evitando el round-trip
// de verificación remota.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"med-reminder/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret     = errors.New("jwt secret not configured")
	ErrInvalidToken = errors.New("invalid token")
)

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(strings.TrimSpace(secret))}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNoSecret
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, ErrInvalidToken
	}

	sub := strings.TrimSpace(claimString(mc, "sub"))
	if sub == "" {
		sub = strings.TrimSpace(claimString(mc, "user_id"))
	}
	if sub == "" {
		return auth.Claims{}, errors.New("token missing sub claim")
	}

	return auth.Claims{
		UserID:      sub,
		Email:       strings.TrimSpace(claimString(mc, "email")),
		DisplayName: strings.TrimSpace(claimString(mc, "name")),
	}, nil
}

func claimString(mc jwt.MapClaims, key string) string {
	if v, ok := mc[key].(string); ok {
		return v
	}
	return ""
}
