package auth

import "context"

// AuthVerifier verifica un ID token y devuelve claims o error.
// La autenticación en sí (passwords, refresh) es del servicio de identidad;
// este servicio solo valida tokens ya emitidos.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
