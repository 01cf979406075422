package profiles

import "time"

// Profile es el perfil cacheado del usuario autenticado: lo que la app
// original guardaba en el storage local del dispositivo tras el sign-in.
// La identidad (password, tokens) vive en el servicio de identidad, no acá.
type Profile struct {
	UserID string

	DisplayName string
	Email       string

	UpdatedAt time.Time
}
