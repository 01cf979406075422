package auth

// Claims es la información extraída del ID token del servicio de identidad.
// El engine solo consume UserID; email y display name alimentan el perfil.
type Claims struct {
	UserID      string
	Email       string
	DisplayName string
}
