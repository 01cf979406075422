package profiles

import "context"

type Repository interface {
	// Upsert crea o reemplaza el perfil del usuario.
	Upsert(ctx context.Context, p Profile) error
	GetByUserID(ctx context.Context, userID string) (Profile, error)
}
