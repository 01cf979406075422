package postgres

import (
	"context"
	"database/sql"
	"strings"

	"med-reminder/internal/domain/profiles"
)

// ProfilesRepo persiste el perfil cacheado por usuario.
//
// Esquema esperado:
//
//	CREATE TABLE user_profiles (
//	    user_id      text PRIMARY KEY,
//	    display_name text NOT NULL,
//	    email        text NOT NULL,
//	    updated_at   timestamptz NOT NULL
//	);
type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, display_name, email, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			email        = EXCLUDED.email,
			updated_at   = EXCLUDED.updated_at
	`,
		p.UserID,
		p.DisplayName,
		p.Email,
		p.UpdatedAt,
	)
	return err
}

func (r *ProfilesRepo) GetByUserID(ctx context.Context, userID string) (profiles.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profiles.Profile{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, display_name, email, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`, userID)

	var p profiles.Profile
	if err := row.Scan(&p.UserID, &p.DisplayName, &p.Email, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return profiles.Profile{}, ErrNotFound
		}
		return profiles.Profile{}, err
	}

	return p, nil
}
