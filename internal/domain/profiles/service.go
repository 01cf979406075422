package profiles

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type SaveInput struct {
	DisplayName string
	Email       string
}

// Save upserta el perfil; los clientes lo llaman al completar el sign-in.
// Es idempotente: la última escritura gana.
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Email) == "" {
		return Profile{}, ErrInvalidInput
	}

	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		name = "User"
	}

	p := Profile{
		UserID:      userID,
		DisplayName: name,
		Email:       strings.TrimSpace(in.Email),
		UpdatedAt:   s.now(),
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return Profile{}, ErrNotFound
	}
	return p, nil
}
