package medications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("medication not found")
	ErrDuplicateAction = errors.New("action already recorded for this date")
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

type CreateInput struct {
	Name         string
	Type         string
	Dose         string
	When         string
	StartDate    time.Time
	EndDate      time.Time
	ReminderTime string // HH:MM
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Medication, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Medication{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Medication{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Dose) == "" {
		return Medication{}, ErrInvalidInput
	}

	typ := MedicationType(strings.TrimSpace(in.Type))
	if !typ.Valid() {
		return Medication{}, ErrInvalidInput
	}
	when := WhenToTake(strings.TrimSpace(in.When))
	if !when.Valid() {
		return Medication{}, ErrInvalidInput
	}

	reminder := strings.TrimSpace(in.ReminderTime)
	if _, err := time.Parse("15:04", reminder); err != nil {
		return Medication{}, ErrInvalidInput
	}

	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return Medication{}, ErrInvalidInput
	}

	// La validación del rango ocurre acá, antes de derivar o persistir nada.
	dates, err := ExpandRange(in.StartDate, in.EndDate)
	if err != nil {
		return Medication{}, err
	}

	m := Medication{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(in.Name),
		Type:           typ,
		Dose:           strings.TrimSpace(in.Dose),
		When:           when,
		StartDate:      dateOnly(in.StartDate),
		EndDate:        dateOnly(in.EndDate),
		ReminderTime:   reminder,
		ScheduledDates: dates,
		Actions:        nil,
		CreatedAt:      s.now(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// GetOwned devuelve la medicación solo si pertenece al owner.
// Para otro usuario responde ErrNotFound: no revelamos existencia.
func (s *Service) GetOwned(ctx context.Context, ownerID, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrInvalidInput
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Medication{}, ErrNotFound
	}
	if m.OwnerID != ownerID {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Medication, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

type RecordActionInput struct {
	Status ActionStatus
	Date   string // YYYY-MM-DD; vacío => hoy
}

// RecordAction registra un taken/missed para la fecha. La transición es de
// una sola vía: ausente -> presente; no hay edición ni borrado.
func (s *Service) RecordAction(ctx context.Context, ownerID, medicationID string, in RecordActionInput) (Action, error) {
	if !in.Status.Valid() {
		return Action{}, ErrInvalidInput
	}

	now := s.now()

	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = now.Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return Action{}, ErrInvalidInput
	}

	m, err := s.GetOwned(ctx, ownerID, medicationID)
	if err != nil {
		return Action{}, err
	}

	// Gate: se evalúa justo antes del write. El repo re-chequea atómicamente.
	if !CanRecord(m, date) {
		return Action{}, ErrDuplicateAction
	}

	a := Action{
		ID:           uuid.NewString(),
		MedicationID: m.ID,
		Status:       in.Status,
		Date:         date,
		Time:         now.Format("15:04"),
		Timestamp:    now,
	}

	if err := s.repo.AppendAction(ctx, m.ID, a); err != nil {
		return Action{}, err
	}
	return a, nil
}
