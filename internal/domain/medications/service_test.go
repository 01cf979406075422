package medications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// testRepo es un repo en memoria solo para tests del service. Replica el
// contrato atómico de AppendAction bajo un mutex.
type testRepo struct {
	mu   sync.Mutex
	meds map[string]Medication
}

func newTestRepo() *testRepo {
	return &testRepo{meds: make(map[string]Medication)}
}

func (r *testRepo) Create(_ context.Context, m Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meds[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meds[id]
	if !ok {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *testRepo) ListByOwner(_ context.Context, ownerID string) ([]Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Medication
	for _, m := range r.meds {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) AppendAction(_ context.Context, medicationID string, a Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meds[medicationID]
	if !ok {
		return ErrNotFound
	}
	if _, exists := FindAction(m, a.Date); exists {
		return ErrDuplicateAction
	}
	m.Actions = append(m.Actions, a)
	r.meds[medicationID] = m
	return nil
}

func newTestService(repo *testRepo, now time.Time) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc
}

func validCreateInput() CreateInput {
	return CreateInput{
		Name:         "Paracetamol",
		Type:         "Tablet",
		Dose:         "500mg",
		When:         "morning_after",
		StartDate:    day(2024, 6, 1),
		EndDate:      day(2024, 6, 3),
		ReminderTime: "08:00",
	}
}

func TestService_Create_DerivesScheduledDates(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, day(2024, 5, 30))

	m, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.ID == "" {
		t.Fatal("expected generated id")
	}
	if m.OwnerID != "user-1" {
		t.Fatalf("expected owner user-1, got %s", m.OwnerID)
	}
	want := []string{"2024-06-01", "2024-06-02", "2024-06-03"}
	if len(m.ScheduledDates) != len(want) {
		t.Fatalf("expected %d scheduled dates, got %v", len(want), m.ScheduledDates)
	}
	for i := range want {
		if m.ScheduledDates[i] != want[i] {
			t.Fatalf("scheduled date %d: expected %s, got %s", i, want[i], m.ScheduledDates[i])
		}
	}
	if len(m.Actions) != 0 {
		t.Fatalf("expected no actions on create, got %d", len(m.Actions))
	}

	// Y quedó persistida.
	if _, err := repo.GetByID(context.Background(), m.ID); err != nil {
		t.Fatalf("expected persisted medication: %v", err)
	}
}

func TestService_Create_InvalidRange(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, day(2024, 5, 30))

	in := validCreateInput()
	in.StartDate = day(2024, 6, 5)
	in.EndDate = day(2024, 6, 1)

	_, err := svc.Create(context.Background(), "user-1", in)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	// Nada debió persistirse.
	if len(repo.meds) != 0 {
		t.Fatalf("expected empty repo, got %d medications", len(repo.meds))
	}
}

func TestService_Create_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"empty name", func(in *CreateInput) { in.Name = "  " }},
		{"empty dose", func(in *CreateInput) { in.Dose = "" }},
		{"unknown type", func(in *CreateInput) { in.Type = "potion" }},
		{"unknown when", func(in *CreateInput) { in.When = "midnight" }},
		{"bad reminder time", func(in *CreateInput) { in.ReminderTime = "8 en punto" }},
		{"zero start date", func(in *CreateInput) { in.StartDate = time.Time{} }},
		{"zero end date", func(in *CreateInput) { in.EndDate = time.Time{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(newTestRepo(), day(2024, 5, 30))
			in := validCreateInput()
			tc.mutate(&in)

			_, err := svc.Create(context.Background(), "user-1", in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestService_GetOwned_OtherOwnerIsNotFound(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, day(2024, 5, 30))

	m, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetOwned(context.Background(), "user-2", m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other owner, got %v", err)
	}
	if _, err := svc.GetOwned(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestService_RecordAction_DefaultsToToday(t *testing.T) {
	repo := newTestRepo()
	now := time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	m, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := svc.RecordAction(context.Background(), "user-1", m.ID, RecordActionInput{Status: StatusTaken})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Date != "2024-06-02" {
		t.Fatalf("expected date 2024-06-02, got %s", a.Date)
	}
	if a.Time != "09:30" {
		t.Fatalf("expected time 09:30, got %s", a.Time)
	}
	if a.MedicationID != m.ID {
		t.Fatalf("expected medication id %s, got %s", m.ID, a.MedicationID)
	}
}

func TestService_RecordAction_DuplicateDate(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, day(2024, 6, 1))

	m, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := svc.RecordAction(context.Background(), "user-1", m.ID, RecordActionInput{
		Status: StatusTaken,
		Date:   "2024-06-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Segundo intento para la misma fecha, incluso con otro status, rebota.
	_, err = svc.RecordAction(context.Background(), "user-1", m.ID, RecordActionInput{
		Status: StatusMissed,
		Date:   "2024-06-01",
	})
	if !errors.Is(err, ErrDuplicateAction) {
		t.Fatalf("expected ErrDuplicateAction, got %v", err)
	}

	// La acción original quedó intacta.
	got, err := repo.GetByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(got.Actions))
	}
	if got.Actions[0].ID != first.ID || got.Actions[0].Status != StatusTaken {
		t.Fatalf("original action mutated: %+v", got.Actions[0])
	}

	// Otra fecha sí se puede registrar.
	if _, err := svc.RecordAction(context.Background(), "user-1", m.ID, RecordActionInput{
		Status: StatusMissed,
		Date:   "2024-06-02",
	}); err != nil {
		t.Fatalf("unexpected error on second date: %v", err)
	}
}

func TestService_RecordAction_Validation(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, day(2024, 6, 1))

	m, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.RecordAction(context.Background(), "user-1", m.ID, RecordActionInput{
		Status: "snoozed",
		Date:   "2024-06-01",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad status, got %v", err)
	}

	if _, err := svc.RecordAction(context.Background(), "user-1", m.ID, RecordActionInput{
		Status: StatusTaken,
		Date:   "01/06/2024",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", err)
	}

	if _, err := svc.RecordAction(context.Background(), "user-2", m.ID, RecordActionInput{
		Status: StatusTaken,
		Date:   "2024-06-01",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other owner, got %v", err)
	}
}
