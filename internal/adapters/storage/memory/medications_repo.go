package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"med-reminder/internal/domain/medications"
)

var ErrNotFound = errors.New("not found")

type medicationsRepo struct {
	mu   sync.RWMutex
	byID map[string]medications.Medication
}

func NewMedicationsRepo() medications.Repository {
	return &medicationsRepo{
		byID: make(map[string]medications.Medication),
	}
}

func (r *medicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medication already exists")
	}

	r.byID[m.ID] = m
	return nil
}

func (r *medicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medications.Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *medicationsRepo) ListByOwner(ctx context.Context, ownerID string) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Medication, 0)
	for _, m := range r.byID {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

// AppendAction chequea e inserta bajo el mismo write lock: es el equivalente
// in-memory del append condicional atómico que pide el invariante de una
// acción por (medicación, fecha).
func (r *medicationsRepo) AppendAction(ctx context.Context, medicationID string, a medications.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[medicationID]
	if !ok {
		return ErrNotFound
	}

	if _, exists := medications.FindAction(m, a.Date); exists {
		return medications.ErrDuplicateAction
	}

	m.Actions = append(m.Actions, a)
	r.byID[medicationID] = m
	return nil
}
