package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Medication, error)

	// AppendAction agrega la acción solo si no existe otra para
	// (medicationID, a.Date). Si ya existe, devuelve ErrDuplicateAction.
	// El chequeo debe ser atómico en el store: el gate del service no alcanza
	// cuando dos sesiones leen "ausente" a la vez.
	AppendAction(ctx context.Context, medicationID string, a Action) error
}
