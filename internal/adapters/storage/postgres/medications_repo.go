package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"med-reminder/internal/domain/medications"
)

// MedicationsRepo persiste medicaciones y su log de acciones.
//
// Esquema esperado:
//
//	CREATE TABLE medications (
//	    id              text PRIMARY KEY,
//	    owner_id        text NOT NULL,
//	    name            text NOT NULL,
//	    type            text NOT NULL,
//	    dose            text NOT NULL,
//	    when_to_take    text NOT NULL,
//	    start_date      date NOT NULL,
//	    end_date        date NOT NULL,
//	    reminder_time   text NOT NULL,
//	    scheduled_dates jsonb NOT NULL,
//	    created_at      timestamptz NOT NULL
//	);
//	CREATE INDEX medications_owner_idx ON medications (owner_id);
//
//	CREATE TABLE medication_actions (
//	    id            text PRIMARY KEY,
//	    medication_id text NOT NULL REFERENCES medications (id),
//	    status        text NOT NULL,
//	    action_date   text NOT NULL,
//	    action_time   text NOT NULL,
//	    recorded_at   timestamptz NOT NULL,
//	    UNIQUE (medication_id, action_date)
//	);
//
// El UNIQUE (medication_id, action_date) es el que sostiene de verdad el
// invariante de una acción por día: el gate del service sobre un snapshot
// no alcanza con dos sesiones escribiendo a la vez.
type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	dates, err := json.Marshal(m.ScheduledDates)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, owner_id,
			name, type, dose, when_to_take,
			start_date, end_date, reminder_time,
			scheduled_dates,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		m.ID,
		m.OwnerID,
		m.Name,
		string(m.Type),
		m.Dose,
		string(m.When),
		m.StartDate,
		m.EndDate,
		m.ReminderTime,
		dates,
		m.CreatedAt,
	)
	return err
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_id,
			name, type, dose, when_to_take,
			start_date, end_date, reminder_time,
			scheduled_dates,
			created_at
		FROM medications
		WHERE id = $1
	`, id)

	m, err := scanMedication(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return medications.Medication{}, ErrNotFound
		}
		return medications.Medication{}, err
	}

	actions, err := r.listActions(ctx, m.ID)
	if err != nil {
		return medications.Medication{}, err
	}
	m.Actions = actions

	return m, nil
}

func (r *MedicationsRepo) ListByOwner(ctx context.Context, ownerID string) ([]medications.Medication, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_id,
			name, type, dose, when_to_take,
			start_date, end_date, reminder_time,
			scheduled_dates,
			created_at
		FROM medications
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Una query de acciones por medicación: simple y suficiente para el
	// volumen de este dominio (pocas medicaciones por usuario).
	for i := range out {
		actions, err := r.listActions(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Actions = actions
	}

	return out, nil
}

// AppendAction es el append condicional: el ON CONFLICT DO NOTHING contra el
// índice único convierte la carrera de dos check-ins simultáneos en un
// ErrDuplicateAction para el que llega segundo.
func (r *MedicationsRepo) AppendAction(ctx context.Context, medicationID string, a medications.Action) error {
	medicationID = strings.TrimSpace(medicationID)
	if medicationID == "" {
		return ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO medication_actions (
			id, medication_id,
			status, action_date, action_time,
			recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (medication_id, action_date) DO NOTHING
	`,
		a.ID,
		medicationID,
		string(a.Status),
		a.Date,
		a.Time,
		a.Timestamp,
	)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrDuplicateAction
	}
	return nil
}

func (r *MedicationsRepo) listActions(ctx context.Context, medicationID string) ([]medications.Action, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, medication_id,
			status, action_date, action_time,
			recorded_at
		FROM medication_actions
		WHERE medication_id = $1
		ORDER BY recorded_at ASC
	`, medicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Action, 0)
	for rows.Next() {
		var a medications.Action
		var status string

		if err := rows.Scan(
			&a.ID,
			&a.MedicationID,
			&status,
			&a.Date,
			&a.Time,
			&a.Timestamp,
		); err != nil {
			return nil, err
		}

		a.Status = medications.ActionStatus(status)
		out = append(out, a)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedication(row rowScanner) (medications.Medication, error) {
	var m medications.Medication
	var typ, when string
	var dates []byte

	if err := row.Scan(
		&m.ID,
		&m.OwnerID,
		&m.Name,
		&typ,
		&m.Dose,
		&when,
		&m.StartDate,
		&m.EndDate,
		&m.ReminderTime,
		&dates,
		&m.CreatedAt,
	); err != nil {
		return medications.Medication{}, err
	}

	m.Type = medications.MedicationType(typ)
	m.When = medications.WhenToTake(when)

	if err := json.Unmarshal(dates, &m.ScheduledDates); err != nil {
		return medications.Medication{}, err
	}

	return m, nil
}
