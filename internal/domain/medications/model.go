package medications

import "time"

// Medication representa un tratamiento prescrito con rango de fechas fijo.
// El rango no se redimensiona una vez creado.
type Medication struct {
	ID      string
	OwnerID string

	Name string
	Type MedicationType
	Dose string
	When WhenToTake

	StartDate time.Time
	EndDate   time.Time

	// ReminderTime es HH:MM, solo para mostrar. No participa del scheduling.
	ReminderTime string

	// ScheduledDates es la expansión día a día de [StartDate, EndDate],
	// derivada una sola vez al crear y persistida junto al documento.
	ScheduledDates []string

	// Actions es append-only, una por fecha calendario como máximo.
	Actions []Action

	CreatedAt time.Time
}

// Action registra un taken/missed para una medicación en una fecha calendario.
// Nunca se edita ni se borra una vez escrita.
type Action struct {
	ID           string
	MedicationID string

	Status ActionStatus

	// Date (YYYY-MM-DD) es la clave para "ya hizo check-in", no el Timestamp.
	Date string

	// Time es HH:MM del registro, solo display.
	Time string

	// Timestamp es el instante de creación, se usa para ordenar historial.
	Timestamp time.Time
}
