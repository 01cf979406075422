package medications

import (
	"errors"
	"time"
)

// DateLayout es el formato de todas las fechas calendario del dominio.
const DateLayout = "2006-01-02"

var ErrInvalidRange = errors.New("start date after end date")

// ExpandRange expande [start, end] inclusivo a una fecha por día calendario,
// ascendente. La hora se descarta antes de comparar y avanzar.
// start == end produce una sola fecha.
func ExpandRange(start, end time.Time) ([]string, error) {
	s := dateOnly(start)
	e := dateOnly(end)

	if s.After(e) {
		return nil, ErrInvalidRange
	}

	out := make([]string, 0, int(e.Sub(s).Hours()/24)+1)
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DateLayout))
	}
	return out, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FindAction devuelve la acción registrada para la fecha, comparando solo
// por fecha calendario. Si un dato corrupto trae más de una, gana la primera:
// la integridad del log es responsabilidad del writer, no del lector.
func FindAction(m Medication, date string) (Action, bool) {
	for _, a := range m.Actions {
		if a.Date == date {
			return a, true
		}
	}
	return Action{}, false
}

// CanRecord indica si todavía no hay acción para (medicación, fecha).
// Es el gate de "un check-in por día"; el repositorio igual re-valida en el
// write para cubrir la carrera entre dos sesiones.
func CanRecord(m Medication, date string) bool {
	_, ok := FindAction(m, date)
	return !ok
}
