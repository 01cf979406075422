// Package adherence son las transformaciones puras sobre medicaciones ya
// fetcheadas: horizonte de fechas, estadísticas y filtros de historial.
// Nunca muta sus entradas y nunca hace I/O; el caller trae el snapshot
// y persiste aparte.
package adherence

import (
	"math"
	"sort"
	"time"

	"med-reminder/internal/domain/medications"
)

const DefaultLookaheadDays = 7

// ExtendHorizon ordena y deduplica el conjunto de fechas programadas y agrega
// lookaheadDays fechas consecutivas después de la última, para que el selector
// siempre muestre días próximos aunque no haya nada programado en ellos.
// Entrada vacía => salida vacía: no inventamos lookahead de la nada.
func ExtendHorizon(dates []string, lookaheadDays int) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates)+lookaheadDays)

	for _, d := range dates {
		if _, err := time.Parse(medications.DateLayout, d); err != nil {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}

	if len(out) == 0 {
		return out
	}

	sort.Strings(out)

	last, _ := time.Parse(medications.DateLayout, out[len(out)-1])
	for i := 1; i <= lookaheadDays; i++ {
		out = append(out, last.AddDate(0, 0, i).Format(medications.DateLayout))
	}
	return out
}

// Statistics son los conteos del dashboard sobre una ventana de fechas.
type Statistics struct {
	Scheduled int
	Taken     int
	Missed    int
	Pending   int

	// AdherenceRate es porcentaje redondeado a entero (vista dashboard).
	// Ventana sin dosis programadas => 100: nada programado, nada perdido.
	AdherenceRate int
}

// ComputeStatistics cuenta pares (medicación, fecha) con fecha programada
// dentro de [windowStart, windowEnd] y los clasifica por su acción.
// Cada par aporta a lo sumo una acción, así que Pending nunca es negativo.
// Una fecha malformada en los datos se saltea: un registro roto no puede
// dejar el dashboard en blanco.
func ComputeStatistics(meds []medications.Medication, windowStart, windowEnd string) Statistics {
	var st Statistics

	for _, m := range meds {
		for _, d := range m.ScheduledDates {
			if _, err := time.Parse(medications.DateLayout, d); err != nil {
				continue
			}
			// Las fechas ISO comparan bien como strings.
			if d < windowStart || d > windowEnd {
				continue
			}
			st.Scheduled++

			a, ok := medications.FindAction(m, d)
			if !ok {
				continue
			}
			switch a.Status {
			case medications.StatusTaken:
				st.Taken++
			case medications.StatusMissed:
				st.Missed++
			}
		}
	}

	st.Pending = st.Scheduled - st.Taken - st.Missed

	if st.Scheduled == 0 {
		st.AdherenceRate = 100
	} else {
		st.AdherenceRate = int(math.Round(float64(st.Taken) / float64(st.Scheduled) * 100))
	}
	return st
}

// HistoryStatistics son los totales all-time de la vista de historial,
// contados sobre acciones (no sobre pares programados).
type HistoryStatistics struct {
	TotalActions int
	Taken        int
	Missed       int

	// AdherenceRate va con un decimal en esta vista (a diferencia del
	// dashboard, que redondea a entero). Ambas políticas conviven a
	// propósito; no unificar sin confirmación de producto.
	// Sin acciones => 0.
	AdherenceRate float64
}

func ComputeHistoryStatistics(meds []medications.Medication) HistoryStatistics {
	var st HistoryStatistics

	for _, m := range meds {
		for _, a := range m.Actions {
			st.TotalActions++
			switch a.Status {
			case medications.StatusTaken:
				st.Taken++
			case medications.StatusMissed:
				st.Missed++
			}
		}
	}

	if st.TotalActions > 0 {
		st.AdherenceRate = math.Round(float64(st.Taken)/float64(st.TotalActions)*100*10) / 10
	}
	return st
}

// StatusFilter filtra el historial por resultado de check-in.
type StatusFilter string

const (
	FilterAll    StatusFilter = "all"
	FilterTaken  StatusFilter = "taken"
	FilterMissed StatusFilter = "missed"
)

func (f StatusFilter) Valid() bool {
	return f == FilterAll || f == FilterTaken || f == FilterMissed
}

// FilterHistory devuelve las medicaciones según el filtro. Con "all" la
// entrada vuelve sin cambios. Con taken/missed, cada medicación queda solo
// con sus acciones del status pedido, y las que quedan sin ninguna se
// descartan. No muta la entrada: las copias llevan su propio slice.
func FilterHistory(meds []medications.Medication, f StatusFilter) []medications.Medication {
	if f == FilterAll {
		return meds
	}

	status := medications.ActionStatus(f)

	out := make([]medications.Medication, 0, len(meds))
	for _, m := range meds {
		matched := make([]medications.Action, 0, len(m.Actions))
		for _, a := range m.Actions {
			if a.Status == status {
				matched = append(matched, a)
			}
		}
		if len(matched) == 0 {
			continue
		}
		m.Actions = matched
		out = append(out, m)
	}
	return out
}

// WithActions descarta medicaciones sin acciones. Es la regla de inclusión
// del contexto historial; la lista de hoy NO la aplica. Las dos reglas
// coexisten adrede, una por call site.
func WithActions(meds []medications.Medication) []medications.Medication {
	out := make([]medications.Medication, 0, len(meds))
	for _, m := range meds {
		if len(m.Actions) > 0 {
			out = append(out, m)
		}
	}
	return out
}
