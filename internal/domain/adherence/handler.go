package adherence

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"med-reminder/internal/domain/medications"
	"med-reminder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra las vistas derivadas (agenda, historial, stats).
// Se espera el mismo subrouter /medications que usa el módulo medications;
// en chi las rutas estáticas ganan sobre {medicationID}.
func RegisterRoutes(r chi.Router, medsSvc *medications.Service) {
	r.Get("/schedule", scheduleHandler(medsSvc))
	r.Get("/dates", datesHandler(medsSvc))
	r.Get("/history", historyHandler(medsSvc))
	r.Get("/stats", statsHandler(medsSvc))
}

// scheduleItem es una medicación programada para la fecha pedida,
// con su acción (si ya hubo check-in).
type scheduleItem struct {
	Medication medications.MedicationResponse `json:"medication"`
	Action     *medications.ActionResponse    `json:"action,omitempty"`
	CanCheckIn bool                           `json:"can_check_in"`
}

type scheduleResponse struct {
	Date  string         `json:"date"`
	Items []scheduleItem `json:"items"`
}

type datesResponse struct {
	Dates []string `json:"dates"`
}

// historyResponse lleva los totales all-time y la lista filtrada.
type historyResponse struct {
	Statistics historyStatsResponse             `json:"statistics"`
	Items      []medications.MedicationResponse `json:"items"`
}

type historyStatsResponse struct {
	TotalActions  int     `json:"total_actions"`
	Taken         int     `json:"taken"`
	Missed        int     `json:"missed"`
	AdherenceRate float64 `json:"adherence_rate"` // un decimal
}

type statsResponse struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Scheduled     int    `json:"scheduled"`
	Taken         int    `json:"taken"`
	Missed        int    `json:"missed"`
	Pending       int    `json:"pending"`
	AdherenceRate int    `json:"adherence_rate"` // entero redondeado
}

// scheduleHandler godoc
// @Summary Agenda del día
// @Description Medicaciones programadas para la fecha (default hoy) con el estado del check-in de cada una. Incluye medicaciones sin acciones: es el contexto "lista de hoy".
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param date query string false "Fecha YYYY-MM-DD (default hoy)"
// @Success 200 {object} scheduleResponse
// @Failure 400 {string} string "date inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /medications/schedule [get]
func scheduleHandler(medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		date := strings.TrimSpace(r.URL.Query().Get("date"))
		if date == "" {
			date = time.Now().Format(medications.DateLayout)
		} else if _, err := time.Parse(medications.DateLayout, date); err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		meds, err := medsSvc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		items := make([]scheduleItem, 0, len(meds))
		for _, m := range meds {
			if !scheduledOn(m, date) {
				continue
			}
			item := scheduleItem{
				Medication: medications.ToMedicationResponse(m),
				CanCheckIn: medications.CanRecord(m, date),
			}
			if a, ok := medications.FindAction(m, date); ok {
				resp := medications.ToActionResponse(a)
				item.Action = &resp
			}
			items = append(items, item)
		}

		writeJSON(w, http.StatusOK, scheduleResponse{Date: date, Items: items})
	}
}

// datesHandler godoc
// @Summary Fechas del selector
// @Description Unión ordenada de todas las fechas programadas del usuario más 7 días de lookahead después de la última. Sin medicaciones => lista vacía.
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} datesResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /medications/dates [get]
func datesHandler(medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		meds, err := medsSvc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		var all []string
		for _, m := range meds {
			all = append(all, m.ScheduledDates...)
		}

		writeJSON(w, http.StatusOK, datesResponse{
			Dates: ExtendHorizon(all, DefaultLookaheadDays),
		})
	}
}

// historyHandler godoc
// @Summary Historial de adherencia
// @Description Medicaciones con al menos una acción, filtrables por status. Con taken/missed cada medicación queda solo con sus acciones de ese status. Los totales se calculan siempre sobre el historial completo, no sobre el filtro.
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param status query string false "all | taken | missed (default all)"
// @Success 200 {object} historyResponse
// @Failure 400 {string} string "status inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /medications/history [get]
func historyHandler(medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		filter := StatusFilter(strings.TrimSpace(r.URL.Query().Get("status")))
		if filter == "" {
			filter = FilterAll
		}
		if !filter.Valid() {
			http.Error(w, "status must be all, taken or missed", http.StatusBadRequest)
			return
		}

		meds, err := medsSvc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		history := WithActions(meds)
		st := ComputeHistoryStatistics(history)
		filtered := FilterHistory(history, filter)

		items := make([]medications.MedicationResponse, 0, len(filtered))
		for _, m := range filtered {
			items = append(items, medications.ToMedicationResponse(m))
		}

		writeJSON(w, http.StatusOK, historyResponse{
			Statistics: historyStatsResponse{
				TotalActions:  st.TotalActions,
				Taken:         st.Taken,
				Missed:        st.Missed,
				AdherenceRate: st.AdherenceRate,
			},
			Items: items,
		})
	}
}

// statsHandler godoc
// @Summary Estadísticas del dashboard
// @Description Conteos de pares (medicación, fecha programada) dentro de la ventana [from, to]. Default: últimos 7 días terminando hoy. Ventana sin dosis programadas => adherence_rate 100.
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param from query string false "Fecha YYYY-MM-DD inicio de ventana"
// @Param to query string false "Fecha YYYY-MM-DD fin de ventana"
// @Success 200 {object} statsResponse
// @Failure 400 {string} string "from/to inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /medications/stats [get]
func statsHandler(medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		now := time.Now()
		from := now.AddDate(0, 0, -6).Format(medications.DateLayout)
		to := now.Format(medications.DateLayout)

		if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
			if _, err := time.Parse(medications.DateLayout, v); err != nil {
				http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			from = v
		}
		if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
			if _, err := time.Parse(medications.DateLayout, v); err != nil {
				http.Error(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			to = v
		}
		if from > to {
			http.Error(w, "from must be on or before to", http.StatusBadRequest)
			return
		}

		meds, err := medsSvc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		st := ComputeStatistics(meds, from, to)
		writeJSON(w, http.StatusOK, statsResponse{
			From:          from,
			To:            to,
			Scheduled:     st.Scheduled,
			Taken:         st.Taken,
			Missed:        st.Missed,
			Pending:       st.Pending,
			AdherenceRate: st.AdherenceRate,
		})
	}
}

func scheduledOn(m medications.Medication, date string) bool {
	for _, d := range m.ScheduledDates {
		if d == date {
			return true
		}
	}
	return false
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
