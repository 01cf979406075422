package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"med-reminder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra el CRUD de medicaciones y el write path de check-in.
// Se espera un subrouter ya montado en /medications (ver internal/router).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/", createMedicationHandler(svc))
	r.Get("/", listMedicationsHandler(svc))
	r.Get("/{medicationID}", getMedicationHandler(svc))

	// Check-in: una acción por (medicación, fecha)
	r.Post("/{medicationID}/actions", recordActionHandler(svc))
}

// createMedicationRequest es el cuerpo para registrar una medicación.
type createMedicationRequest struct {
	Name         string `json:"name"`
	Type         string `json:"type" enums:"Tablet,Syrup,Injection,Capsule,Cream,Ointment"`
	Dose         string `json:"dose"`
	WhenToTake   string `json:"when_to_take" enums:"morning_before,morning_after,afternoon_before,afternoon_after,evening_before,evening_after,night_before,night_after"`
	StartDate    string `json:"start_date"`    // YYYY-MM-DD
	EndDate      string `json:"end_date"`      // YYYY-MM-DD
	ReminderTime string `json:"reminder_time"` // HH:MM
}

// recordActionRequest es el cuerpo de un check-in.
type recordActionRequest struct {
	Status string `json:"status" enums:"taken,missed"`
	Date   string `json:"date"` // YYYY-MM-DD; vacío => hoy
}

// MedicationResponse representa una medicación devuelta por la API.
// Se exporta porque los handlers de adherencia arman sus vistas sobre la misma representación.
type MedicationResponse struct {
	ID             string           `json:"id"`
	OwnerID        string           `json:"owner_id"`
	Name           string           `json:"name"`
	Type           MedicationType   `json:"type"`
	TypeIcon       string           `json:"type_icon"`
	Dose           string           `json:"dose"`
	WhenToTake     WhenToTake       `json:"when_to_take"`
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date"`
	ReminderTime   string           `json:"reminder_time"`
	ScheduledDates []string         `json:"scheduled_dates"`
	Actions        []ActionResponse `json:"actions"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ActionResponse representa un check-in registrado.
type ActionResponse struct {
	ID        string       `json:"id"`
	Status    ActionStatus `json:"status"`
	Date      string       `json:"date"`
	Time      string       `json:"time"`
	Timestamp time.Time    `json:"timestamp"`
}

// createMedicationHandler godoc
// @Summary Registrar medicación
// @Description Crea una medicación con rango [start_date, end_date] inclusivo. Las fechas programadas se derivan una sola vez acá y quedan persistidas. Rechaza start_date > end_date antes de persistir.
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createMedicationRequest true "Datos de la medicación; fechas en YYYY-MM-DD, reminder_time en HH:MM"
// @Success 201 {object} MedicationResponse
// @Failure 400 {string} string "invalid json / rango inválido / campos faltantes"
// @Failure 401 {string} string "unauthorized"
// @Router /medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := time.Parse(DateLayout, strings.TrimSpace(req.StartDate))
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, err := time.Parse(DateLayout, strings.TrimSpace(req.EndDate))
		if err != nil {
			http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:         req.Name,
			Type:         req.Type,
			Dose:         req.Dose,
			When:         req.WhenToTake,
			StartDate:    start,
			EndDate:      end,
			ReminderTime: req.ReminderTime,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidRange) {
				http.Error(w, "start_date must be on or before end_date", http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, ToMedicationResponse(m))
	}
}

// listMedicationsHandler godoc
// @Summary Listar mis medicaciones
// @Description Lista todas las medicaciones del usuario autenticado, incluidas las que todavía no tienen acciones (contexto "lista de hoy").
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} MedicationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]MedicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, ToMedicationResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getMedicationHandler godoc
// @Summary Obtener una medicación
// @Description Devuelve una medicación del usuario autenticado. Una medicación ajena responde 404: no se revela su existencia.
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID de la medicación"
// @Success 200 {object} MedicationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [get]
func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.GetOwned(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"))
		if err != nil {
			http.Error(w, "medication not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, ToMedicationResponse(m))
	}
}

// recordActionHandler godoc
// @Summary Registrar check-in (taken/missed)
// @Description Registra la acción del día para una medicación. Solo una acción por (medicación, fecha): un segundo intento responde 409 con mensaje explícito, nunca sobreescribe en silencio.
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID de la medicación"
// @Param payload body recordActionRequest true "status taken|missed; date YYYY-MM-DD opcional (default hoy)"
// @Success 201 {object} ActionResponse
// @Failure 400 {string} string "status o date inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Failure 409 {string} string "already recorded for this date"
// @Router /medications/{medicationID}/actions [post]
func recordActionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req recordActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.RecordAction(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"), RecordActionInput{
			Status: ActionStatus(strings.TrimSpace(req.Status)),
			Date:   req.Date,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrDuplicateAction):
				http.Error(w, "already recorded for this date", http.StatusConflict)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "medication not found", http.StatusNotFound)
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
			return
		}

		writeJSON(w, http.StatusCreated, ToActionResponse(a))
	}
}

func ToMedicationResponse(m Medication) MedicationResponse {
	actions := make([]ActionResponse, 0, len(m.Actions))
	for _, a := range m.Actions {
		actions = append(actions, ToActionResponse(a))
	}
	return MedicationResponse{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		Name:           m.Name,
		Type:           m.Type,
		TypeIcon:       m.Type.IconURL(),
		Dose:           m.Dose,
		WhenToTake:     m.When,
		StartDate:      m.StartDate.Format(DateLayout),
		EndDate:        m.EndDate.Format(DateLayout),
		ReminderTime:   m.ReminderTime,
		ScheduledDates: m.ScheduledDates,
		Actions:        actions,
		CreatedAt:      m.CreatedAt,
	}
}

func ToActionResponse(a Action) ActionResponse {
	return ActionResponse{
		ID:        a.ID,
		Status:    a.Status,
		Date:      a.Date,
		Time:      a.Time,
		Timestamp: a.Timestamp,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
