package profiles

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"med-reminder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/me/profile", func(pr chi.Router) {
		pr.Put("/", saveProfileHandler(svc))
		pr.Get("/", getProfileHandler(svc))
	})
}

type saveProfileRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type profileResponse struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// saveProfileHandler godoc
// @Summary Guardar mi perfil
// @Description Upserta el perfil del usuario autenticado (display name + email). Los clientes lo llaman al completar el sign-in.
// @Tags profiles
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body saveProfileRequest true "Datos del perfil"
// @Success 200 {object} profileResponse
// @Failure 400 {string} string "invalid json / email faltante"
// @Failure 401 {string} string "unauthorized"
// @Router /me/profile [put]
func saveProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req saveProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// Si el body no trae datos, usamos lo que vino en los claims.
		if strings.TrimSpace(req.Email) == "" {
			req.Email = claims.Email
		}
		if strings.TrimSpace(req.DisplayName) == "" {
			req.DisplayName = claims.DisplayName
		}

		p, err := svc.Save(r.Context(), claims.UserID, SaveInput{
			DisplayName: req.DisplayName,
			Email:       req.Email,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// getProfileHandler godoc
// @Summary Obtener mi perfil
// @Tags profiles
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "profile not found"
// @Router /me/profile [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		UpdatedAt:   p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
