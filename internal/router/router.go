package router

import (
	"database/sql"
	"net/http"

	mem "med-reminder/internal/adapters/storage/memory"
	pg "med-reminder/internal/adapters/storage/postgres"
	"med-reminder/internal/domain/adherence"
	"med-reminder/internal/domain/medications"
	"med-reminder/internal/domain/profiles"
	"med-reminder/internal/middleware"
	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: si viene, loguea cada request.
	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if opts.Log != nil {
		r.Use(middleware.RequestLogger(opts.Log))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		medsRepo     medications.Repository
		profilesRepo profiles.Repository
	)

	if opts.DB != nil {
		medsRepo = pg.NewMedicationsRepo(opts.DB)
		profilesRepo = pg.NewProfilesRepo(opts.DB)
	} else {
		medsRepo = mem.NewMedicationsRepo()
		profilesRepo = mem.NewProfilesRepo()
	}

	// Services por módulo
	medsSvc := medications.NewService(medsRepo)
	profilesSvc := profiles.NewService(profilesRepo)

	// Rutas por módulo. adherence comparte el subrouter de medications:
	// sus rutas son estáticas y en chi ganan sobre /{medicationID}.
	r.Route("/medications", func(mr chi.Router) {
		medications.RegisterRoutes(mr, medsSvc)
		adherence.RegisterRoutes(mr, medsSvc)
	})
	profiles.RegisterRoutes(r, profilesSvc)

	return r
}
