package httpx

import (
	"net/http"

	"github.com/hirelens/hirelens/internal/service"
)

// RouterServices holds the services the HTTP router exposes.
type RouterServices struct {
	Passes  PassController          // Required: pass trigger and status surface
	Seeds   *service.SeedService    // Required: seed pool
	Archive *service.ArchiveService // Required: archive read side
}

// NewRouter creates and configures the HTTP router. Middleware (recover,
// logging, compression) is applied by the caller around the returned handler.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	registerStatusRoutes(mux, &StatusHandlers{Passes: services.Passes})
	registerPassRoutes(mux, &PassHandlers{Svc: services.Passes})
	registerSeedRoutes(mux, &SeedHandlers{Svc: services.Seeds})
	registerCompanyRoutes(mux, &CompanyHandlers{Svc: services.Archive})
	registerJobRoutes(mux, &JobHandlers{Svc: services.Archive})
	registerStatsRoutes(mux, &StatsHandlers{Archive: services.Archive, Seeds: services.Seeds})

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerStatusRoutes(mux *http.ServeMux, h *StatusHandlers) {
	mux.HandleFunc("GET /api/status", h.GetStatus)
}

func registerPassRoutes(mux *http.ServeMux, h *PassHandlers) {
	mux.HandleFunc("POST /api/passes/{mode}", h.Trigger)
	mux.HandleFunc("GET /api/passes", h.History)
}

func registerSeedRoutes(mux *http.ServeMux, h *SeedHandlers) {
	mux.HandleFunc("POST /api/seeds", h.Create)
	mux.HandleFunc("GET /api/seeds", h.List)
	mux.HandleFunc("GET /api/seeds/{id}", h.GetByID)
}

func registerCompanyRoutes(mux *http.ServeMux, h *CompanyHandlers) {
	mux.HandleFunc("GET /api/companies", h.List)
	mux.HandleFunc("GET /api/companies/{id}", h.GetByID)
	mux.HandleFunc("GET /api/companies/{id}/jobs", h.Jobs)
	mux.HandleFunc("GET /api/companies/{id}/snapshots", h.Snapshots)
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers) {
	mux.HandleFunc("GET /api/jobs", h.List)
}

func registerStatsRoutes(mux *http.ServeMux, h *StatsHandlers) {
	mux.HandleFunc("GET /api/stats", h.GetStats)
	mux.HandleFunc("GET /api/trends/skills", h.SkillTrends)
}
