package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/brightline-ops/cleanops-backend-go/internal/handler/http/middleware"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	accountHandler AccountHandler,
	facilityHandler FacilityHandler,
	contractHandler ContractHandler,
	jobHandler JobHandler,
	timeClockHandler TimeClockHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "cleanops-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", accountHandler.List)
				r.Get("/{id}", accountHandler.Get)

				// Manager or above
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", accountHandler.Create)
					r.Put("/{id}", accountHandler.Update)
					r.Delete("/{id}", accountHandler.Delete)
				})
			})

			r.Route("/facilities", func(r chi.Router) {
				r.Get("/", facilityHandler.List)
				r.Get("/{id}", facilityHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", facilityHandler.Create)
					r.Put("/{id}", facilityHandler.Update)
					r.Delete("/{id}", facilityHandler.Delete)
				})
			})

			r.Route("/contracts", func(r chi.Router) {
				r.Get("/", contractHandler.List)
				r.Get("/{id}", contractHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Put("/{id}/assignment", contractHandler.UpdateAssignment)
					r.Post("/{id}/generate-jobs", contractHandler.GenerateJobs)
				})
			})

			r.Get("/teams", contractHandler.ListTeams)

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", jobHandler.List)
				r.Get("/{id}", jobHandler.Get)
				r.Post("/{id}/start", jobHandler.Start)
				r.Post("/{id}/complete", jobHandler.Complete)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/{id}/cancel", jobHandler.Cancel)
					r.Put("/{id}/assignment", jobHandler.Assign)
				})
			})

			r.Route("/time-entries", func(r chi.Router) {
				r.Post("/clock-in", timeClockHandler.ClockIn)
				r.Post("/clock-out", timeClockHandler.ClockOut)
				r.Get("/active", timeClockHandler.GetActive)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", timeClockHandler.List)
				})
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	return r
}
