package httpserver

import (
	"net/http"
	"time"

	"roomies-go/internal/config"
	"roomies-go/internal/metrics"
	"roomies-go/internal/transport/httpserver/handler"
	authmw "roomies-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, session *authmw.SessionAuth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))
	r.Use(metrics.InstrumentHandler)

	if cfg.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)
		r.Post("/auth/refresh", handlers.Refresh)
		r.Post("/auth/logout", handlers.Logout)

		r.Post("/users", handlers.ProvisionUser)

		r.Group(func(r chi.Router) {
			r.Use(session.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Post("/households", handlers.CreateHousehold)
			r.Get("/households", handlers.ListHouseholds)
			r.Get("/households/{id}", handlers.GetHousehold)
			r.Patch("/households/{id}", handlers.UpdateHousehold)
			r.Get("/households/{id}/members", handlers.ListHouseholdMembers)
			r.Delete("/households/{id}/members/{user_id}", handlers.RemoveHouseholdMember)

			r.Get("/invitations", handlers.ListInvitations)
			r.Post("/invitations", handlers.CreateInvitation)
			r.Patch("/invitations/{id}", handlers.RespondInvitation)

			r.Get("/expenses", handlers.ListExpenses)
			r.Post("/expenses", handlers.CreateExpense)
			r.Get("/expenses/balances", handlers.HouseholdBalances)
			r.Get("/expenses/{id}", handlers.GetExpense)
			r.Put("/expenses/{id}", handlers.UpdateExpense)
			r.Delete("/expenses/{id}", handlers.DeleteExpense)
			r.Put("/payments/{id}", handlers.UpdatePaymentStatus)

			r.Get("/tasks", handlers.ListTasks)
			r.Post("/tasks", handlers.CreateTask)
			r.Get("/tasks/{id}", handlers.GetTask)
			r.Patch("/tasks/{id}", handlers.UpdateTask)
			r.Delete("/tasks/{id}", handlers.DeleteTask)
			r.Post("/tasks/{id}/complete", handlers.CompleteTask)
		})
	})

	return r
}
