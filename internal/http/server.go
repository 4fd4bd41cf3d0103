// Package http wires the REST API: routing, session auth, validation and
// the JSON response envelopes.
package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"productiv/internal/auth"
	"productiv/internal/middleware/ratelimit"
	"productiv/internal/middleware/trace"
	"productiv/internal/services"
	"productiv/internal/storage"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Services groups the domain services the handlers dispatch to.
type Services struct {
	Transactions *services.TransactionService
	Habits       *services.HabitService
	Exercises    *services.ExerciseService
	Accounts     *services.AccountService
	Budgets      *services.BudgetService
	Dashboard    *services.DashboardService
	Discover     *services.DiscoverService
}

type Server struct {
	repo           *storage.SQLiteRepository
	tokens         *auth.Manager
	svc            Services
	limiter        *ratelimit.Limiter
	allowedOrigins []string
}

func NewServer(repo *storage.SQLiteRepository, tokens *auth.Manager, svc Services, allowedOrigins []string) *Server {
	return &Server{
		repo:           repo,
		tokens:         tokens,
		svc:            svc,
		limiter:        ratelimit.NewLimiter(300),
		allowedOrigins: allowedOrigins,
	}
}

// Close stops background goroutines owned by the server.
func (s *Server) Close() {
	s.limiter.Stop()
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(trace.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(s.limiter.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/auth/me", s.handleMe)

			r.Get("/transactions", s.handleListTransactions)
			r.Post("/transactions", s.handleCreateTransaction)
			r.Put("/transactions/{id}", s.handleUpdateTransaction)
			r.Delete("/transactions/{id}", s.handleDeleteTransaction)

			r.Get("/habits", s.handleListHabits)
			r.Post("/habits", s.handleCreateHabit)
			r.Put("/habits/{id}", s.handleUpdateHabit)
			r.Delete("/habits/{id}", s.handleDeleteHabit)
			r.Post("/habits/{id}/complete", s.handleCompleteHabit)

			r.Get("/goals", s.handleListGoals)
			r.Post("/goals", s.handleCreateGoal)
			r.Get("/goals/{id}", s.handleGetGoal)
			r.Put("/goals/{id}", s.handleUpdateGoal)
			r.Delete("/goals/{id}", s.handleDeleteGoal)

			r.Get("/priorities", s.handleListPriorities)
			r.Post("/priorities", s.handleCreatePriority)
			r.Put("/priorities/{id}", s.handleUpdatePriority)
			r.Delete("/priorities/{id}", s.handleDeletePriority)

			r.Get("/exercises", s.handleListExercises)
			r.Post("/exercises", s.handleCreateExercise)
			r.Delete("/exercises/{id}", s.handleDeleteExercise)

			r.Get("/contacts", s.handleListContacts)
			r.Post("/contacts", s.handleCreateContact)
			r.Put("/contacts/{id}", s.handleUpdateContact)
			r.Delete("/contacts/{id}", s.handleDeleteContact)

			r.Get("/weekly-reviews", s.handleListWeeklyReviews)
			r.Post("/weekly-reviews", s.handleCreateWeeklyReview)

			r.Get("/budget-categories", s.handleListBudgetCategories)
			r.Post("/budget-categories", s.handleCreateBudgetCategory)
			r.Put("/budget-categories/{id}", s.handleUpdateBudgetCategory)
			r.Delete("/budget-categories/{id}", s.handleDeleteBudgetCategory)

			r.Get("/user/balances", s.handleGetBalances)
			r.Put("/user/balances", s.handleUpdateBalances)
			r.Get("/user/monthly-budget", s.handleGetMonthlyBudget)
			r.Put("/user/monthly-budget", s.handleUpdateMonthlyBudget)
			r.Get("/user/starting-balance", s.handleGetStartingBalance)
			r.Put("/user/starting-balance", s.handleUpdateStartingBalance)
			r.Post("/user/transfer", s.handleTransfer)

			r.Get("/dashboard/stats", s.handleDashboardStats)
			r.Get("/dashboard/charts", s.handleDashboardCharts)

			r.Get("/discover/connect", s.handleDiscoverStatus)
			r.Post("/discover/connect", s.handleDiscoverConnect)
			r.Delete("/discover/connect", s.handleDiscoverDisconnect)
			r.Post("/discover/sync", s.handleDiscoverSync)
			r.Post("/discover/import", s.handleDiscoverImport)
		})
	})

	return r
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.tokens.UserIDFromRequest(r)
		if err != nil {
			unauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userID returns the authenticated user set by requireAuth.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
