package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse/workpulse-backend-go/internal/config"
	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
	"github.com/workpulse/workpulse-backend-go/internal/handler/http/middleware"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Task       TaskHandler
	Report     ReportHandler
	Health     HealthHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workpulse-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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

	r.Get("/health", h.Health.Health)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			if cfg.OAuth2Google.Enabled() {
				r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
				r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
			}

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Put("/me", h.Employee.UpdateProfile)
				r.Get("/{id}", h.Employee.Get)

				// Staff only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeViewAll))
					r.Get("/", h.Employee.List)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/mark", h.Attendance.Mark)
				r.Post("/break", h.Attendance.Break)
				r.Get("/today", h.Attendance.Today)
				r.Get("/current-break", h.Attendance.CurrentBreak)
				r.Get("/history", h.Attendance.History)
				r.Get("/stats/monthly", h.Attendance.MonthlyStats)
				r.Get("/analytics", h.Attendance.Analytics)
				r.Put("/productivity", h.Attendance.UpdateProductivity)
				r.Post("/corrections", h.Attendance.SubmitCorrection)

				// Staff only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/user/{userID}", h.Attendance.UserHistory)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceCorrect))
					r.Get("/corrections/pending", h.Attendance.ListPendingCorrections)
					r.Put("/corrections/{id}", h.Attendance.ResolveCorrection)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Task.List)
				r.Post("/", h.Task.Create)
				r.Get("/{id}", h.Task.Get)
				r.Put("/{id}", h.Task.Update)
				r.Delete("/{id}", h.Task.Delete)
				r.Post("/{id}/comments", h.Task.AddComment)
				r.Post("/{id}/time-entries", h.Task.AddTimeEntry)
			})

			// Staff only
			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/dashboard", h.Report.Dashboard)
				r.Get("/employees/{id}", h.Report.EmployeeDetail)
				r.Get("/attendance", h.Report.AttendanceReport)
				r.Get("/productivity", h.Report.ProductivityReport)
				r.Get("/activity", h.Report.RecentActivity)
			})
		})
	})

	return r
}
