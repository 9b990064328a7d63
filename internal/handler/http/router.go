package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/workly-hq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Employee   EmployeeHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
	Holiday    HolidayHandler
}

func NewRouter(jwtService jwt.Service, h Handlers, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/today", h.Attendance.Today)
				r.Get("/history", h.Attendance.History)
				r.Get("/calendar", h.Attendance.Calendar)
				r.Patch("/notes", h.Attendance.UpdateNotes)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.GetSelf)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/", h.Employee.Create)
					r.Get("/", h.Employee.List)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)

					r.With(middleware.RequireAdmin).Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", h.Leave.Apply)
				r.Get("/", h.Leave.MyRequests)
				r.Get("/balances", h.Leave.MyBalances)
				r.Delete("/{id}", h.Leave.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/pending", h.Leave.ListPending)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/payslips/me", h.Payroll.MyPayslips)
				r.Get("/payslips/{id}", h.Payroll.GetPayslip)
				r.Get("/provident-fund/me", h.Payroll.MyProvidentFund)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/payslips", h.Payroll.CreatePayslip)
					r.Get("/payslips", h.Payroll.ListPayslips)
					r.Post("/payslips/{id}/pay", h.Payroll.MarkPaid)
					r.Post("/provident-fund", h.Payroll.UpsertProvidentFund)
					r.Get("/provident-fund", h.Payroll.ListProvidentFunds)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.ListYear)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/", h.Holiday.Create)
					r.Delete("/{id}", h.Holiday.Delete)
				})
			})
		})
	})

	return r
}
