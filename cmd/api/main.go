package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workly-hq/hrms-backend-go/internal/config"
	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
	appHTTP "github.com/workly-hq/hrms-backend-go/internal/handler/http"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/clock"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/cron"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/database"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/geolocation"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/jwt"
	"github.com/workly-hq/hrms-backend-go/internal/repository/memory"
	"github.com/workly-hq/hrms-backend-go/internal/repository/postgresql"
	"github.com/workly-hq/hrms-backend-go/internal/repository/sqlitekv"
	attendanceService "github.com/workly-hq/hrms-backend-go/internal/service/attendance"
	authService "github.com/workly-hq/hrms-backend-go/internal/service/auth"
	employeeService "github.com/workly-hq/hrms-backend-go/internal/service/employee"
	holidayService "github.com/workly-hq/hrms-backend-go/internal/service/holiday"
	leaveService "github.com/workly-hq/hrms-backend-go/internal/service/leave"
	payrollService "github.com/workly-hq/hrms-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	var sessionStore attendance.Store
	switch cfg.Attendance.Store {
	case "postgres":
		sessionStore = postgresql.NewAttendanceStore(db)
	case "sqlite":
		sqliteDB, err := database.NewSQLiteDB(cfg.SQLite.Path)
		if err != nil {
			log.Fatal("Error opening sqlite store: ", err)
		}
		defer sqliteDB.Close()
		sessionStore, err = sqlitekv.NewStore(sqliteDB)
		if err != nil {
			log.Fatal("Error initializing sqlite store: ", err)
		}
	case "memory":
		sessionStore = memory.NewStore()
	default:
		log.Fatal("Unsupported attendance store: ", cfg.Attendance.Store)
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	systemClock := clock.System()

	authSvc := authService.NewAuthService(userRepo, jwtSvc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)

	tracker := attendanceService.NewTracker(
		sessionStore,
		systemClock,
		geolocation.Unavailable(),
		holidaySvc,
		leaveSvc,
		attendance.GridPolicy{
			FullDayMinutes: cfg.Attendance.FullDayMinutes,
			HalfDayMinutes: cfg.Attendance.HalfDayMinutes,
		},
		cfg.Attendance.TickInterval,
	)
	go tracker.Run(ctx)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(sessionStore, userRepo, systemClock, cfg.Attendance.HistoryDays)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtSvc, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtSvc, authSvc),
		Attendance: appHTTP.NewAttendanceHandler(tracker, systemClock, cfg.Attendance.HistoryDays),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
	}, []string{cfg.App.FrontendURL})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
