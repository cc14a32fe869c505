package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/workpulse/workpulse-backend-go/internal/config"
	appHTTP "github.com/workpulse/workpulse-backend-go/internal/handler/http"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/cron"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/database"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/jwt"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/oauth"
	"github.com/workpulse/workpulse-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workpulse/workpulse-backend-go/internal/service/attendance"
	authService "github.com/workpulse/workpulse-backend-go/internal/service/auth"
	employeeService "github.com/workpulse/workpulse-backend-go/internal/service/employee"
	reportService "github.com/workpulse/workpulse-backend-go/internal/service/report"
	taskService "github.com/workpulse/workpulse-backend-go/internal/service/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	var GoogleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		GoogleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	authSvc := authService.NewAuthService(db, userRepo, JWTService, GoogleService)
	employeeSvc := employeeService.NewEmployeeService(db, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo)
	taskSvc := taskService.NewTaskService(db, taskRepo, userRepo)
	reportSvc := reportService.NewReportService(reportRepo, attendanceRepo, taskRepo, userRepo)

	router := appHTTP.NewRouter(cfg, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, JWTService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Task:       appHTTP.NewTaskHandler(taskSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Health:     appHTTP.NewHealthHandler(db),
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, userRepo).RegisterJobs(scheduler)
	cron.NewTaskJobs(taskRepo).RegisterJobs(scheduler)
	scheduler.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		scheduler.Stop()
		os.Exit(0)
	}()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
