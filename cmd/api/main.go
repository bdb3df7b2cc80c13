package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/emenu-platform/attendance-backend-go/internal/config"
	appHTTP "github.com/emenu-platform/attendance-backend-go/internal/handler/http"
	"github.com/emenu-platform/attendance-backend-go/internal/pkg/cron"
	"github.com/emenu-platform/attendance-backend-go/internal/pkg/database"
	"github.com/emenu-platform/attendance-backend-go/internal/pkg/jwt"
	"github.com/emenu-platform/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/emenu-platform/attendance-backend-go/internal/service/attendance"
	policyService "github.com/emenu-platform/attendance-backend-go/internal/service/policy"
	scheduleService "github.com/emenu-platform/attendance-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	runTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, workScheduleRepo, location, runTx)
	policySvc := policyService.NewPolicyService(policyRepo)
	scheduleSvc := scheduleService.NewScheduleService(workScheduleRepo, policyRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	policyHandler := appHTTP.NewPolicyHandler(policySvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, workScheduleRepo, location).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, JWTService, attendanceHandler, policyHandler, scheduleHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
