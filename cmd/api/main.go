package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/config"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/schedule"
	appHTTP "github.com/brightline-ops/cleanops-backend-go/internal/handler/http"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/cron"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/database"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/jwt"
	"github.com/brightline-ops/cleanops-backend-go/internal/repository/postgresql"
	accountService "github.com/brightline-ops/cleanops-backend-go/internal/service/account"
	contractService "github.com/brightline-ops/cleanops-backend-go/internal/service/contract"
	facilityService "github.com/brightline-ops/cleanops-backend-go/internal/service/facility"
	jobService "github.com/brightline-ops/cleanops-backend-go/internal/service/job"
	schedulingService "github.com/brightline-ops/cleanops-backend-go/internal/service/scheduling"
	timeclockService "github.com/brightline-ops/cleanops-backend-go/internal/service/timeclock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	accountRepo := postgresql.NewAccountRepository(db)
	facilityRepo := postgresql.NewFacilityRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	normalizer := schedule.NewNormalizer(nil, time.Monday)

	accountSvc := accountService.NewAccountService(accountRepo)
	facilitySvc := facilityService.NewFacilityService(facilityRepo, accountRepo)
	contractSvc := contractService.NewContractService(contractRepo, teamRepo)
	schedulingSvc := schedulingService.NewSchedulingService(contractRepo, facilityRepo, jobRepo, normalizer)
	jobSvc := jobService.NewJobService(jobRepo, contractRepo, facilityRepo, normalizer)
	timeClockSvc := timeclockService.NewTimeClockService(
		timeEntryRepo,
		jobRepo,
		facilityRepo,
		contractRepo,
		normalizer,
		cfg.Scheduling.DefaultGeofenceRadiusM,
	)

	accountHandler := appHTTP.NewAccountHandler(accountSvc)
	facilityHandler := appHTTP.NewFacilityHandler(facilitySvc)
	contractHandler := appHTTP.NewContractHandler(contractSvc, schedulingSvc)
	jobHandler := appHTTP.NewJobHandler(jobSvc)
	timeClockHandler := appHTTP.NewTimeClockHandler(timeClockSvc)

	scheduler := cron.NewScheduler()
	maintenance := cron.NewMaintenanceJobs(jobRepo, schedulingSvc, cfg.Scheduling.GenerationHorizonDays, cfg.Scheduling.CronInterval)
	maintenance.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		accountHandler,
		facilityHandler,
		contractHandler,
		jobHandler,
		timeClockHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
