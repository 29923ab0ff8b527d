package main

import (
	"context"
	"fmt"
	"os"

	"fleet-service/internal/auth"
	"fleet-service/internal/config"
	"fleet-service/internal/db"
	httphandler "fleet-service/internal/http"
	"fleet-service/internal/http/middleware"
	"fleet-service/internal/logger"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	sectorRepo := repository.NewSectorRepository(database)
	employeeRepo := repository.NewEmployeeRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	requestRepo := repository.NewRequestRepository(database)
	tripRepo := repository.NewTripRepository(database)
	maintenanceRepo := repository.NewMaintenanceRepository(database)

	policy := service.PolicyFromName(cfg.Fleet.AssignmentPolicy)

	requestService := service.NewRequestService(database, sectorRepo, employeeRepo, vehicleRepo, requestRepo, tripRepo, policy)
	tripService := service.NewTripService(database, tripRepo, employeeRepo, vehicleRepo)
	maintenanceService := service.NewMaintenanceService(database, maintenanceRepo, vehicleRepo)
	rosterService := service.NewRosterService(employeeRepo, vehicleRepo, sectorRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(requestService, tripService, maintenanceService, rosterService, log)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), cfg.Environment, func(ctx context.Context) error {
		return db.HealthCheck(ctx, database)
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().
		Str("addr", addr).
		Str("assignment_policy", policy.Name()).
		Msg("starting fleet service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
