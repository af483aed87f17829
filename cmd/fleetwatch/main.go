package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jhulio435m/iot-management-system/internal/config"
	"github.com/jhulio435m/iot-management-system/internal/database"
	httpapi "github.com/jhulio435m/iot-management-system/internal/http"
	"github.com/jhulio435m/iot-management-system/internal/repository"
	"github.com/jhulio435m/iot-management-system/internal/service"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg)
	defer logger.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	projectsRepo := repository.NewPostgresProjectsRepo(db)
	locationsRepo := repository.NewPostgresLocationsRepo(db)
	deviceTypesRepo := repository.NewPostgresDeviceTypesRepo(db)
	devicesRepo := repository.NewPostgresDevicesRepo(db)
	sensorsRepo := repository.NewPostgresSensorsRepo(db)
	readingsRepo := repository.NewPostgresReadingsRepo(db)
	alertsRepo := repository.NewPostgresAlertsRepo(db)
	maintenanceRepo := repository.NewPostgresMaintenanceRepo(db)
	usersRepo := repository.NewPostgresUsersRepo(db)
	firmwareRepo := repository.NewPostgresFirmwareRepo(db)
	metricsRepo := repository.NewPostgresMetricsRepo(db)

	stats := service.NewStatsService(
		projectsRepo, locationsRepo, devicesRepo, sensorsRepo, readingsRepo,
		alertsRepo, maintenanceRepo, usersRepo, firmwareRepo, metricsRepo,
		logger,
	)

	router := httpapi.NewRouter(httpapi.Handlers{
		Projects:    httpapi.NewProjectHandler(projectsRepo, stats, logger),
		Locations:   httpapi.NewLocationHandler(locationsRepo, stats, logger),
		DeviceTypes: httpapi.NewDeviceTypeHandler(deviceTypesRepo, logger),
		Devices:     httpapi.NewDeviceHandler(devicesRepo, logger),
		Sensors:     httpapi.NewSensorHandler(sensorsRepo, stats, logger),
		Readings:    httpapi.NewReadingHandler(readingsRepo, logger),
		Alerts:      httpapi.NewAlertHandler(alertsRepo, logger),
		Maintenance: httpapi.NewMaintenanceHandler(maintenanceRepo, stats, logger),
		Users:       httpapi.NewUserHandler(usersRepo, logger),
		Firmware:    httpapi.NewFirmwareHandler(firmwareRepo, stats, logger),
		Stats:       httpapi.NewStatsHandler(stats, logger),
	}, cfg.Auth.Token, logger)

	srv := service.NewServer(cfg.HTTP.Addr, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		if err != nil {
			logger.Error("server exited", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = db.Close()
}

func newLogger(cfg *config.Config) *zap.Logger {
	zc := zap.NewProductionConfig()
	if cfg.Log.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	if lvl, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := zc.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
