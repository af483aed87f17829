package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jhulio435m/iot-management-system/internal/config"
	"github.com/jhulio435m/iot-management-system/internal/database"
	"github.com/jhulio435m/iot-management-system/internal/domain"
	"github.com/jhulio435m/iot-management-system/internal/repository"
)

// Seeds a small demo fleet through the repositories. Unique columns
// are salted with a run id so repeated runs do not collide.

func main() {
	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	salt := uuid.New().String()[:8]

	projectsRepo := repository.NewPostgresProjectsRepo(db)
	locationsRepo := repository.NewPostgresLocationsRepo(db)
	deviceTypesRepo := repository.NewPostgresDeviceTypesRepo(db)
	devicesRepo := repository.NewPostgresDevicesRepo(db)
	sensorsRepo := repository.NewPostgresSensorsRepo(db)
	readingsRepo := repository.NewPostgresReadingsRepo(db)
	alertsRepo := repository.NewPostgresAlertsRepo(db)
	maintenanceRepo := repository.NewPostgresMaintenanceRepo(db)
	usersRepo := repository.NewPostgresUsersRepo(db)

	project, err := projectsRepo.CreateProject(ctx, &domain.Project{
		Name:        fmt.Sprintf("Smart Warehouse %s", salt),
		Description: sql.NullString{String: "Cold-chain monitoring rollout", Valid: true},
		Status:      domain.ProjectStatusActive,
		Budget:      sql.NullFloat64{Float64: 250000, Valid: true},
		StartDate:   sql.NullTime{Time: time.Now().AddDate(0, -3, 0), Valid: true},
	})
	if err != nil {
		log.Fatalf("seed project: %v", err)
	}

	location, err := locationsRepo.CreateLocation(ctx, &domain.Location{
		Name:      fmt.Sprintf("Warehouse North %s", salt),
		Address:   sql.NullString{String: "Av. Industrial 1200", Valid: true},
		City:      sql.NullString{String: "Lima", Valid: true},
		Country:   sql.NullString{String: "Peru", Valid: true},
		Latitude:  sql.NullFloat64{Float64: -12.0464, Valid: true},
		Longitude: sql.NullFloat64{Float64: -77.0428, Valid: true},
	})
	if err != nil {
		log.Fatalf("seed location: %v", err)
	}

	deviceType, err := deviceTypesRepo.CreateDeviceType(ctx, &domain.DeviceType{
		Name:           fmt.Sprintf("ESP32 Gateway %s", salt),
		Description:    sql.NullString{String: "WiFi/BLE gateway node", Valid: true},
		Manufacturer:   sql.NullString{String: "Espressif", Valid: true},
		Specifications: sql.NullString{String: `{"cpu":"dual-core 240MHz","ram_kb":520}`, Valid: true},
	})
	if err != nil {
		log.Fatalf("seed device type: %v", err)
	}

	technician, err := usersRepo.CreateUser(ctx, &domain.User{
		Name:  "Rosa Quispe",
		Email: fmt.Sprintf("rosa.quispe+%s@example.com", salt),
		Role:  domain.RoleTechnician,
	})
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	statuses := []string{
		domain.DeviceStatusOnline, domain.DeviceStatusOnline,
		domain.DeviceStatusOffline, domain.DeviceStatusMaintenance,
	}
	for i, status := range statuses {
		device, err := devicesRepo.CreateDevice(ctx, &domain.Device{
			ProjectID:       project.ProjectID,
			DeviceTypeID:    deviceType.DeviceTypeID,
			LocationID:      sql.NullString{String: location.LocationID, Valid: true},
			Name:            fmt.Sprintf("gw-%s-%02d", salt, i+1),
			MACAddress:      fmt.Sprintf("AA:BB:%02X:%02X:%02X:%02X", rand.Intn(256), rand.Intn(256), rand.Intn(256), i),
			Status:          status,
			FirmwareVersion: sql.NullString{String: "1.4.2", Valid: true},
			LastSeen:        sql.NullTime{Time: time.Now().Add(-time.Duration(i) * time.Hour), Valid: true},
		})
		if err != nil {
			log.Fatalf("seed device: %v", err)
		}

		sensor, err := sensorsRepo.CreateSensor(ctx, &domain.Sensor{
			DeviceID:   device.DeviceID,
			Name:       fmt.Sprintf("temp-%02d", i+1),
			SensorType: "temperature",
			Unit:       "°C",
			MinValue:   sql.NullFloat64{Float64: -20, Valid: true},
			MaxValue:   sql.NullFloat64{Float64: 10, Valid: true},
			IsActive:   true,
		})
		if err != nil {
			log.Fatalf("seed sensor: %v", err)
		}

		for j := 0; j < 24; j++ {
			_, err := readingsRepo.CreateReading(ctx, &domain.Reading{
				SensorID:     sensor.SensorID,
				Value:        -5 + rand.Float64()*8,
				QualityScore: 0.85 + rand.Float64()*0.15,
				Timestamp:    time.Now().Add(-time.Duration(j) * time.Hour),
			})
			if err != nil {
				log.Fatalf("seed reading: %v", err)
			}
		}

		if status != domain.DeviceStatusOnline {
			_, err := alertsRepo.CreateAlert(ctx, &domain.Alert{
				DeviceID:  device.DeviceID,
				AlertType: "connectivity",
				Severity:  domain.AlertSeverityHigh,
				Message:   fmt.Sprintf("device %s unreachable", device.Name),
				Status:    domain.AlertStatusActive,
			})
			if err != nil {
				log.Fatalf("seed alert: %v", err)
			}

			_, err = maintenanceRepo.CreateLog(ctx, &domain.MaintenanceLog{
				DeviceID:        device.DeviceID,
				TechnicianID:    technician.UserID,
				MaintenanceType: domain.MaintenanceTypeCorrective,
				Description:     sql.NullString{String: "check antenna and power supply", Valid: true},
				Status:          domain.MaintenanceStatusScheduled,
				ScheduledDate:   sql.NullTime{Time: time.Now().AddDate(0, 0, 2), Valid: true},
				Cost:            sql.NullFloat64{Float64: 120, Valid: true},
			})
			if err != nil {
				log.Fatalf("seed maintenance log: %v", err)
			}
		}
	}

	fmt.Printf("Seeded demo fleet for project %s\n", project.Name)
}
