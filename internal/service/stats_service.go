package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jhulio435m/iot-management-system/internal/domain"
	"github.com/jhulio435m/iot-management-system/internal/repository"
)

// StatsService builds the aggregation views. Primary fetches fail the
// request; per-entity follow-up fetches degrade that entity's block to
// zeros with a warning so one broken row cannot blank a whole view.
type StatsService struct {
	projects    repository.ProjectsRepository
	locations   repository.LocationsRepository
	devices     repository.DevicesRepository
	sensors     repository.SensorsRepository
	readings    repository.ReadingsRepository
	alerts      repository.AlertsRepository
	maintenance repository.MaintenanceRepository
	users       repository.UsersRepository
	firmware    repository.FirmwareRepository
	metrics     repository.MetricsRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewStatsService(
	projects repository.ProjectsRepository,
	locations repository.LocationsRepository,
	devices repository.DevicesRepository,
	sensors repository.SensorsRepository,
	readings repository.ReadingsRepository,
	alerts repository.AlertsRepository,
	maintenance repository.MaintenanceRepository,
	users repository.UsersRepository,
	firmware repository.FirmwareRepository,
	metrics repository.MetricsRepository,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		projects:    projects,
		locations:   locations,
		devices:     devices,
		sensors:     sensors,
		readings:    readings,
		alerts:      alerts,
		maintenance: maintenance,
		users:       users,
		firmware:    firmware,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// ProjectSummaries returns every project with its devices and derived
// stats block, newest project first.
func (s *StatsService) ProjectSummaries(ctx context.Context) ([]map[string]any, error) {
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	rows := mapConcurrent(projects, func(p *domain.Project) map[string]any {
		row := p.ToJSON()

		devices, err := s.devices.ListDevicesByProject(ctx, p.ProjectID)
		if err != nil {
			s.logger.Warn("project devices fetch failed, degrading stats",
				zap.String("project_id", p.ProjectID), zap.Error(err))
			row["devices"] = []map[string]any{}
			row["stats"] = ReduceProjectStats(nil, 0, 0).ToJSON()
			return row
		}

		ids := deviceIDs(devices)
		activeAlerts, err := s.alerts.CountActiveByDevices(ctx, ids)
		if err != nil {
			s.logger.Warn("project alert count failed",
				zap.String("project_id", p.ProjectID), zap.Error(err))
			activeAlerts = 0
		}
		maintenanceRecords, err := s.maintenance.CountByDevices(ctx, ids)
		if err != nil {
			s.logger.Warn("project maintenance count failed",
				zap.String("project_id", p.ProjectID), zap.Error(err))
			maintenanceRecords = 0
		}

		row["devices"] = deviceJSON(devices)
		row["stats"] = ReduceProjectStats(devices, activeAlerts, maintenanceRecords).ToJSON()
		return row
	})
	return rows, nil
}

// LocationStats returns every location with its devices and a
// per-status stats block, ordered by name.
func (s *StatsService) LocationStats(ctx context.Context) ([]map[string]any, error) {
	locations, err := s.locations.ListLocations(ctx)
	if err != nil {
		return nil, err
	}

	rows := mapConcurrent(locations, func(l *domain.Location) map[string]any {
		row := l.ToJSON()

		devices, err := s.devices.ListDevicesByLocation(ctx, l.LocationID)
		if err != nil {
			s.logger.Warn("location devices fetch failed, degrading stats",
				zap.String("location_id", l.LocationID), zap.Error(err))
			row["devices"] = []map[string]any{}
			row["stats"] = ReduceLocationStats(nil, 0).ToJSON()
			return row
		}

		activeAlerts, err := s.alerts.CountActiveByDevices(ctx, deviceIDs(devices))
		if err != nil {
			s.logger.Warn("location alert count failed",
				zap.String("location_id", l.LocationID), zap.Error(err))
			activeAlerts = 0
		}

		row["devices"] = deviceJSON(devices)
		row["stats"] = ReduceLocationStats(devices, activeAlerts).ToJSON()
		return row
	})
	return rows, nil
}

// SensorAnalytics returns every sensor with its device context and a
// stats block over the most recent readings window.
func (s *StatsService) SensorAnalytics(ctx context.Context) ([]map[string]any, error) {
	sensors, err := s.sensors.ListSensorsForAnalytics(ctx)
	if err != nil {
		return nil, err
	}

	rows := mapConcurrent(sensors, func(sn *domain.Sensor) map[string]any {
		row := sn.ToAnalyticsJSON()

		window, err := s.readings.ListRecentBySensor(ctx, sn.SensorID, repository.DefaultReadingLimit)
		if err != nil {
			s.logger.Warn("sensor readings fetch failed, degrading stats",
				zap.String("sensor_id", sn.SensorID), zap.Error(err))
			row["stats"] = DegradedSensorStats()
			return row
		}
		row["stats"] = ReduceSensorStats(window, s.now()).ToJSON()
		return row
	})
	return rows, nil
}

// TechnicianPerformance returns technicians and engineers with their
// maintenance workload stats and five most recent tasks.
func (s *StatsService) TechnicianPerformance(ctx context.Context) ([]map[string]any, error) {
	techs, err := s.users.ListTechnicians(ctx)
	if err != nil {
		return nil, err
	}

	rows := mapConcurrent(techs, func(t *domain.User) map[string]any {
		logs, err := s.maintenance.ListLogsByTechnician(ctx, t.UserID)
		if err != nil {
			s.logger.Warn("technician logs fetch failed, degrading stats",
				zap.String("user_id", t.UserID), zap.Error(err))
			logs = nil
		}

		recent := logs
		if len(recent) > 5 {
			recent = recent[:5]
		}
		recentTasks := make([]map[string]any, 0, len(recent))
		for _, l := range recent {
			recentTasks = append(recentTasks, l.ToJSON())
		}

		return map[string]any{
			"id":          t.UserID,
			"name":        t.Name,
			"email":       t.Email,
			"role":        t.Role,
			"stats":       ReduceTechnicianStats(logs).ToJSON(),
			"recentTasks": recentTasks,
		}
	})
	return rows, nil
}

// FirmwareDevices returns every firmware version with the devices of
// its type currently running it. A failed device fetch leaves the
// version with an empty roster and no online count.
func (s *StatsService) FirmwareDevices(ctx context.Context) ([]map[string]any, error) {
	versions, err := s.firmware.ListFirmwareVersions(ctx)
	if err != nil {
		return nil, err
	}

	rows := mapConcurrent(versions, func(fw *domain.FirmwareVersion) map[string]any {
		row := fw.ToJSON()

		devices, err := s.devices.ListDevicesByFirmware(ctx, fw.DeviceTypeID, fw.Version)
		if err != nil {
			s.logger.Warn("firmware devices fetch failed",
				zap.String("firmware_id", fw.FirmwareID), zap.Error(err))
			row["devicesCount"] = 0
			row["devices"] = []map[string]any{}
			return row
		}

		online := 0
		for _, d := range devices {
			if d.Status == domain.DeviceStatusOnline {
				online++
			}
		}
		row["devicesCount"] = len(devices)
		row["devices"] = deviceJSON(devices)
		row["onlineDevices"] = online
		return row
	})
	return rows, nil
}

// DashboardMetrics builds the global dashboard block. Each source
// column is fetched once and bucketed in memory; a failed fetch
// degrades its section to zeros.
func (s *StatsService) DashboardMetrics(ctx context.Context) (map[string]any, error) {
	projectStatuses := s.fetchStrings(ctx, "project statuses", s.metrics.ProjectStatuses)
	deviceStatuses := s.fetchStrings(ctx, "device statuses", s.metrics.DeviceStatuses)
	maintStatuses := s.fetchStrings(ctx, "maintenance statuses", s.metrics.MaintenanceStatuses)

	sensorFlags, err := s.metrics.SensorActiveFlags(ctx)
	if err != nil {
		s.logger.Warn("sensor flags fetch failed", zap.Error(err))
		sensorFlags = nil
	}
	activeSensors := 0
	for _, active := range sensorFlags {
		if active {
			activeSensors++
		}
	}

	alertRows, err := s.metrics.AlertBreakdown(ctx)
	if err != nil {
		s.logger.Warn("alert breakdown fetch failed", zap.Error(err))
		alertRows = nil
	}
	alertSeverities := make([]string, 0, len(alertRows))
	alertStatuses := make([]string, 0, len(alertRows))
	for _, a := range alertRows {
		alertSeverities = append(alertSeverities, a.Severity)
		alertStatuses = append(alertStatuses, a.Status)
	}

	totalAlerts, err := s.metrics.CountAlerts(ctx)
	if err != nil {
		s.logger.Warn("alert count failed", zap.Error(err))
		totalAlerts = 0
	}
	totalMaintenance, err := s.metrics.CountMaintenance(ctx)
	if err != nil {
		s.logger.Warn("maintenance count failed", zap.Error(err))
		totalMaintenance = 0
	}
	totalLocations, err := s.metrics.CountLocations(ctx)
	if err != nil {
		s.logger.Warn("location count failed", zap.Error(err))
		totalLocations = 0
	}
	readingsLast24h, err := s.readings.CountSince(ctx, s.now().Add(-24*time.Hour))
	if err != nil {
		s.logger.Warn("readings count failed", zap.Error(err))
		readingsLast24h = 0
	}

	return map[string]any{
		"projects": map[string]any{
			"total":     len(projectStatuses),
			"active":    countByValue(projectStatuses, domain.ProjectStatusActive),
			"inactive":  countByValue(projectStatuses, domain.ProjectStatusInactive),
			"completed": countByValue(projectStatuses, domain.ProjectStatusCompleted),
		},
		"devices": map[string]any{
			"total":       len(deviceStatuses),
			"online":      countByValue(deviceStatuses, domain.DeviceStatusOnline),
			"offline":     countByValue(deviceStatuses, domain.DeviceStatusOffline),
			"maintenance": countByValue(deviceStatuses, domain.DeviceStatusMaintenance),
			"error":       countByValue(deviceStatuses, domain.DeviceStatusError),
		},
		"sensors": map[string]any{
			"total":  len(sensorFlags),
			"active": activeSensors,
		},
		"alerts": map[string]any{
			"total":    totalAlerts,
			"active":   countByValue(alertStatuses, domain.AlertStatusActive),
			"critical": countByValue(alertSeverities, domain.AlertSeverityCritical),
			"high":     countByValue(alertSeverities, domain.AlertSeverityHigh),
			"medium":   countByValue(alertSeverities, domain.AlertSeverityMedium),
			"low":      countByValue(alertSeverities, domain.AlertSeverityLow),
		},
		"readings": map[string]any{
			"last24h": readingsLast24h,
		},
		"maintenance": map[string]any{
			"total":      totalMaintenance,
			"scheduled":  countByValue(maintStatuses, domain.MaintenanceStatusScheduled),
			"inProgress": countByValue(maintStatuses, domain.MaintenanceStatusInProgress),
			"completed":  countByValue(maintStatuses, domain.MaintenanceStatusCompleted),
		},
		"locations": map[string]any{
			"total": totalLocations,
		},
	}, nil
}

// Overview is the lightweight totals block for the landing page.
func (s *StatsService) Overview(ctx context.Context) (map[string]any, error) {
	projects, err := s.metrics.CountProjects(ctx)
	if err != nil {
		return nil, err
	}
	devices, err := s.metrics.CountDevices(ctx)
	if err != nil {
		return nil, err
	}
	sensors, err := s.metrics.CountSensors(ctx)
	if err != nil {
		return nil, err
	}
	activeAlerts, err := s.metrics.CountActiveAlerts(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"projects":     projects,
		"devices":      devices,
		"sensors":      sensors,
		"activeAlerts": activeAlerts,
	}, nil
}

func (s *StatsService) fetchStrings(ctx context.Context, what string, fn func(context.Context) ([]string, error)) []string {
	values, err := fn(ctx)
	if err != nil {
		s.logger.Warn("dashboard fetch failed", zap.String("column", what), zap.Error(err))
		return nil
	}
	return values
}

func deviceIDs(devices []*domain.Device) []string {
	ids := make([]string, 0, len(devices))
	for _, d := range devices {
		ids = append(ids, d.DeviceID)
	}
	return ids
}

func deviceJSON(devices []*domain.Device) []map[string]any {
	out := make([]map[string]any, 0, len(devices))
	for _, d := range devices {
		out = append(out, d.ToJSON())
	}
	return out
}
