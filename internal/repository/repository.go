package repository

import (
	"context"
	"time"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

// Repositories use strongly typed domain models; every method takes a
// context and issues exactly one query. Uniqueness and foreign-key
// constraints live in the store, not here.

type ProjectsRepository interface {
	// ListProjects returns all projects, newest first.
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error)
}

type LocationsRepository interface {
	// ListLocations returns all locations ordered by name.
	ListLocations(ctx context.Context) ([]*domain.Location, error)
	CreateLocation(ctx context.Context, l *domain.Location) (*domain.Location, error)
}

type DeviceTypesRepository interface {
	// ListDeviceTypes returns the catalog ordered by name.
	ListDeviceTypes(ctx context.Context) ([]*domain.DeviceType, error)
	CreateDeviceType(ctx context.Context, t *domain.DeviceType) (*domain.DeviceType, error)
}

type DevicesRepository interface {
	// ListDevices returns all devices newest first, with joined
	// project/type/location names for the list view.
	ListDevices(ctx context.Context) ([]*domain.Device, error)
	// ListDevicesByProject returns a project's devices with the joined
	// type name and per-device sensor count (summary input).
	ListDevicesByProject(ctx context.Context, projectID string) ([]*domain.Device, error)
	// ListDevicesByLocation returns a location's devices with the
	// joined project name (location-stats input).
	ListDevicesByLocation(ctx context.Context, locationID string) ([]*domain.Device, error)
	// ListDevicesByFirmware returns devices of one type running one
	// firmware version.
	ListDevicesByFirmware(ctx context.Context, deviceTypeID, version string) ([]*domain.Device, error)
	CreateDevice(ctx context.Context, d *domain.Device) (*domain.Device, error)
}

type SensorFilters struct {
	DeviceID string // optional FK filter
}

type SensorsRepository interface {
	// ListSensors returns sensors newest first with the joined device
	// name, optionally filtered by device.
	ListSensors(ctx context.Context, filters SensorFilters) ([]*domain.Sensor, error)
	// ListSensorsForAnalytics returns all sensors ordered by name with
	// the joined device/project/location context the analytics view
	// renders.
	ListSensorsForAnalytics(ctx context.Context) ([]*domain.Sensor, error)
	CreateSensor(ctx context.Context, s *domain.Sensor) (*domain.Sensor, error)
}

type ReadingFilters struct {
	SensorID string // optional FK filter
	Limit    int    // 0 means the default window of 100
}

type ReadingsRepository interface {
	// ListReadings returns readings by timestamp descending with the
	// joined sensor and device names.
	ListReadings(ctx context.Context, filters ReadingFilters) ([]*domain.Reading, error)
	// ListRecentBySensor returns a sensor's most recent readings by
	// timestamp descending, capped at limit (the analytics window).
	ListRecentBySensor(ctx context.Context, sensorID string, limit int) ([]*domain.Reading, error)
	CreateReading(ctx context.Context, r *domain.Reading) (*domain.Reading, error)
	// CountSince counts readings whose timestamp is at or after the
	// given instant (dashboard last-24h figure).
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// AlertUpdate carries the writable alert fields; nil means untouched.
type AlertUpdate struct {
	Status     *string
	ResolvedBy *string
}

type AlertsRepository interface {
	// ListAlerts returns the 50 most recent alerts with joined device
	// and project names.
	ListAlerts(ctx context.Context) ([]*domain.Alert, error)
	// ListDetailedAlerts returns alerts of one status with full joined
	// context (device, type, project, location, resolver).
	ListDetailedAlerts(ctx context.Context, status string) ([]*domain.Alert, error)
	CreateAlert(ctx context.Context, a *domain.Alert) (*domain.Alert, error)
	UpdateAlert(ctx context.Context, alertID string, upd AlertUpdate) (*domain.Alert, error)
	// CountActiveByDevices counts active alerts whose device id is in
	// the given set. An empty set matches nothing.
	CountActiveByDevices(ctx context.Context, deviceIDs []string) (int, error)
}

type MaintenanceRepository interface {
	// ListLogs returns all logs newest first with joined device and
	// technician names.
	ListLogs(ctx context.Context) ([]*domain.MaintenanceLog, error)
	// ListLogsByTechnician returns one technician's logs newest first.
	ListLogsByTechnician(ctx context.Context, technicianID string) ([]*domain.MaintenanceLog, error)
	CreateLog(ctx context.Context, l *domain.MaintenanceLog) (*domain.MaintenanceLog, error)
	// CountByDevices counts logs whose device id is in the given set.
	CountByDevices(ctx context.Context, deviceIDs []string) (int, error)
}

type UsersRepository interface {
	// ListUsers returns all users ordered by name.
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// ListTechnicians returns users with role technician or engineer,
	// ordered by name (performance-view population).
	ListTechnicians(ctx context.Context) ([]*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
}

type FirmwareRepository interface {
	// ListFirmwareVersions returns versions newest release first with
	// the joined device-type name and manufacturer.
	ListFirmwareVersions(ctx context.Context) ([]*domain.FirmwareVersion, error)
}

// AlertBreakdownRow is one alert's severity/status pair, fetched in
// bulk for the dashboard's in-memory bucketing.
type AlertBreakdownRow struct {
	Severity string
	Status   string
}

// MetricsRepository feeds the dashboard: top-level totals are
// store-level counts, the breakdown columns are bucketed in memory by
// the service.
type MetricsRepository interface {
	CountProjects(ctx context.Context) (int, error)
	CountDevices(ctx context.Context) (int, error)
	CountSensors(ctx context.Context) (int, error)
	CountActiveAlerts(ctx context.Context) (int, error)
	CountAlerts(ctx context.Context) (int, error)
	CountMaintenance(ctx context.Context) (int, error)
	CountLocations(ctx context.Context) (int, error)

	ProjectStatuses(ctx context.Context) ([]string, error)
	DeviceStatuses(ctx context.Context) ([]string, error)
	SensorActiveFlags(ctx context.Context) ([]bool, error)
	AlertBreakdown(ctx context.Context) ([]AlertBreakdownRow, error)
	MaintenanceStatuses(ctx context.Context) ([]string, error)
}
