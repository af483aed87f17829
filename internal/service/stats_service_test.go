package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jhulio435m/iot-management-system/internal/domain"
	"github.com/jhulio435m/iot-management-system/internal/repository"
)

type fakeProjectsRepo struct {
	projects []*domain.Project
	err      error
}

func (f *fakeProjectsRepo) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return f.projects, f.err
}

func (f *fakeProjectsRepo) CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	return p, nil
}

type fakeDevicesRepo struct {
	byProject map[string][]*domain.Device
	err       error
}

func (f *fakeDevicesRepo) ListDevices(ctx context.Context) ([]*domain.Device, error) {
	return nil, nil
}

func (f *fakeDevicesRepo) ListDevicesByProject(ctx context.Context, projectID string) ([]*domain.Device, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byProject[projectID], nil
}

func (f *fakeDevicesRepo) ListDevicesByLocation(ctx context.Context, locationID string) ([]*domain.Device, error) {
	return nil, nil
}

func (f *fakeDevicesRepo) ListDevicesByFirmware(ctx context.Context, deviceTypeID, version string) ([]*domain.Device, error) {
	return nil, nil
}

func (f *fakeDevicesRepo) CreateDevice(ctx context.Context, d *domain.Device) (*domain.Device, error) {
	return d, nil
}

type fakeAlertsRepo struct {
	activeCount int
	err         error
}

func (f *fakeAlertsRepo) ListAlerts(ctx context.Context) ([]*domain.Alert, error) { return nil, nil }

func (f *fakeAlertsRepo) ListDetailedAlerts(ctx context.Context, status string) ([]*domain.Alert, error) {
	return nil, nil
}

func (f *fakeAlertsRepo) CreateAlert(ctx context.Context, a *domain.Alert) (*domain.Alert, error) {
	return a, nil
}

func (f *fakeAlertsRepo) UpdateAlert(ctx context.Context, alertID string, upd repository.AlertUpdate) (*domain.Alert, error) {
	return nil, nil
}

func (f *fakeAlertsRepo) CountActiveByDevices(ctx context.Context, deviceIDs []string) (int, error) {
	return f.activeCount, f.err
}

type fakeMaintenanceRepo struct {
	count int
	logs  []*domain.MaintenanceLog
	err   error
}

func (f *fakeMaintenanceRepo) ListLogs(ctx context.Context) ([]*domain.MaintenanceLog, error) {
	return f.logs, nil
}

func (f *fakeMaintenanceRepo) ListLogsByTechnician(ctx context.Context, technicianID string) ([]*domain.MaintenanceLog, error) {
	return f.logs, f.err
}

func (f *fakeMaintenanceRepo) CreateLog(ctx context.Context, l *domain.MaintenanceLog) (*domain.MaintenanceLog, error) {
	return l, nil
}

func (f *fakeMaintenanceRepo) CountByDevices(ctx context.Context, deviceIDs []string) (int, error) {
	return f.count, f.err
}

type fakeSensorsRepo struct {
	sensors []*domain.Sensor
}

func (f *fakeSensorsRepo) ListSensors(ctx context.Context, filters repository.SensorFilters) ([]*domain.Sensor, error) {
	return f.sensors, nil
}

func (f *fakeSensorsRepo) ListSensorsForAnalytics(ctx context.Context) ([]*domain.Sensor, error) {
	return f.sensors, nil
}

func (f *fakeSensorsRepo) CreateSensor(ctx context.Context, s *domain.Sensor) (*domain.Sensor, error) {
	return s, nil
}

type fakeReadingsRepo struct {
	bySensor map[string][]*domain.Reading
	err      error
}

func (f *fakeReadingsRepo) ListReadings(ctx context.Context, filters repository.ReadingFilters) ([]*domain.Reading, error) {
	return nil, nil
}

func (f *fakeReadingsRepo) ListRecentBySensor(ctx context.Context, sensorID string, limit int) ([]*domain.Reading, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bySensor[sensorID], nil
}

func (f *fakeReadingsRepo) CreateReading(ctx context.Context, r *domain.Reading) (*domain.Reading, error) {
	return r, nil
}

func (f *fakeReadingsRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	return 0, nil
}

func TestProjectSummaries(t *testing.T) {
	projects := []*domain.Project{
		{ProjectID: "p1", Name: "Alpha", Status: domain.ProjectStatusActive},
		{ProjectID: "p2", Name: "Beta", Status: domain.ProjectStatusActive},
	}
	devices := map[string][]*domain.Device{
		"p1": {
			{DeviceID: "d1", Status: domain.DeviceStatusOnline,
				DeviceTypeName: sql.NullString{String: "Gateway", Valid: true},
				SensorCount:    sql.NullInt64{Int64: 2, Valid: true}},
			{DeviceID: "d2", Status: domain.DeviceStatusOffline,
				DeviceTypeName: sql.NullString{String: "Gateway", Valid: true},
				SensorCount:    sql.NullInt64{Int64: 1, Valid: true}},
		},
	}

	svc := NewStatsService(
		&fakeProjectsRepo{projects: projects}, nil,
		&fakeDevicesRepo{byProject: devices}, nil, nil,
		&fakeAlertsRepo{activeCount: 4}, &fakeMaintenanceRepo{count: 2},
		nil, nil, nil, zap.NewNop(),
	)

	rows, err := svc.ProjectSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Input order survives the concurrent fan-out.
	assert.Equal(t, "Alpha", rows[0]["name"])
	assert.Equal(t, "Beta", rows[1]["name"])

	stats := rows[0]["stats"].(map[string]any)
	assert.Equal(t, 2, stats["totalDevices"])
	assert.Equal(t, 3, stats["totalSensors"])
	assert.Equal(t, 1, stats["onlineDevices"])
	assert.Equal(t, 1, stats["offlineDevices"])
	assert.Equal(t, 4, stats["activeAlerts"])
	assert.Equal(t, 2, stats["maintenanceRecords"])
	assert.Equal(t, []string{"Gateway"}, stats["deviceTypes"])

	// A project with no devices still gets a complete zero block.
	empty := rows[1]["stats"].(map[string]any)
	assert.Equal(t, 0, empty["totalDevices"])
	assert.Equal(t, 4, empty["activeAlerts"])
}

func TestProjectSummariesDegradesOnDeviceError(t *testing.T) {
	svc := NewStatsService(
		&fakeProjectsRepo{projects: []*domain.Project{{ProjectID: "p1", Name: "Alpha"}}}, nil,
		&fakeDevicesRepo{err: errors.New("boom")}, nil, nil,
		&fakeAlertsRepo{activeCount: 9}, &fakeMaintenanceRepo{count: 9},
		nil, nil, nil, zap.NewNop(),
	)

	rows, err := svc.ProjectSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	stats := rows[0]["stats"].(map[string]any)
	assert.Equal(t, 0, stats["totalDevices"])
	assert.Equal(t, 0, stats["activeAlerts"])
	assert.Equal(t, 0, stats["maintenanceRecords"])
}

func TestProjectSummariesPrimaryFetchFails(t *testing.T) {
	svc := NewStatsService(
		&fakeProjectsRepo{err: errors.New("store down")}, nil,
		&fakeDevicesRepo{}, nil, nil,
		&fakeAlertsRepo{}, &fakeMaintenanceRepo{},
		nil, nil, nil, zap.NewNop(),
	)

	_, err := svc.ProjectSummaries(context.Background())
	require.Error(t, err)
}

func TestSensorAnalyticsDegradesPerSensor(t *testing.T) {
	sensors := []*domain.Sensor{
		{SensorID: "s1", Name: "temp-1", SensorType: "temperature"},
	}
	svc := NewStatsService(
		nil, nil, nil,
		&fakeSensorsRepo{sensors: sensors},
		&fakeReadingsRepo{err: errors.New("window fetch failed")},
		nil, nil, nil, nil, nil, zap.NewNop(),
	)

	rows, err := svc.SensorAnalytics(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	stats := rows[0]["stats"].(map[string]any)
	assert.Equal(t, 0, stats["totalReadings"])
	assert.NotContains(t, stats, "readingsLast24h")
}

func TestSensorAnalyticsWindowStats(t *testing.T) {
	now := time.Now()
	sensors := []*domain.Sensor{{SensorID: "s1", Name: "temp-1"}}
	readings := map[string][]*domain.Reading{
		"s1": {
			{Value: 20, QualityScore: 1, Timestamp: now.Add(-time.Hour)},
			{Value: 10, QualityScore: 0.8, Timestamp: now.Add(-2 * time.Hour)},
		},
	}
	svc := NewStatsService(
		nil, nil, nil,
		&fakeSensorsRepo{sensors: sensors},
		&fakeReadingsRepo{bySensor: readings},
		nil, nil, nil, nil, nil, zap.NewNop(),
	)
	svc.now = func() time.Time { return now }

	rows, err := svc.SensorAnalytics(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	stats := rows[0]["stats"].(map[string]any)
	assert.Equal(t, 2, stats["totalReadings"])
	assert.Equal(t, "15.00", stats["avgValue"])
	assert.Equal(t, "10.00", stats["minValue"])
	assert.Equal(t, "20.00", stats["maxValue"])
	assert.Equal(t, "0.900", stats["avgQuality"])
	assert.Equal(t, 2, stats["readingsLast24h"])
}
