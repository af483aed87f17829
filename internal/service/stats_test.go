package service

import (
	"database/sql"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

func testDevice(status, typeName string, sensors int64) *domain.Device {
	return &domain.Device{
		Status:         status,
		DeviceTypeName: sql.NullString{String: typeName, Valid: typeName != ""},
		SensorCount:    sql.NullInt64{Int64: sensors, Valid: true},
	}
}

func TestReduceProjectStats(t *testing.T) {
	devices := []*domain.Device{
		testDevice(domain.DeviceStatusOnline, "Gateway", 3),
		testDevice(domain.DeviceStatusOnline, "Tracker", 1),
		testDevice(domain.DeviceStatusMaintenance, "Gateway", 2),
		testDevice(domain.DeviceStatusError, "", 0),
	}

	st := ReduceProjectStats(devices, 5, 7)

	assert.Equal(t, 4, st.TotalDevices)
	assert.Equal(t, 6, st.TotalSensors)
	assert.Equal(t, 2, st.OnlineDevices)
	// Everything not online counts as offline in this view, including
	// maintenance and error devices.
	assert.Equal(t, 2, st.OfflineDevices)
	assert.Equal(t, st.TotalDevices, st.OnlineDevices+st.OfflineDevices)
	assert.Equal(t, 5, st.ActiveAlerts)
	assert.Equal(t, 7, st.MaintenanceRecords)
	assert.Equal(t, []string{"Gateway", "Tracker"}, st.DeviceTypes)
}

func TestReduceProjectStatsEmpty(t *testing.T) {
	st := ReduceProjectStats(nil, 0, 0)
	assert.Equal(t, 0, st.TotalDevices)
	assert.Equal(t, 0, st.OfflineDevices)
	assert.NotNil(t, st.DeviceTypes)
	assert.Empty(t, st.DeviceTypes)
}

func TestReduceLocationStats(t *testing.T) {
	devices := []*domain.Device{
		{Status: domain.DeviceStatusOnline, ProjectName: sql.NullString{String: "Alpha", Valid: true}},
		{Status: domain.DeviceStatusOffline, ProjectName: sql.NullString{String: "Alpha", Valid: true}},
		{Status: domain.DeviceStatusMaintenance, ProjectName: sql.NullString{String: "Beta", Valid: true}},
		{Status: domain.DeviceStatusError},
		{Status: domain.DeviceStatusOnline},
	}

	st := ReduceLocationStats(devices, 3)

	assert.Equal(t, 5, st.TotalDevices)
	assert.Equal(t, 2, st.OnlineDevices)
	assert.Equal(t, 1, st.OfflineDevices)
	assert.Equal(t, 1, st.MaintenanceDevices)
	assert.Equal(t, 1, st.ErrorDevices)
	// Unlike the project view, the four buckets partition the total.
	assert.Equal(t, st.TotalDevices,
		st.OnlineDevices+st.OfflineDevices+st.MaintenanceDevices+st.ErrorDevices)
	assert.Equal(t, 3, st.ActiveAlerts)
	assert.Equal(t, []string{"Alpha", "Beta"}, st.Projects)
}

func readingAt(value, quality float64, age time.Duration, now time.Time) *domain.Reading {
	return &domain.Reading{
		Value:        value,
		QualityScore: quality,
		Timestamp:    now.Add(-age),
	}
}

func TestReduceSensorStats(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	window := []*domain.Reading{
		readingAt(22.5, 0.95, time.Hour, now),
		readingAt(18.0, 0.90, 2*time.Hour, now),
		readingAt(25.0, 1.0, 30*time.Hour, now),
	}

	st := ReduceSensorStats(window, now)

	assert.Equal(t, 3, st.TotalReadings)
	assert.Equal(t, "21.83", st.AvgValue)
	assert.Equal(t, "18.00", st.MinValue)
	assert.Equal(t, "25.00", st.MaxValue)
	assert.Equal(t, "0.950", st.AvgQuality)
	assert.Equal(t, 2, st.ReadingsLast24h)
	assert.LessOrEqual(t, st.ReadingsLast24h, st.TotalReadings)
	require.NotNil(t, st.LastReading)
	assert.Equal(t, 22.5, st.LastReading["value"])

	min, err := strconv.ParseFloat(st.MinValue.(string), 64)
	require.NoError(t, err)
	avg, err := strconv.ParseFloat(st.AvgValue.(string), 64)
	require.NoError(t, err)
	max, err := strconv.ParseFloat(st.MaxValue.(string), 64)
	require.NoError(t, err)
	assert.LessOrEqual(t, min, avg)
	assert.LessOrEqual(t, avg, max)
}

func TestReduceSensorStatsEmptyWindow(t *testing.T) {
	st := ReduceSensorStats(nil, time.Now())

	// Empty windows report the JSON number 0, not "0.00".
	assert.Equal(t, 0, st.TotalReadings)
	assert.Equal(t, 0, st.AvgValue)
	assert.Equal(t, 0, st.MinValue)
	assert.Equal(t, 0, st.MaxValue)
	assert.Equal(t, 0, st.AvgQuality)
	assert.Equal(t, 0, st.ReadingsLast24h)
	assert.Nil(t, st.LastReading)

	m := st.ToJSON()
	assert.Contains(t, m, "readingsLast24h")
	assert.Nil(t, m["lastReading"])
}

func TestReduceSensorStatsIdempotent(t *testing.T) {
	now := time.Now()
	window := []*domain.Reading{
		readingAt(10, 0.9, time.Hour, now),
		readingAt(12, 0.8, 2*time.Hour, now),
	}
	first := ReduceSensorStats(window, now)
	second := ReduceSensorStats(window, now)
	assert.Equal(t, first, second)
}

func TestDegradedSensorStatsShape(t *testing.T) {
	m := DegradedSensorStats()
	assert.Equal(t, 0, m["totalReadings"])
	assert.Nil(t, m["lastReading"])
	// The degraded block never carried a readingsLast24h key.
	assert.NotContains(t, m, "readingsLast24h")
}

func completedLog(cost float64, dur time.Duration, mtype string) *domain.MaintenanceLog {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	return &domain.MaintenanceLog{
		MaintenanceType: mtype,
		Status:          domain.MaintenanceStatusCompleted,
		Cost:            sql.NullFloat64{Float64: cost, Valid: true},
		CreatedAt:       created,
		CompletedDate:   sql.NullTime{Time: created.Add(dur), Valid: true},
	}
}

func TestReduceTechnicianStats(t *testing.T) {
	logs := []*domain.MaintenanceLog{
		completedLog(100, 2*time.Hour, domain.MaintenanceTypePreventive),
		completedLog(200, 4*time.Hour, domain.MaintenanceTypeCorrective),
		{MaintenanceType: domain.MaintenanceTypeEmergency, Status: domain.MaintenanceStatusInProgress},
		{MaintenanceType: domain.MaintenanceTypePreventive, Status: domain.MaintenanceStatusScheduled},
	}

	st := ReduceTechnicianStats(logs)

	assert.Equal(t, 4, st.TotalTasks)
	assert.Equal(t, 2, st.CompletedTasks)
	assert.Equal(t, 1, st.InProgressTasks)
	assert.Equal(t, 1, st.ScheduledTasks)
	assert.Equal(t, "300.00", st.TotalCost)
	assert.Equal(t, "3.00", st.AvgResolutionTimeHours)
	assert.Equal(t, map[string]int{
		"preventive": 2,
		"corrective": 1,
		"emergency":  1,
		"upgrade":    0,
	}, st.MaintenanceByType)
}

func TestReduceTechnicianStatsNoLogs(t *testing.T) {
	st := ReduceTechnicianStats(nil)
	assert.Equal(t, 0, st.TotalTasks)
	assert.Equal(t, "0.00", st.TotalCost)
	assert.Equal(t, "0.00", st.AvgResolutionTimeHours)
}

func TestMapConcurrentPreservesOrder(t *testing.T) {
	in := make([]int, 200)
	for i := range in {
		in[i] = i
	}
	out := mapConcurrent(in, func(v int) int { return v * 2 })
	require.Len(t, out, len(in))
	for i, v := range out {
		assert.Equal(t, i*2, v)
	}
}
