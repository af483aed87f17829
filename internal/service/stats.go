package service

import (
	"fmt"
	"time"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

// Pure reducers for the aggregation views. They never touch the store:
// the stats service fetches rows and hands them here, so every formula
// the dashboard renders is testable without a database.

// ProjectStats is the derived block attached to each project summary.
type ProjectStats struct {
	TotalDevices       int
	TotalSensors       int
	OnlineDevices      int
	OfflineDevices     int
	ActiveAlerts       int
	MaintenanceRecords int
	DeviceTypes        []string
}

// ReduceProjectStats computes a project's summary block from its
// devices plus pre-counted alert/maintenance figures.
//
// offlineDevices is total minus online, which folds maintenance and
// error devices into "offline". The location view counts each status
// separately; this divergence is long-standing dashboard behavior and
// is kept as is.
func ReduceProjectStats(devices []*domain.Device, activeAlerts, maintenanceRecords int) ProjectStats {
	st := ProjectStats{
		TotalDevices:       len(devices),
		ActiveAlerts:       activeAlerts,
		MaintenanceRecords: maintenanceRecords,
		DeviceTypes:        []string{},
	}

	seen := map[string]bool{}
	for _, d := range devices {
		if d.SensorCount.Valid {
			st.TotalSensors += int(d.SensorCount.Int64)
		}
		if d.Status == domain.DeviceStatusOnline {
			st.OnlineDevices++
		}
		// De-dup type names in first-occurrence order, dropping blanks.
		if d.DeviceTypeName.Valid && d.DeviceTypeName.String != "" && !seen[d.DeviceTypeName.String] {
			seen[d.DeviceTypeName.String] = true
			st.DeviceTypes = append(st.DeviceTypes, d.DeviceTypeName.String)
		}
	}
	st.OfflineDevices = st.TotalDevices - st.OnlineDevices
	return st
}

func (st ProjectStats) ToJSON() map[string]any {
	return map[string]any{
		"totalDevices":       st.TotalDevices,
		"totalSensors":       st.TotalSensors,
		"onlineDevices":      st.OnlineDevices,
		"offlineDevices":     st.OfflineDevices,
		"activeAlerts":       st.ActiveAlerts,
		"maintenanceRecords": st.MaintenanceRecords,
		"deviceTypes":        st.DeviceTypes,
	}
}

// LocationStats is the derived block attached to each location row.
// Unlike ProjectStats every device status gets its own bucket.
type LocationStats struct {
	TotalDevices       int
	OnlineDevices      int
	OfflineDevices     int
	MaintenanceDevices int
	ErrorDevices       int
	ActiveAlerts       int
	Projects           []string
}

func ReduceLocationStats(devices []*domain.Device, activeAlerts int) LocationStats {
	st := LocationStats{
		TotalDevices: len(devices),
		ActiveAlerts: activeAlerts,
		Projects:     []string{},
	}

	seen := map[string]bool{}
	for _, d := range devices {
		switch d.Status {
		case domain.DeviceStatusOnline:
			st.OnlineDevices++
		case domain.DeviceStatusOffline:
			st.OfflineDevices++
		case domain.DeviceStatusMaintenance:
			st.MaintenanceDevices++
		case domain.DeviceStatusError:
			st.ErrorDevices++
		}
		if d.ProjectName.Valid && d.ProjectName.String != "" && !seen[d.ProjectName.String] {
			seen[d.ProjectName.String] = true
			st.Projects = append(st.Projects, d.ProjectName.String)
		}
	}
	return st
}

func (st LocationStats) ToJSON() map[string]any {
	return map[string]any{
		"totalDevices":       st.TotalDevices,
		"onlineDevices":      st.OnlineDevices,
		"offlineDevices":     st.OfflineDevices,
		"maintenanceDevices": st.MaintenanceDevices,
		"errorDevices":       st.ErrorDevices,
		"activeAlerts":       st.ActiveAlerts,
		"projects":           st.Projects,
	}
}

// SensorStats summarizes one sensor's reading window. The formatted
// fields are 2/3-decimal strings when the window has data and the JSON
// number 0 when it does not, which is what the dashboard has always
// received.
type SensorStats struct {
	TotalReadings   int
	AvgValue        any
	MinValue        any
	MaxValue        any
	AvgQuality      any
	LastReading     map[string]any
	ReadingsLast24h int
}

// ReduceSensorStats reduces a window of readings ordered newest first.
// totalReadings counts the window, not the sensor's full history, and
// readingsLast24h is measured against now.
func ReduceSensorStats(window []*domain.Reading, now time.Time) SensorStats {
	st := SensorStats{
		TotalReadings: len(window),
		AvgValue:      0,
		MinValue:      0,
		MaxValue:      0,
		AvgQuality:    0,
	}
	if len(window) == 0 {
		return st
	}

	min, max := window[0].Value, window[0].Value
	var sum, qualitySum float64
	cutoff := now.Add(-24 * time.Hour)
	for _, rd := range window {
		sum += rd.Value
		qualitySum += rd.QualityScore
		if rd.Value < min {
			min = rd.Value
		}
		if rd.Value > max {
			max = rd.Value
		}
		if rd.Timestamp.After(cutoff) {
			st.ReadingsLast24h++
		}
	}

	n := float64(len(window))
	st.AvgValue = fmt.Sprintf("%.2f", sum/n)
	st.MinValue = fmt.Sprintf("%.2f", min)
	st.MaxValue = fmt.Sprintf("%.2f", max)
	st.AvgQuality = fmt.Sprintf("%.3f", qualitySum/n)
	st.LastReading = window[0].ToJSON()
	return st
}

func (st SensorStats) ToJSON() map[string]any {
	m := map[string]any{
		"totalReadings":   st.TotalReadings,
		"avgValue":        st.AvgValue,
		"minValue":        st.MinValue,
		"maxValue":        st.MaxValue,
		"avgQuality":      st.AvgQuality,
		"readingsLast24h": st.ReadingsLast24h,
	}
	if st.LastReading != nil {
		m["lastReading"] = st.LastReading
	} else {
		m["lastReading"] = nil
	}
	return m
}

// DegradedSensorStats is the block substituted when a sensor's window
// fetch fails. It carries no readingsLast24h key, matching the shape
// clients have always seen on this path.
func DegradedSensorStats() map[string]any {
	return map[string]any{
		"totalReadings": 0,
		"avgValue":      0,
		"minValue":      0,
		"maxValue":      0,
		"avgQuality":    0,
		"lastReading":   nil,
	}
}

// TechnicianStats is one technician's performance block.
type TechnicianStats struct {
	TotalTasks             int
	CompletedTasks         int
	InProgressTasks        int
	ScheduledTasks         int
	TotalCost              string
	AvgResolutionTimeHours string
	MaintenanceByType      map[string]int
}

// ReduceTechnicianStats partitions a technician's logs by status and
// derives cost and resolution figures over the completed ones.
func ReduceTechnicianStats(logs []*domain.MaintenanceLog) TechnicianStats {
	st := TechnicianStats{
		MaintenanceByType: map[string]int{
			domain.MaintenanceTypePreventive: 0,
			domain.MaintenanceTypeCorrective: 0,
			domain.MaintenanceTypeEmergency:  0,
			domain.MaintenanceTypeUpgrade:    0,
		},
	}

	var totalCost float64
	var resolutionHours float64
	completed := 0
	for _, l := range logs {
		st.TotalTasks++
		if _, ok := st.MaintenanceByType[l.MaintenanceType]; ok {
			st.MaintenanceByType[l.MaintenanceType]++
		}
		switch l.Status {
		case domain.MaintenanceStatusCompleted:
			completed++
			if l.Cost.Valid {
				totalCost += l.Cost.Float64
			}
			if l.CompletedDate.Valid {
				resolutionHours += l.CompletedDate.Time.Sub(l.CreatedAt).Hours()
			}
		case domain.MaintenanceStatusInProgress:
			st.InProgressTasks++
		case domain.MaintenanceStatusScheduled:
			st.ScheduledTasks++
		}
	}
	st.CompletedTasks = completed

	avg := 0.0
	if completed > 0 {
		avg = resolutionHours / float64(completed)
	}
	st.TotalCost = fmt.Sprintf("%.2f", totalCost)
	st.AvgResolutionTimeHours = fmt.Sprintf("%.2f", avg)
	return st
}

func (st TechnicianStats) ToJSON() map[string]any {
	return map[string]any{
		"totalTasks":             st.TotalTasks,
		"completedTasks":         st.CompletedTasks,
		"inProgressTasks":        st.InProgressTasks,
		"scheduledTasks":         st.ScheduledTasks,
		"totalCost":              st.TotalCost,
		"avgResolutionTimeHours": st.AvgResolutionTimeHours,
		"maintenanceByType":      st.MaintenanceByType,
	}
}

// countByValue buckets a column fetched in bulk for the dashboard.
func countByValue(values []string, want string) int {
	n := 0
	for _, v := range values {
		if v == want {
			n++
		}
	}
	return n
}
