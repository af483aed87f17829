package httpapi

import (
	"bytes"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

func TestGenerateDeviceExport(t *testing.T) {
	lastSeen := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	devices := []*domain.Device{
		{
			Name:            "gw-01",
			MACAddress:      "AA:BB:CC:DD:EE:01",
			IPAddress:       sql.NullString{String: "10.0.0.10", Valid: true},
			Status:          domain.DeviceStatusOnline,
			ProjectName:     sql.NullString{String: "Alpha", Valid: true},
			DeviceTypeName:  sql.NullString{String: "Gateway", Valid: true},
			LocationName:    sql.NullString{String: "Warehouse North", Valid: true},
			FirmwareVersion: sql.NullString{String: "2.1.0", Valid: true},
			LastSeen:        sql.NullTime{Time: lastSeen, Valid: true},
			CreatedAt:       time.Now(),
		},
		{
			Name:       "sensor-node-07",
			MACAddress: "AA:BB:CC:DD:EE:07",
			Status:     domain.DeviceStatusOffline,
			CreatedAt:  time.Now(),
		},
	}

	b, err := GenerateDeviceExport(devices)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Devices"}, f.GetSheetList())

	rows, err := f.GetRows("Devices")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, DeviceExportHeader, rows[0])

	assert.Equal(t, "gw-01", rows[1][0])
	assert.Equal(t, "AA:BB:CC:DD:EE:01", rows[1][1])
	assert.Equal(t, "2026-03-01 09:30:00", rows[1][8])

	// Null columns stay blank on the second row.
	name, err := f.GetCellValue("Devices", "A3")
	require.NoError(t, err)
	assert.Equal(t, "sensor-node-07", name)
	ip, err := f.GetCellValue("Devices", "C3")
	require.NoError(t, err)
	assert.Equal(t, "", ip)
}

func TestGenerateDeviceExportEmpty(t *testing.T) {
	b, err := GenerateDeviceExport(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Devices")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, DeviceExportHeader, rows[0])
}
