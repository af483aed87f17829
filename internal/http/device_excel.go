package httpapi

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

// DeviceExportHeader is the column order of the inventory export.
var DeviceExportHeader = []string{
	"Name",
	"MAC Address",
	"IP Address",
	"Status",
	"Project",
	"Device Type",
	"Location",
	"Firmware Version",
	"Last Seen",
	"Created At",
}

// GenerateDeviceExport renders the device inventory as an xlsx
// workbook with a styled, frozen header row.
func GenerateDeviceExport(devices []*domain.Device) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close happens explicitly below.

	sheetName := "Devices"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range DeviceExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	widths := []float64{25, 20, 16, 12, 25, 20, 25, 18, 20, 20}
	for i := range DeviceExportHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for rowIdx, d := range devices {
		row := rowIdx + 2
		values := []any{
			d.Name,
			d.MACAddress,
			d.IPAddress.String,
			d.Status,
			d.ProjectName.String,
			d.DeviceTypeName.String,
			d.LocationName.String,
			d.FirmwareVersion.String,
			exportTime(d.LastSeen.Time, d.LastSeen.Valid),
			exportTime(d.CreatedAt, true),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if v == "" {
				continue
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func exportTime(t time.Time, valid bool) string {
	if !valid {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
