// Package report renders commission figures as spreadsheets for the accounts office.
package report

import (
	"fmt"

	"github.com/sangkips/gymcore-api/internal/commission"
	"github.com/xuri/excelize/v2"
)

const earningsSheet = "Earnings"

var earningsHeader = []interface{}{
	"Trainer", "Sessions sold", "Completed", "Remaining", "Revenue", "Clients",
}

// EarningsWorkbook writes one row per trainer plus a totals row and returns the xlsx bytes
func EarningsWorkbook(title string, stats []commission.EarningsStats) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", earningsSheet); err != nil {
		return nil, err
	}

	if err := f.SetCellValue(earningsSheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(earningsSheet, "A3", &earningsHeader); err != nil {
		return nil, err
	}

	row := 4
	for _, s := range stats {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{
			s.StaffName,
			s.TotalSessions,
			s.CompletedSessions,
			s.RemainingSessions,
			s.TotalRevenue.InexactFloat64(),
			s.Clients,
		}
		if err := f.SetSheetRow(earningsSheet, cell, &values); err != nil {
			return nil, err
		}
		row++
	}

	if len(stats) > 0 {
		total, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(earningsSheet, total, "Total"); err != nil {
			return nil, err
		}
		for col := 2; col <= 6; col++ {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			first, _ := excelize.CoordinatesToCellName(col, 4)
			last, _ := excelize.CoordinatesToCellName(col, row-1)
			if err := f.SetCellFormula(earningsSheet, cell, fmt.Sprintf("SUM(%s:%s)", first, last)); err != nil {
				return nil, err
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(earningsSheet, "A1", "A1", bold)
	_ = f.SetCellStyle(earningsSheet, "A3", "F3", bold)
	_ = f.SetColWidth(earningsSheet, "A", "A", 28)
	_ = f.SetColWidth(earningsSheet, "B", "F", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
