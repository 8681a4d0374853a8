package attendance

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX serializes the report as a plain single-sheet workbook for
// consumers that moved off the Big5 CSV flow.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for r, row := range rows {
		values := []string{row.UserName, row.Date, row.PunchInTime, row.PunchOutTime}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}
