package attendance

import (
	"encoding/csv"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

var csvHeader = []string{"UserName", "Date", "PunchInTime", "PunchOutTime"}

// WriteCSV serializes the report in Big5 (code page 950) with CRLF line
// endings. The downstream spreadsheet tool does not read UTF-8; runes
// outside Big5 are replaced rather than failing the whole export.
func WriteCSV(w io.Writer, rows []Row) error {
	enc := encoding.ReplaceUnsupported(traditionalchinese.Big5.NewEncoder())
	tw := transform.NewWriter(w, enc)

	cw := csv.NewWriter(tw)
	cw.UseCRLF = true

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.UserName, row.Date, row.PunchInTime, row.PunchOutTime}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return tw.Close()
}
