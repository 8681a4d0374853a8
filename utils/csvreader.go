package utils

import (
	"encoding/csv"
	"io"
)

// ParseCSV reads every record from r. Records may have differing widths;
// punch exports sometimes carry a header narrower than the data rows, so
// the per-record field count is not enforced here.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return records, nil
}
