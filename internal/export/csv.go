// Package export renders report tables into downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// WriteCSV writes headers and rows as RFC 4180 CSV.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename builds a dated download name such as "it_logs_2026-08-31.csv".
func Filename(prefix string) string {
	return fmt.Sprintf("%s_%s.csv", prefix, time.Now().UTC().Format("2006-01-02"))
}
