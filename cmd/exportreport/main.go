// Command exportreport writes the monthly attendance report to a file
// without going through the web server. Useful for cron jobs and backfills.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"cardtime.app/cardtime/core"
	"cardtime.app/cardtime/core/attendance"
)

func main() {
	month := flag.String("month", "", "report month, yyyy-MM")
	format := flag.String("format", "csv", "csv, xlsx or pdf")
	out := flag.String("out", "", "output path; defaults to <month>.<format>")
	fontPath := flag.String("font", "", "TTF font for pdf output")
	stampPath := flag.String("stamp", "", "stamp image for pdf output")
	flag.Parse()

	if *month == "" {
		fmt.Fprintln(os.Stderr, "usage: exportreport -month yyyy-MM [-format csv|xlsx|pdf]")
		os.Exit(2)
	}

	dm, err := core.New(os.Getenv("CARDTIME_DSN"), 2, core.LogLevelSilent)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer dm.Close()

	rows, err := attendance.BuildMonthlyReport(dm.DB, *month)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("%s.%s", *month, *format)
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	switch strings.ToLower(*format) {
	case "csv":
		err = attendance.WriteCSV(f, rows)
	case "xlsx":
		err = attendance.WriteXLSX(f, rows)
	case "pdf":
		var body []byte
		body, err = attendance.WritePDF(rows, attendance.PDFOptions{
			FontPath:  *fontPath,
			StampPath: *stampPath,
			Password:  os.Getenv("CARDTIME_PDF_PASSWORD"),
			Labels:    attendance.DefaultPDFLabels(),
		})
		if err == nil {
			_, err = f.Write(body)
		}
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(path)
}
