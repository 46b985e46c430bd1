/*
main.go - Tax-return report CLI

PURPOSE:
  Renders the 確定申告用 CSV for one fiscal year from a SQLite book.

COMMAND-LINE FLAGS:
  -db      SQLite database path (default: records.db)
  -year    Fiscal year to report; defaults to the latest year with records
  -o       Output file path; "-" or empty writes to stdout

EXAMPLES:
  # Print last year's report to stdout
  ./taxreport -db="./data/records.db"

  # Write a specific year to a file
  ./taxreport -db="./data/records.db" -year=2025 -o=report_2025.csv

ENVIRONMENT:
  No environment variables. All config via flags.

SEE ALSO:
  - report/csv.go: Section layout
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/eycjur/final-tax-return/report"
	"github.com/eycjur/final-tax-return/store/sqlite"
)

func main() {
	// Flags
	dbPath := flag.String("db", "records.db", "SQLite database path")
	year := flag.Int("year", 0, "fiscal year to report (default: latest year with records)")
	outPath := flag.String("o", "", "output file path (default: stdout)")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if *year == 0 {
		years, err := store.Years(ctx)
		if err != nil {
			log.Fatalf("Failed to list fiscal years: %v", err)
		}
		if len(years) == 0 {
			log.Fatal("No records in database")
		}
		*year = years[len(years)-1]
	}

	var out io.Writer = os.Stdout
	if *outPath != "" && *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := report.WriteCSV(ctx, out, store, *year); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	if *outPath != "" && *outPath != "-" {
		log.Printf("Wrote %d年分 report to %s", *year, *outPath)
	}
}
