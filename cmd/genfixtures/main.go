// Command genfixtures writes a small, self-consistent set of raw data
// fixtures for local development and integration testing: a tracker
// directory tree with superseded uploads and an NNDSS weekly export
// mixing state, regional, and national rows. Running the ETL against
// the output exercises latest-file selection, label parsing, geography
// filtering, and MMWR week conversion end to end.
//
// Usage:
//
//	go run ./cmd/genfixtures -out ./fixtures
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory for generated fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	if err := writeTrackerTree(filepath.Join(*out, "tracker")); err != nil {
		return err
	}
	if err := writeNNDSSExport(filepath.Join(*out, "nndss")); err != nil {
		return err
	}

	fmt.Printf("fixtures written to %s\n", *out)
	return nil
}

var trackerHeader = []string{
	"report_period_start", "report_period_end", "disease_name",
	"disease_subtype", "state", "count",
}

// trackerFiles includes two CA uploads so only the later one survives
// latest-file selection.
var trackerFiles = map[string][][]string{
	"CA/20251101-000000.csv": {
		{"2025-10-01", "2025-10-31", "measles", "", "CA", "5"},
	},
	"CA/20251107-000000.csv": {
		{"2025-10-01", "2025-10-31", "measles", "", "CA", "10"},
		{"2025-10-01", "2025-10-31", "meningococcus", "B", "CA", "2"},
	},
	"MA/20251105-000000.csv": {
		{"2025-10-01", "2025-10-31", "pertussis", "", "MA", "17"},
		{"2025-10-01", "2025-10-31", "measles", "Not Specified", "MA", "0"},
	},
}

func writeTrackerTree(root string) error {
	for name, rows := range trackerFiles {
		path := filepath.Join(root, "data", "states", filepath.FromSlash(name))
		if err := writeCSV(path, trackerHeader, rows); err != nil {
			return err
		}
	}
	return nil
}

var nndssHeader = []string{
	"Reporting Area", "Current MMWR Year", "MMWR WEEK", "Label", "Current week",
}

// nndssRows covers the behaviors the transformer must handle: comma
// labels with serogroups, aggregate subtype markers, thousands
// separators, suppression sentinels, and non-state rollup rows.
var nndssRows = [][]string{
	{"MASSACHUSETTS", "2022", "1", "Pertussis", "12"},
	{"CALIFORNIA", "2022", "1", "Meningococcal disease, Serogroup B", "3"},
	{"CALIFORNIA", "2022", "1", "Meningococcal disease, All serogroups", "7"},
	{"NEW YORK CITY", "2022", "1", "Measles, Imported", "1,204"},
	{"TEXAS", "2022", "1", "Measles", "-"},
	{"NEW ENGLAND", "2022", "1", "Pertussis", "44"},
	{"US RESIDENTS", "2022", "1", "Pertussis", "981"},
}

func writeNNDSSExport(root string) error {
	return writeCSV(filepath.Join(root, "NNDSS_Weekly_Data_20220108.csv"), nndssHeader, nndssRows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create fixture directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fixture file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
