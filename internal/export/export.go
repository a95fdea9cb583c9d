// Copyright Sigma Labs Ltd., 2026. All rights reserved.

// Package export serializes the flattened rows to the fixed-schema CSV and
// writes the run summary artifact.
package export

import (
	"fmt"
	"iter"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"go.yaml.in/yaml/v3"

	"github.com/sigmalabs/pharmazer/internal/enrich"
)

// WriteCSV drains the row sequence into the CSV at path and returns the
// number of rows written. The header line is always present, even for an
// empty sequence; unresolved fields serialize as empty cells. A terminal
// error in the sequence aborts the write before any file is created.
func WriteCSV(path string, rows iter.Seq2[enrich.Row, error]) (int, error) {
	collected := []enrich.Row{}
	for row, err := range rows {
		if err != nil {
			return 0, err
		}
		collected = append(collected, row)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating output table %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&collected, f); err != nil {
		return 0, fmt.Errorf("writing output table %s: %w", path, err)
	}

	return len(collected), nil
}

// OutputName derives the output table filename from the source filename and
// a date, e.g. "dump.xml" -> "dump-(2026-08-30).csv".
func OutputName(sourceFilename string, date time.Time) string {
	base := strings.TrimSuffix(sourceFilename, ".xml")
	return fmt.Sprintf("%s-(%s).csv", base, date.Format("2006-01-02"))
}

// WriteSummary writes the run counts next to the output table as YAML.
func WriteSummary(path string, summary enrich.Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run summary %s: %w", path, err)
	}
	return nil
}
