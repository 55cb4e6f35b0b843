// Package csvsource loads source tables from CSV exports. The first record
// is the header; every cell loads as a string value and all typing happens
// downstream in the pipeline.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coachkit/huddle/internal/domain/table"
)

// Load reads the CSV at path into a table. The baseline export goes
// through here: any failure is fatal for the run.
func Load(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	return t, nil
}

// LoadOptional reads a CSV that is allowed to not exist yet. A missing file
// returns an empty table and ok=false (degraded mode, "no data yet"); any
// other failure is an error like Load's.
func LoadOptional(path string) (*table.Table, bool, error) {
	t, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return table.New(), false, nil
		}
		return nil, false, err
	}
	return t, true, nil
}

// Read parses CSV content from r. Ragged rows are tolerated: short rows pad
// with null cells, long rows drop the overflow.
func Read(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = false

	header, err := cr.Read()
	if err == io.EOF {
		return table.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}
	t := table.New(cols...)

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := make(table.Row, len(cols))
		for i, c := range cols {
			if i < len(rec) && rec[i] != "" {
				row[c] = table.String(rec[i])
			} else {
				row[c] = table.Null()
			}
		}
		t.Append(row)
	}
	return t, nil
}
