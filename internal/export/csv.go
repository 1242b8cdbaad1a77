// Package export renders worker and worker-pool records as CSV and
// JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"time"
)

// Fields holding service datetimes, normalized on CSV output.
var dateKeys = map[string]bool{
	"created":      true,
	"expires":      true,
	"lastModified": true,
	"lastChecked":  true,
}

// CSVOptions controls CSV rendering.
type CSVOptions struct {
	// FullDatetimes keeps sub-second precision and the UTC offset on
	// datetime columns. Spreadsheet programs tend to stop treating such
	// values as dates, so the default strips them.
	FullDatetimes bool
}

// WriteCSV writes rows as CSV. The header is the union of row keys:
// columns appear in the order of the first row that carries them,
// sorted within each row. Datetime fields are normalized per opts.
func WriteCSV(w io.Writer, rows []map[string]any, opts CSVOptions) error {
	return writeCSV(w, headerUnion(rows), rows, opts)
}

// WriteCSVColumns is WriteCSV with a fixed column list.
func WriteCSVColumns(w io.Writer, columns []string, rows []map[string]any, opts CSVOptions) error {
	return writeCSV(w, columns, rows, opts)
}

func writeCSV(w io.Writer, headers []string, rows []map[string]any, opts CSVOptions) error {
	out := csv.NewWriter(w)
	if err := out.Write(headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(headers))
	for rowNum, row := range rows {
		for i, key := range headers {
			val, ok := row[key]
			if !ok {
				record[i] = ""
				continue
			}
			cell := formatCell(val)
			if dateKeys[key] && cell != "" {
				normalized, err := normalizeDatetime(cell, opts.FullDatetimes)
				if err != nil {
					return fmt.Errorf("row %d, column %s: %w", rowNum, key, err)
				}
				cell = normalized
			}
			record[i] = cell
		}
		if err := out.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", rowNum, err)
		}
	}

	out.Flush()
	return out.Error()
}

// headerUnion collects every key present across rows. Order is
// first-seen, with each row's new keys added in sorted order, so output
// is stable regardless of map iteration.
func headerUnion(rows []map[string]any) []string {
	var headers []string
	seen := map[string]bool{}
	keys := []string{}
	for _, row := range rows {
		keys = keys[:0]
		for key := range row {
			if !seen[key] {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			seen[key] = true
		}
		headers = append(headers, keys...)
	}
	return headers
}

func formatCell(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		// JSON numbers; render integral values without a decimal point.
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case int:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// normalizeDatetime rewrites a service datetime (RFC 3339, UTC, with
// optional fractional seconds) for CSV. The default form drops
// sub-seconds and the offset; full keeps both.
func normalizeDatetime(val string, full bool) (string, error) {
	ts, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return "", fmt.Errorf("parse datetime %q: %w", val, err)
	}
	if full {
		return ts.UTC().Format("2006-01-02 15:04:05.000000-07:00"), nil
	}
	return ts.UTC().Format("2006-01-02 15:04:05"), nil
}
