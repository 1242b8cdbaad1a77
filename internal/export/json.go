package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/taskfleet/poolwatch/types"
)

// DumpJSON writes records to path as a JSON array, the raw shape the
// API returned them in.
func DumpJSON(path string, records []types.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadJSON reads records from a file written by DumpJSON (or by an
// earlier run's --json-file).
func LoadJSON(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var records []types.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}
