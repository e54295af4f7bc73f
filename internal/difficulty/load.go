package difficulty

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk layout of a difficulty file.
type fileFormat struct {
	Rows []Row `yaml:"rows"`
}

// ErrEmptyTable is returned when a table has no rows.
var ErrEmptyTable = errors.New("difficulty table has no rows")

// Load reads a YAML difficulty table from path.
// An empty path returns the default table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read difficulty file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML difficulty table.
func Parse(data []byte) (*Table, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse difficulty YAML: %w", err)
	}

	t, err := NewTable(f.Rows)
	if err != nil {
		return nil, fmt.Errorf("invalid difficulty table: %w", err)
	}
	return t, nil
}

// validate checks that quotas never decrease and every row can spawn.
func validate(rows []Row) error {
	if len(rows) == 0 {
		return ErrEmptyTable
	}

	var prev uint32
	for i, r := range rows {
		if r.Quota == 0 {
			return fmt.Errorf("row %d: quota must be positive", i)
		}
		if r.Quota < prev {
			return fmt.Errorf("row %d: quota %d is below previous row (%d)", i, r.Quota, prev)
		}
		if r.Interval <= 0 {
			return fmt.Errorf("row %d: interval must be positive, got %v", i, r.Interval)
		}
		if r.Batch < 1 {
			return fmt.Errorf("row %d: batch must be at least 1", i)
		}
		prev = r.Quota
	}
	return nil
}
