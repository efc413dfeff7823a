package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MarshalMeta serializes a BuildRecord as indented JSON with a trailing
// newline, the form consumed by CI pipelines.
func MarshalMeta(rec BuildRecord) ([]byte, error) {
	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling build record: %w", err)
	}
	return append(out, '\n'), nil
}

// WriteMeta serializes the record, validates it against the build-record
// schema, and writes it to path, creating parent directories as needed.
func WriteMeta(rec BuildRecord, path string) error {
	data, err := MarshalMeta(rec)
	if err != nil {
		return err
	}

	result, err := Validate(data)
	if err != nil {
		return fmt.Errorf("validating build record: %w", err)
	}
	if !result.Valid {
		return fmt.Errorf("build record failed schema validation: %s", result.Summary())
	}

	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
