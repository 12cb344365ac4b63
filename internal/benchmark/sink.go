package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// DefaultOutputPath returns the timestamped result filename.
func DefaultOutputPath(now time.Time) string {
	return fmt.Sprintf("model_comparison_%s.json", now.Format("20060102_150405"))
}

// WriteResults serializes every raw sample to a JSON file for offline
// analysis.
func WriteResults(path string, r *Results) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	return nil
}
