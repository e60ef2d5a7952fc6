package rules

import (
	"fmt"
	"os"
)

// Load reads and parses the rule file at path.
func Load(path string) ([]Rule, []ParseWarning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open rule file: %w", err)
	}
	defer f.Close()

	rs, warnings, err := Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("parse rule file %s: %w", path, err)
	}
	return rs, warnings, nil
}
