package config

import "fmt"

// Validate rejects configurations the rest of the tool cannot act on.
func Validate(cfg *Config) error {
	switch cfg.Marker {
	case MarkerXattr:
	case MarkerCommand:
		if len(cfg.QueryCommand) == 0 {
			return fmt.Errorf("marker %q requires a query_command", cfg.Marker)
		}
		if len(cfg.MarkCommand) == 0 {
			return fmt.Errorf("marker %q requires a mark_command", cfg.Marker)
		}
	default:
		return fmt.Errorf("unknown marker %q (want %q or %q)", cfg.Marker, MarkerXattr, MarkerCommand)
	}

	switch cfg.OutputFormat {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("unknown output format %q (want auto, text, or json)", cfg.OutputFormat)
	}

	return nil
}
