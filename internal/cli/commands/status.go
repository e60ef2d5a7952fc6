package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/sweeplabs/dirsweep/internal/cli/output"
)

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <path>...",
		Short: "Query whether paths are excluded from backups",
		Long: `Ask the backup service whether each given path is currently marked
excluded. Read-only: nothing is changed.`,
		Example: `  dirsweep status ~/projects/api/node_modules`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := getConfig(cmd)
	r := getRenderer(cmd)

	marker, err := newMarker(cfg)
	if err != nil {
		return err
	}

	type statusJSON struct {
		Path     string `json:"path"`
		Excluded bool   `json:"excluded"`
		Error    string `json:"error,omitempty"`
	}
	var results []statusJSON

	jsonMode := r.EffectiveMode() == output.ModeJSON
	styles := r.Styles()
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			path = filepath.Clean(arg)
		}

		excluded, err := marker.IsExcluded(cmd.Context(), path)
		switch {
		case err != nil:
			results = append(results, statusJSON{Path: path, Error: err.Error()})
		case excluded:
			results = append(results, statusJSON{Path: path, Excluded: true})
		default:
			results = append(results, statusJSON{Path: path})
		}
		if jsonMode {
			continue
		}
		switch {
		case err != nil:
			r.Printf("%s %s: %v\n", styles.Error.Render("error"), path, err)
		case excluded:
			r.Printf("%s %s\n", styles.Success.Render("excluded"), path)
		default:
			r.Printf("%s %s\n", styles.Muted.Render("not excluded"), path)
		}
	}

	if jsonMode {
		return r.JSON(results)
	}
	return nil
}
