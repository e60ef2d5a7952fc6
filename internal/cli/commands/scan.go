package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/sweeplabs/dirsweep/internal/cli/output"
	sharedcfg "github.com/sweeplabs/dirsweep/internal/config"
	"github.com/sweeplabs/dirsweep/internal/exclude"
	"github.com/sweeplabs/dirsweep/internal/rules"
	"github.com/sweeplabs/dirsweep/internal/scan"
)

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan for dependency directories and exclude them from backups",
		Long: `Walk the scan root looking for directories that match the rule file and
mark each one as excluded from backups.

Matched directories are pruned from the walk, so huge caches are never
descended into. Already-excluded paths are detected and left alone, which
makes rerunning the scan cheap and safe.`,
		Example: `  # Scan your home directory
  dirsweep scan

  # See what would be excluded without touching anything
  dirsweep scan --dry-run

  # Scan a different tree
  dirsweep scan --root /srv/projects`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report matches without marking anything")

	return cmd
}

// outcomeJSON is the machine-readable form of one per-path outcome.
type outcomeJSON struct {
	Path   string `json:"path"`
	Status string `json:"status"`
	Size   int64  `json:"size_bytes,omitempty"`
	Error  string `json:"error,omitempty"`
}

func runScan(cmd *cobra.Command, dryRun bool) error {
	cfg := getConfig(cmd)
	r := getRenderer(cmd)
	log := getLogger(cmd)

	if cfg.DryRun {
		dryRun = true
	}

	jsonMode := r.EffectiveMode() == output.ModeJSON

	// First run bootstraps the default rule file.
	rulesPath, created, err := sharedcfg.EnsureRulesFile(cfg.ConfigDir)
	if err != nil {
		return err
	}
	if created && !jsonMode {
		r.Printf("Created default rule file: %s\n", rulesPath)
	}

	loaded, warnings, err := rules.Load(rulesPath)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		r.Warning(fmt.Sprintf("%s: %s", rulesPath, w))
	}

	ruleSet := rules.New(loaded, cfg.SkipPaths)

	marker, err := newMarker(cfg)
	if err != nil {
		return err
	}
	applier := exclude.NewApplier(marker, log)
	scanner := scan.New(ruleSet, applier, log, dryRun)

	var outcomes []outcomeJSON

	styles := r.Styles()
	report := func(out exclude.Outcome) {
		if jsonMode {
			j := outcomeJSON{Path: out.Path, Status: out.Status.String()}
			if out.Size > 0 {
				j.Size = out.Size
			}
			if out.Err != nil {
				j.Error = out.Err.Error()
			}
			outcomes = append(outcomes, j)
			return
		}

		switch out.Status {
		case exclude.StatusMatched:
			r.Printf("%s %s\n", styles.Bold.Render("would exclude"), out.Path)
		case exclude.StatusExcluded:
			size := "size unknown"
			if out.Size >= 0 {
				size = humanize.IBytes(uint64(out.Size))
			}
			r.Printf("%s %s (%s)\n", styles.Success.Render("excluded"), out.Path, size)
		case exclude.StatusAlreadyExcluded:
			r.Printf("%s %s\n", styles.Muted.Render("already excluded"), out.Path)
		case exclude.StatusSkippedNotWritable:
			r.Printf("%s %s\n", styles.Warning.Render("skipped (not writable)"), out.Path)
		case exclude.StatusFailed:
			r.Printf("%s %s: %v\n", styles.Error.Render("failed"), out.Path, out.Err)
		}
	}

	sum, err := scanner.Run(cmd.Context(), cfg.Root, report)
	if err != nil {
		return fmt.Errorf("scan %s: %w", cfg.Root, err)
	}

	if jsonMode {
		return r.JSON(struct {
			Root     string        `json:"root"`
			DryRun   bool          `json:"dry_run"`
			Outcomes []outcomeJSON `json:"outcomes"`
			Summary  scan.Summary  `json:"summary"`
		}{Root: cfg.Root, DryRun: dryRun, Outcomes: outcomes, Summary: sum})
	}

	r.Println("")
	r.Printf("%d rules loaded\n", sum.RulesLoaded)
	renderSummary(r, sum, dryRun)
	return nil
}

func renderSummary(r *output.Renderer, sum scan.Summary, dryRun bool) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	t.AppendRow(table.Row{"Matched", sum.Matched})
	if !dryRun {
		t.AppendRow(table.Row{"Excluded", sum.Excluded})
		t.AppendRow(table.Row{"Already excluded", sum.AlreadyExcluded})
		t.AppendRow(table.Row{"Skipped (not writable)", sum.SkippedNotWritable})
		t.AppendRow(table.Row{"Failed", sum.Failed})
		t.AppendRow(table.Row{"Reclaimed from backups", humanize.IBytes(uint64(sum.Reclaimed))})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"Entries visited", sum.Visited})
	t.AppendRow(table.Row{"Subtrees pruned", sum.Pruned})
	if sum.TraversalErrors > 0 {
		t.AppendRow(table.Row{"Unreadable entries", sum.TraversalErrors})
	}

	r.Println(t.Render())
}
