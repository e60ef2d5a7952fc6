package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/sweeplabs/dirsweep/internal/cli/output"
	sharedcfg "github.com/sweeplabs/dirsweep/internal/config"
	"github.com/sweeplabs/dirsweep/internal/rules"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the effective rules and skip paths",
		Long: `Print the classification rules loaded from the rule file, any lines
that could not be parsed, and the paths excluded from traversal.`,
		Args: cobra.NoArgs,
		RunE: runRules,
	}
}

func runRules(cmd *cobra.Command, _ []string) error {
	cfg := getConfig(cmd)
	r := getRenderer(cmd)

	jsonMode := r.EffectiveMode() == output.ModeJSON

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

	if jsonMode {
		type ruleJSON struct {
			Dir      string `json:"dir"`
			Sentinel string `json:"sentinel"`
		}
		out := struct {
			RuleFile  string     `json:"rule_file"`
			Rules     []ruleJSON `json:"rules"`
			Warnings  []string   `json:"warnings,omitempty"`
			SkipPaths []string   `json:"skip_paths"`
		}{RuleFile: rulesPath, SkipPaths: cfg.SkipPaths}
		for _, rule := range loaded {
			out.Rules = append(out.Rules, ruleJSON{Dir: rule.Dir, Sentinel: rule.Sentinel})
		}
		for _, w := range warnings {
			out.Warnings = append(out.Warnings, w.String())
		}
		return r.JSON(out)
	}

	styles := r.Styles()
	r.Println(styles.Header.Render("Rules") + " " + styles.Muted.Render("("+rulesPath+")"))

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Directory", "Sentinel"})
	for _, rule := range loaded {
		t.AppendRow(table.Row{rule.Dir, rule.Sentinel})
	}
	r.Println(t.Render())

	for _, w := range warnings {
		r.Warning(fmt.Sprintf("%s: %s", rulesPath, w))
	}

	r.Println("")
	r.Println(styles.Header.Render("Skip paths"))
	for _, p := range cfg.SkipPaths {
		r.Printf("  %s\n", p)
	}

	return nil
}
