package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	sharedcfg "github.com/sweeplabs/dirsweep/internal/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration area with default rules",
		Long: `Create the dirsweep configuration directory and write the default rule
file plus a commented settings file.

The scan command creates the rule file on first run by itself; init is for
inspecting or editing the configuration before the first scan.`,
		Example: `  # Bootstrap the default configuration
  dirsweep init

  # Start over from the defaults
  dirsweep init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration files")

	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	cfg := getConfig(cmd)
	r := getRenderer(cmd)

	if err := os.MkdirAll(cfg.ConfigDir, 0o750); err != nil {
		return fmt.Errorf("create config dir %s: %w", cfg.ConfigDir, err)
	}

	rulesPath := filepath.Join(cfg.ConfigDir, sharedcfg.RulesFileName)
	if _, err := os.Stat(rulesPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", rulesPath)
	}
	if err := os.WriteFile(rulesPath, []byte(sharedcfg.DefaultRules), 0o644); err != nil {
		return fmt.Errorf("write rule file: %w", err)
	}

	settingsPath := filepath.Join(cfg.ConfigDir, sharedcfg.SettingsFileName)
	wroteSettings := false
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) || force {
		if err := os.WriteFile(settingsPath, []byte(sharedcfg.DefaultSettings), 0o644); err != nil {
			return fmt.Errorf("write settings file: %w", err)
		}
		wroteSettings = true
	}

	r.Printf("Wrote %s\n", rulesPath)
	if wroteSettings {
		r.Printf("Wrote %s\n", settingsPath)
	}
	r.Println("")
	r.Success("dirsweep configuration initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Review the rules: dirsweep rules")
	r.Println("  2. Preview a scan:   dirsweep scan --dry-run")
	r.Println("  3. Run it for real:  dirsweep scan")

	return nil
}
