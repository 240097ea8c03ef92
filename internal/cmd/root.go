// Package cmd provides the CLI commands for grafana-compose.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaqno/grafana-compose/internal/config"
	"github.com/gaqno/grafana-compose/internal/dashboard"
	"github.com/gaqno/grafana-compose/internal/fileutil"
	"github.com/gaqno/grafana-compose/internal/lock"
	"github.com/gaqno/grafana-compose/internal/manifest"
	"github.com/gaqno/grafana-compose/internal/ui"
)

const version = "0.1.0"

// Flags shared by every command.
var (
	flagFour          bool
	flagDashboardsDir string
	flagConfig        string
	flagSecrets       string
	flagStructured    bool
)

var renderOutput string

// rootCmd renders the manifest when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "grafana-compose",
	Short: "Generate the monitoring compose manifest with embedded Grafana dashboards",
	Long: `grafana-compose - monitoring stack manifest generator

Prints a Docker Compose manifest for the monitoring stack (prometheus,
exporters, pushgateway, grafana) with every Grafana dashboard JSON file
embedded as an inline compose config and mounted into grafana.

Dashboards missing from the dashboards directory are skipped.

Examples:
  # Full dashboard set
  grafana-compose > docker-compose.yml

  # Only the 4 main dashboards (smaller payload for the deploy API)
  grafana-compose --four > docker-compose.yml

  # Write atomically to a file
  grafana-compose -o deploy/monitoring.yml

Configuration (lowest precedence first):
  defaults, monitoring/grafana/grafana-compose.yaml (or --config),
  SOPS secrets (monitoring/grafana/secrets.sops.yaml or --secrets),
  GCOMPOSE_* environment variables, --dashboards-dir.`,
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetOutput(cmd.ErrOrStderr())
	},
	RunE: runRender,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&flagFour, "four", false, "Only the 4 main dashboards")
	flags.StringVarP(&flagDashboardsDir, "dashboards-dir", "d", "", "Dashboards directory (default monitoring/grafana/dashboards under the repo root)")
	flags.StringVarP(&flagConfig, "config", "c", "", "Config file (default monitoring/grafana/"+config.FileName+")")
	flags.StringVarP(&flagSecrets, "secrets", "s", "", "SOPS secrets file with grafana credentials (auto-detected from "+config.EnvSecretsFile+" if not set)")
	flags.BoolVar(&flagStructured, "structured", false, "Merge into a parsed YAML tree instead of splicing text")

	rootCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (prints to stdout if not set)")

	rootCmd.SetVersionTemplate("grafana-compose version {{.Version}}\n")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	output, err := renderManifest(cfg)
	if err != nil {
		return err
	}

	if renderOutput == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), output)
		return err
	}

	ui.Info("Rendered %s manifest from %s", renderMode(), cfg.DashboardsDir)

	data := []byte(output + "\n")
	err = lock.WithFileLock(renderOutput, func() error {
		return fileutil.WriteFileAtomic(renderOutput, data, 0644)
	})
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	ui.Success("Wrote %s", renderOutput)
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Options{
		ConfigFile:    flagConfig,
		SecretsFile:   flagSecrets,
		DashboardsDir: flagDashboardsDir,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func renderManifest(cfg *config.Config) (string, error) {
	output, err := manifest.RenderDir(cfg.Grafana, cfg.DashboardsDir, dashboard.Select(flagFour), renderMode())
	if err != nil {
		return "", fmt.Errorf("render manifest: %w", err)
	}
	return output, nil
}

func renderMode() manifest.Mode {
	if flagStructured {
		return manifest.ModeStructured
	}
	return manifest.ModeVerbatim
}
