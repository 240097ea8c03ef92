package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/gaqno/grafana-compose/internal/ui"
)

// ErrDrift indicates an existing manifest differs from the generated one.
var ErrDrift = errors.New("manifest is out of date")

// checkCmd compares an existing manifest with a fresh render.
var checkCmd = &cobra.Command{
	Use:     "check <manifest>",
	Aliases: []string{"drift"},
	Short:   "Check an existing manifest for drift",
	Long: `Render the manifest and compare it with an existing file.

Prints a line diff (- existing, + generated) and exits non-zero when they
differ. Use the same flags that produced the file.

Examples:
  grafana-compose check deploy/monitoring.yml
  grafana-compose check --four deploy/monitoring.yml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	existing, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	output, err := renderManifest(cfg)
	if err != nil {
		return err
	}

	diff := manifestDiff(string(existing), output+"\n")
	if diff == "" {
		ui.Success("%s is up to date", path)
		return nil
	}

	ui.Error("%s differs from the generated manifest", path)
	fmt.Fprint(cmd.OutOrStdout(), diff)
	return fmt.Errorf("%w: %s", ErrDrift, path)
}

// manifestDiff returns a line diff between two documents, or "" if equal.
func manifestDiff(existing, generated string) string {
	if existing == generated {
		return ""
	}
	return cmp.Diff(strings.Split(existing, "\n"), strings.Split(generated, "\n"))
}
