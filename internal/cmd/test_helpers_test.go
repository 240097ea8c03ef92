package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/gaqno/grafana-compose/internal/config"
)

// resetFlags restores every flag to its default so cobra state doesn't leak
// between test executions.
func resetFlags(t *testing.T) {
	t.Helper()
	var reset func(c *cobra.Command)
	reset = func(c *cobra.Command) {
		for _, fs := range []*pflag.FlagSet{c.PersistentFlags(), c.Flags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				require.NoError(t, f.Value.Set(f.DefValue))
				f.Changed = false
			})
		}
		for _, sub := range c.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)
}

// clearEnv blanks config environment overrides for the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvAdminUser, config.EnvAdminPassword, config.EnvRootURL,
		config.EnvDomain, config.EnvDashboardsDir, config.EnvSecretsFile,
	} {
		t.Setenv(key, "")
	}
}

// executeCmd runs the root command with args and returns stdout and stderr separately.
func executeCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)
	resetFlags(t)

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeDashboards creates dashboard files in a fresh directory.
func writeDashboards(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}
