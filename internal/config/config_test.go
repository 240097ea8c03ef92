package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalSymlinks resolves symlinks for path comparison (macOS /var -> /private/var).
func evalSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

// clearEnv blanks every override variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAdminUser, EnvAdminPassword, EnvRootURL, EnvDomain, EnvDashboardsDir, EnvSecretsFile} {
		t.Setenv(key, "")
	}
}

type fakeDecrypter struct {
	plaintext string
	err       error
	calls     []string
}

func (f *fakeDecrypter) Decrypt(path string) ([]byte, error) {
	f.calls = append(f.calls, path)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.plaintext), nil
}

func TestFindRoot_InsideRepository(t *testing.T) {
	tmpDir := evalSymlinks(t, t.TempDir())
	_, err := git.PlainInit(tmpDir, false)
	require.NoError(t, err)

	subDir := filepath.Join(tmpDir, "monitoring", "grafana")
	require.NoError(t, os.MkdirAll(subDir, 0755))

	root, err := FindRoot(subDir)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, evalSymlinks(t, root))
}

func TestFindRoot_OutsideRepository(t *testing.T) {
	tmpDir := evalSymlinks(t, t.TempDir())

	root, err := FindRoot(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, root)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	tmpDir := evalSymlinks(t, t.TempDir())

	cfg, err := Load(Options{Dir: tmpDir})
	require.NoError(t, err)

	assert.Equal(t, tmpDir, cfg.Root)
	assert.Equal(t, filepath.Join(tmpDir, "monitoring", "grafana", "dashboards"), cfg.DashboardsDir)
	assert.Equal(t, DefaultGrafana(), cfg.Grafana)
	assert.Empty(t, cfg.SecretsFile)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	tmpDir := evalSymlinks(t, t.TempDir())
	monitoringDir := filepath.Join(tmpDir, "monitoring", "grafana")
	require.NoError(t, os.MkdirAll(monitoringDir, 0755))

	content := `dashboards_dir: boards
grafana:
  root_url: https://grafana.example.com/
  domain: grafana.example.com
`
	require.NoError(t, os.WriteFile(filepath.Join(monitoringDir, FileName), []byte(content), 0644))

	cfg, err := Load(Options{Dir: tmpDir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(monitoringDir, "boards"), cfg.DashboardsDir)
	assert.Equal(t, "https://grafana.example.com/", cfg.Grafana.RootURL)
	assert.Equal(t, "grafana.example.com", cfg.Grafana.Domain)
	// Unset fields keep their defaults
	assert.Equal(t, "admin", cfg.Grafana.AdminUser)
	assert.Equal(t, "gaqno2026", cfg.Grafana.AdminPassword)
}

func TestLoad_ExplicitConfigFileMustExist(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()

	_, err := Load(Options{Dir: tmpDir, ConfigFile: filepath.Join(tmpDir, "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grafana: [unclosed"), 0644))

	_, err := Load(Options{Dir: tmpDir, ConfigFile: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_Secrets(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	secretsPath := filepath.Join(tmpDir, "secrets.sops.yaml")
	require.NoError(t, os.WriteFile(secretsPath, []byte("encrypted"), 0600))

	decrypter := &fakeDecrypter{plaintext: "grafana_admin_user: ops\ngrafana_admin_password: s3cret\n"}

	cfg, err := Load(Options{Dir: tmpDir, SecretsFile: secretsPath, Decrypter: decrypter})
	require.NoError(t, err)

	assert.Equal(t, []string{secretsPath}, decrypter.calls)
	assert.Equal(t, "ops", cfg.Grafana.AdminUser)
	assert.Equal(t, "s3cret", cfg.Grafana.AdminPassword)
	assert.Equal(t, secretsPath, cfg.SecretsFile)
}

func TestLoad_DefaultSecretsFileDiscovered(t *testing.T) {
	clearEnv(t)
	tmpDir := evalSymlinks(t, t.TempDir())
	monitoringDir := filepath.Join(tmpDir, "monitoring", "grafana")
	require.NoError(t, os.MkdirAll(monitoringDir, 0755))
	secretsPath := filepath.Join(monitoringDir, SecretsFileName)
	require.NoError(t, os.WriteFile(secretsPath, []byte("encrypted"), 0600))

	decrypter := &fakeDecrypter{plaintext: "grafana_admin_password: from-sops\n"}

	cfg, err := Load(Options{Dir: tmpDir, Decrypter: decrypter})
	require.NoError(t, err)
	assert.Equal(t, "from-sops", cfg.Grafana.AdminPassword)
	assert.Equal(t, "admin", cfg.Grafana.AdminUser)
}

func TestLoad_SecretsDecryptError(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	decrypter := &fakeDecrypter{err: errors.New("no key")}

	_, err := Load(Options{Dir: tmpDir, SecretsFile: "secrets.sops.yaml", Decrypter: decrypter})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decrypt secrets")
	assert.Contains(t, err.Error(), "no key")
}

func TestLoad_NoSecretsFileSkipsDecrypt(t *testing.T) {
	clearEnv(t)
	decrypter := &fakeDecrypter{}

	_, err := Load(Options{Dir: t.TempDir(), Decrypter: decrypter})
	require.NoError(t, err)
	assert.Empty(t, decrypter.calls)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	t.Setenv(EnvAdminUser, "env-user")
	t.Setenv(EnvAdminPassword, "env-pass")
	t.Setenv(EnvRootURL, "https://env.example.com/")
	t.Setenv(EnvDomain, "env.example.com")
	t.Setenv(EnvDashboardsDir, "/srv/dashboards")

	decrypter := &fakeDecrypter{plaintext: "grafana_admin_user: sops-user\n"}
	secretsPath := filepath.Join(tmpDir, "s.yaml")

	cfg, err := Load(Options{Dir: tmpDir, SecretsFile: secretsPath, Decrypter: decrypter})
	require.NoError(t, err)

	assert.Equal(t, Grafana{
		AdminUser:     "env-user",
		AdminPassword: "env-pass",
		RootURL:       "https://env.example.com/",
		Domain:        "env.example.com",
	}, cfg.Grafana)
	assert.Equal(t, "/srv/dashboards", cfg.DashboardsDir)
}

func TestLoad_DashboardsDirOption(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDashboardsDir, "/from/env")

	cfg, err := Load(Options{Dir: t.TempDir(), DashboardsDir: "/from/flag"})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.DashboardsDir)
}

func TestLoadSecrets_InvalidYAML(t *testing.T) {
	_, err := LoadSecrets(&fakeDecrypter{plaintext: "grafana_admin_user: [oops"}, "x.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse secrets")
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, "yaml", formatFor("secrets.sops.yaml"))
	assert.Equal(t, "yaml", formatFor("secrets.yml"))
	assert.Equal(t, "json", formatFor("secrets.JSON"))
}
