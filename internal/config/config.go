// Package config handles repository discovery and generator configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the default config file name, looked up in MonitoringDir.
	FileName = "grafana-compose.yaml"

	// MonitoringDir is the grafana monitoring directory relative to the repo root.
	MonitoringDir = "monitoring/grafana"

	// SecretsFileName is the default SOPS secrets file, looked up in MonitoringDir.
	SecretsFileName = "secrets.sops.yaml"
)

// Environment variables that override file configuration.
const (
	EnvAdminUser     = "GCOMPOSE_ADMIN_USER"
	EnvAdminPassword = "GCOMPOSE_ADMIN_PASSWORD"
	EnvRootURL       = "GCOMPOSE_ROOT_URL"
	EnvDomain        = "GCOMPOSE_DOMAIN"
	EnvDashboardsDir = "GCOMPOSE_DASHBOARDS_DIR"
	EnvSecretsFile   = "GCOMPOSE_SECRETS_FILE"
)

// Grafana holds the grafana server settings injected into the base manifest.
type Grafana struct {
	AdminUser     string `yaml:"admin_user,omitempty"`
	AdminPassword string `yaml:"admin_password,omitempty"`
	RootURL       string `yaml:"root_url,omitempty"`
	Domain        string `yaml:"domain,omitempty"`
}

// DefaultGrafana returns the settings of the production deployment.
func DefaultGrafana() Grafana {
	return Grafana{
		AdminUser:     "admin",
		AdminPassword: "gaqno2026",
		RootURL:       "https://grafana.gaqno.com.br/",
		Domain:        "grafana.gaqno.com.br",
	}
}

// Config holds the generator configuration.
type Config struct {
	// Root is the repository root (or the start directory outside a repo).
	Root string `yaml:"-"`

	// DashboardsDir is the directory holding dashboard JSON files.
	DashboardsDir string `yaml:"dashboards_dir,omitempty"`

	// SecretsFile is an optional SOPS-encrypted file with grafana credentials.
	SecretsFile string `yaml:"secrets_file,omitempty"`

	// Grafana holds the grafana server settings.
	Grafana Grafana `yaml:"grafana,omitempty"`
}

// Options controls how Load resolves configuration.
type Options struct {
	// Dir is where root discovery starts. Defaults to the working directory.
	Dir string

	// ConfigFile overrides the default config file location. It must exist.
	ConfigFile string

	// SecretsFile overrides the secrets file location. It must exist.
	SecretsFile string

	// DashboardsDir overrides every other dashboards directory setting.
	DashboardsDir string

	// Decrypter decrypts the secrets file. Defaults to SOPS.
	Decrypter Decrypter
}

// FindRoot returns the root of the git repository containing start.
// Outside a repository, start itself is returned.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return abs, nil
		}
		return "", fmt.Errorf("open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to anchor paths on.
		return abs, nil
	}

	return worktree.Filesystem.Root(), nil
}

// Load resolves the configuration. Precedence, lowest first: defaults,
// config file, secrets file, environment, options.
func Load(opts Options) (*Config, error) {
	start := opts.Dir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		start = wd
	}

	root, err := FindRoot(start)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Root:          root,
		DashboardsDir: filepath.Join(root, MonitoringDir, "dashboards"),
		Grafana:       DefaultGrafana(),
	}

	configFile := opts.ConfigFile
	required := configFile != ""
	if configFile == "" {
		configFile = filepath.Join(root, MonitoringDir, FileName)
	}
	if err := cfg.loadFile(configFile, required); err != nil {
		return nil, err
	}

	secretsFile := firstNonEmpty(opts.SecretsFile, os.Getenv(EnvSecretsFile), cfg.SecretsFile)
	required = secretsFile != ""
	if secretsFile == "" {
		secretsFile = filepath.Join(root, MonitoringDir, SecretsFileName)
	}
	if required || fileExists(secretsFile) {
		decrypter := opts.Decrypter
		if decrypter == nil {
			decrypter = NewSOPSDecrypter()
		}
		secrets, err := LoadSecrets(decrypter, secretsFile)
		if err != nil {
			return nil, err
		}
		secrets.apply(&cfg.Grafana)
		cfg.SecretsFile = secretsFile
	}

	cfg.applyEnv()

	if opts.DashboardsDir != "" {
		cfg.DashboardsDir = opts.DashboardsDir
	}

	return cfg, nil
}

// loadFile merges the YAML config file into cfg. Relative dashboards_dir
// values resolve against the file's directory.
func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	base := filepath.Dir(path)
	if fileCfg.DashboardsDir != "" {
		c.DashboardsDir = resolve(base, fileCfg.DashboardsDir)
	}
	if fileCfg.SecretsFile != "" {
		c.SecretsFile = resolve(base, fileCfg.SecretsFile)
	}
	c.Grafana.merge(fileCfg.Grafana)

	return nil
}

func (c *Config) applyEnv() {
	c.Grafana.merge(Grafana{
		AdminUser:     os.Getenv(EnvAdminUser),
		AdminPassword: os.Getenv(EnvAdminPassword),
		RootURL:       os.Getenv(EnvRootURL),
		Domain:        os.Getenv(EnvDomain),
	})
	if dir := os.Getenv(EnvDashboardsDir); dir != "" {
		c.DashboardsDir = dir
	}
}

// merge overwrites fields that are set in other.
func (g *Grafana) merge(other Grafana) {
	if other.AdminUser != "" {
		g.AdminUser = other.AdminUser
	}
	if other.AdminPassword != "" {
		g.AdminPassword = other.AdminPassword
	}
	if other.RootURL != "" {
		g.RootURL = other.RootURL
	}
	if other.Domain != "" {
		g.Domain = other.Domain
	}
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
