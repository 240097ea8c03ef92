package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/getsops/sops/v3/decrypt"
	"gopkg.in/yaml.v3"
)

// Decrypter decrypts an encrypted secrets file to plaintext.
type Decrypter interface {
	Decrypt(path string) ([]byte, error)
}

// SOPSDecrypter decrypts SOPS-encrypted files with the keys available to the
// current user (age, PGP, cloud KMS).
type SOPSDecrypter struct{}

// NewSOPSDecrypter creates a new SOPSDecrypter instance.
func NewSOPSDecrypter() *SOPSDecrypter {
	return &SOPSDecrypter{}
}

// Decrypt decrypts the file, inferring the format from its extension.
func (s *SOPSDecrypter) Decrypt(path string) ([]byte, error) {
	data, err := decrypt.File(path, formatFor(path))
	if err != nil {
		return nil, fmt.Errorf("sops decrypt failed for %s: %w", path, err)
	}
	return data, nil
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// Secrets holds the credentials read from the secrets file.
type Secrets struct {
	GrafanaAdminUser     string `yaml:"grafana_admin_user"`
	GrafanaAdminPassword string `yaml:"grafana_admin_password"`
}

// LoadSecrets decrypts and parses a secrets file.
func LoadSecrets(d Decrypter, path string) (*Secrets, error) {
	plaintext, err := d.Decrypt(path)
	if err != nil {
		return nil, fmt.Errorf("decrypt secrets: %w", err)
	}

	var secrets Secrets
	if err := yaml.Unmarshal(plaintext, &secrets); err != nil {
		return nil, fmt.Errorf("parse secrets %s: %w", path, err)
	}

	return &secrets, nil
}

func (s *Secrets) apply(g *Grafana) {
	g.merge(Grafana{
		AdminUser:     s.GrafanaAdminUser,
		AdminPassword: s.GrafanaAdminPassword,
	})
}
