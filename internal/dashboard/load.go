package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Load errors.
var (
	// ErrInvalidDashboard indicates a dashboard file is not well-formed JSON.
	ErrInvalidDashboard = errors.New("invalid dashboard JSON")

	// ErrInvalidEncoding indicates a dashboard file is not valid UTF-8.
	ErrInvalidEncoding = errors.New("dashboard is not valid UTF-8")
)

// Load reads the named dashboards from dir, preserving the order of names.
// Names that do not exist as regular files are skipped without error.
// Line endings are normalized to LF; the content is otherwise untouched.
// Read failures and malformed content abort the load.
func Load(dir string, names []string) ([]Dashboard, error) {
	dashboards := make([]Dashboard, 0, len(names))

	for _, name := range names {
		path := filepath.Join(dir, name)
		if !isRegularFile(path) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dashboard %s: %w", name, err)
		}

		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidEncoding, name)
		}

		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDashboard, name)
		}

		dashboards = append(dashboards, Dashboard{Name: name, Content: normalizeNewlines(string(data))})
	}

	return dashboards, nil
}

// FileStatus describes a selected dashboard on disk.
type FileStatus struct {
	Name       string
	ConfigName string
	Present    bool
	Size       int64
}

// Status reports which of the named dashboards are present in dir.
func Status(dir string, names []string) []FileStatus {
	statuses := make([]FileStatus, 0, len(names))
	for _, name := range names {
		status := FileStatus{Name: name, ConfigName: ConfigName(name)}
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && info.Mode().IsRegular() {
			status.Present = true
			status.Size = info.Size()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// normalizeNewlines converts CRLF and CR line endings to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// isRegularFile follows symlinks, matching how the file will be read.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
