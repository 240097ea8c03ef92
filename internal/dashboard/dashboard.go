// Package dashboard selects and loads the Grafana dashboard JSON files that get
// embedded into the monitoring compose manifest.
package dashboard

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ConfigPrefix namespaces every dashboard config name in the compose file.
	ConfigPrefix = "grafana_dashboard_"

	// TargetDir is where grafana's file provider picks up dashboards.
	TargetDir = "/etc/grafana/dashboards"

	extension = ".json"
)

// ErrConfigNameCollision indicates two filenames map to the same config name.
var ErrConfigNameCollision = errors.New("config name collision")

// AllFiles lists every dashboard shipped with the monitoring stack, in mount order.
var AllFiles = []string{
	"gaqno-dashboard-front.json",
	"gaqno-dashboard-backend.json",
	"gaqno-dashboard-devops.json",
	"gaqno-dashboard-dns-droppage.json",
	"gaqno-errors-by-service.json",
	"gaqno-errors-by-frontend.json",
}

// FourFiles lists the 4 main dashboards (smaller payload for the deploy API).
var FourFiles = []string{
	"gaqno-dashboard-front.json",
	"gaqno-dashboard-backend.json",
	"gaqno-dashboard-devops.json",
	"gaqno-dashboard-dns-droppage.json",
}

// Dashboard is a dashboard file and its raw, unparsed content.
type Dashboard struct {
	// Name is the filename relative to the dashboards directory.
	Name string

	// Content is the file text, embedded verbatim.
	Content string
}

// ConfigName returns the compose config name for the dashboard.
func (d Dashboard) ConfigName() string {
	return ConfigName(d.Name)
}

// Target returns the in-container mount path for the dashboard.
func (d Dashboard) Target() string {
	return Target(d.Name)
}

// Select returns a copy of the dashboard list for the requested set.
func Select(four bool) []string {
	src := AllFiles
	if four {
		src = FourFiles
	}
	names := make([]string, len(src))
	copy(names, src)
	return names
}

// ConfigName derives a compose config name from a dashboard filename.
// e.g. "gaqno-dashboard-front.json" -> "grafana_dashboard_gaqno_dashboard_front"
func ConfigName(filename string) string {
	base := strings.TrimSuffix(filename, extension)
	return ConfigPrefix + strings.ReplaceAll(base, "-", "_")
}

// Target returns the mount path for a dashboard filename.
func Target(filename string) string {
	return TargetDir + "/" + filename
}

// CheckNames verifies no two filenames derive the same config name.
func CheckNames(names []string) error {
	seen := make(map[string]string, len(names))
	for _, name := range names {
		configName := ConfigName(name)
		if prev, ok := seen[configName]; ok {
			return fmt.Errorf("%w: %s and %s both map to %s", ErrConfigNameCollision, prev, name, configName)
		}
		seen[configName] = name
	}
	return nil
}
