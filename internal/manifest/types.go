package manifest

// IndentWidth is the indentation of config content under "content: |".
const IndentWidth = 6

// Fixed config names and mount targets.
const (
	// DashboardsProviderConfig declares grafana's dashboard file provider.
	DashboardsProviderConfig = "grafana_dashboards_yml"

	// DashboardsProviderTarget is where grafana reads provider definitions.
	DashboardsProviderTarget = "/etc/grafana/provisioning/dashboards/dashboards.yml"

	// DatasourceConfig declares the prometheus datasource.
	DatasourceConfig = "grafana_datasource"

	// DatasourceTarget is where grafana reads datasource definitions.
	DatasourceTarget = "/etc/grafana/provisioning/datasources/prometheus.yml"

	// PrometheusConfig holds the prometheus scrape configuration.
	PrometheusConfig = "prometheus_config"

	// GrafanaService is the compose service dashboards are mounted into.
	GrafanaService = "grafana"
)

// Volumes lists the named volumes declared at the end of the manifest.
var Volumes = []string{"prometheus-data", "grafana-data-v3"}

// Mode selects how generated fragments are inserted into the base manifest.
type Mode int

const (
	// ModeVerbatim splices text at fixed anchors. Output is byte-compatible
	// with previously deployed manifests.
	ModeVerbatim Mode = iota

	// ModeStructured merges into a parsed YAML tree and re-serializes it.
	ModeStructured
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeVerbatim:
		return "verbatim"
	case ModeStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// Mount references a top-level config from a service's configs list.
type Mount struct {
	// Source is the config name.
	Source string

	// Target is the path inside the container.
	Target string
}

// Config is a top-level compose config with inline content.
type Config struct {
	// Name is the config name referenced by mounts.
	Name string

	// Content is the raw, unindented content.
	Content string
}

// Fragments holds the generated pieces spliced into the base manifest.
type Fragments struct {
	// Mounts are appended to the grafana service configs, in order.
	Mounts []Mount

	// Configs are appended to the top-level configs after the static ones, in order.
	Configs []Config
}
