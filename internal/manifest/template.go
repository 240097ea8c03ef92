package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"

	"github.com/gaqno/grafana-compose/internal/config"
)

// composeTemplate is the monitoring stack without generated grafana configs.
//
//go:embed templates/compose.yml.tmpl
var composeTemplate string

// staticConfigs holds the top-level configs that never change.
//
//go:embed templates/configs.yml
var staticConfigs string

// dashboardsProvider is grafana's dashboard file provider definition.
//
//go:embed templates/dashboards.yml
var dashboardsProvider string

var baseTemplate = template.Must(template.New("compose.yml").
	Funcs(templateFuncs()).
	Option("missingkey=error").
	Parse(composeTemplate))

// templateFuncs extends sprig with scalar encoders for values that come from
// configuration and may need quoting.
func templateFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["yamlScalar"] = func(s string) (string, error) {
		return encodeScalar(s, 0)
	}
	funcs["yamlSquote"] = func(s string) (string, error) {
		return encodeScalar(s, yaml.SingleQuotedStyle)
	}
	return funcs
}

// encodeScalar renders s as a single-line YAML string scalar in the requested
// style. Plain style falls back to quoting when the text would not read back
// as the same string. Values that would span lines are double-quoted so line
// breaks are escaped.
func encodeScalar(s string, style yaml.Style) (string, error) {
	out, err := marshalScalar(s, style)
	if err != nil {
		return "", err
	}
	if strings.Contains(out, "\n") {
		return marshalScalar(s, yaml.DoubleQuotedStyle)
	}
	return out, nil
}

func marshalScalar(s string, style yaml.Style) (string, error) {
	out, err := yaml.Marshal(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: style})
	if err != nil {
		return "", fmt.Errorf("encode scalar: %w", err)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// BaseDocument renders the base manifest with the given grafana settings.
func BaseDocument(settings config.Grafana) (string, error) {
	var buf bytes.Buffer
	if err := baseTemplate.Execute(&buf, settings); err != nil {
		return "", fmt.Errorf("render base manifest: %w", err)
	}
	return buf.String(), nil
}

// StaticConfigs returns the fixed top-level configs section, including the
// "configs:" key.
func StaticConfigs() string {
	return staticConfigs
}
