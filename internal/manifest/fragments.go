package manifest

import (
	"strings"

	"github.com/gaqno/grafana-compose/internal/dashboard"
)

// BuildFragments builds the grafana mounts and top-level configs for the
// loaded dashboards. The dashboards provider entry always comes first in
// both lists; dashboards follow in load order.
func BuildFragments(dashboards []dashboard.Dashboard) Fragments {
	f := Fragments{
		Mounts:  make([]Mount, 0, len(dashboards)+1),
		Configs: make([]Config, 0, len(dashboards)+1),
	}

	f.Mounts = append(f.Mounts, Mount{Source: DashboardsProviderConfig, Target: DashboardsProviderTarget})
	f.Configs = append(f.Configs, Config{Name: DashboardsProviderConfig, Content: strings.TrimSpace(dashboardsProvider) + "\n"})

	for _, d := range dashboards {
		name := d.ConfigName()
		f.Mounts = append(f.Mounts, Mount{Source: name, Target: d.Target()})
		f.Configs = append(f.Configs, Config{Name: name, Content: d.Content})
	}

	return f
}

// MountsText renders the mounts as service configs list items.
func (f Fragments) MountsText() string {
	blocks := make([]string, 0, len(f.Mounts))
	for _, m := range f.Mounts {
		blocks = append(blocks, m.text())
	}
	return strings.Join(blocks, "\n")
}

// ConfigsText renders the configs as top-level configs entries with
// literal block content.
func (f Fragments) ConfigsText() string {
	blocks := make([]string, 0, len(f.Configs))
	for _, c := range f.Configs {
		blocks = append(blocks, c.text())
	}
	return strings.Join(blocks, "\n")
}

func (m Mount) text() string {
	return "      -\n        source: " + m.Source + "\n        target: " + m.Target
}

func (c Config) text() string {
	return "  " + c.Name + ":\n    content: |\n" + Indent(c.Content, IndentWidth)
}
