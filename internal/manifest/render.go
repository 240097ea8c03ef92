package manifest

import (
	"fmt"

	"github.com/gaqno/grafana-compose/internal/config"
	"github.com/gaqno/grafana-compose/internal/dashboard"
)

// Render builds the complete compose manifest for the given dashboards.
func Render(settings config.Grafana, dashboards []dashboard.Dashboard, mode Mode) (string, error) {
	base, err := BaseDocument(settings)
	if err != nil {
		return "", err
	}

	fragments := BuildFragments(dashboards)

	switch mode {
	case ModeVerbatim:
		doc, err := Splice(base, fragments)
		if err != nil {
			return "", fmt.Errorf("splice manifest: %w", err)
		}
		return doc, nil
	case ModeStructured:
		doc, err := Merge(base, fragments)
		if err != nil {
			return "", fmt.Errorf("merge manifest: %w", err)
		}
		return doc, nil
	default:
		return "", fmt.Errorf("unknown render mode: %d", mode)
	}
}

// RenderDir loads the named dashboards from dir and renders the manifest.
func RenderDir(settings config.Grafana, dir string, names []string, mode Mode) (string, error) {
	if err := dashboard.CheckNames(names); err != nil {
		return "", err
	}

	dashboards, err := dashboard.Load(dir, names)
	if err != nil {
		return "", fmt.Errorf("load dashboards: %w", err)
	}

	return Render(settings, dashboards, mode)
}
