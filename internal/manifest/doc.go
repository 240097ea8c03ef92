// Package manifest renders the monitoring stack's compose manifest.
//
// The base manifest is an embedded template holding every service of the
// stack. Grafana dashboards are embedded into it as top-level compose configs
// and mounted into the grafana service:
//
//	services:
//	  grafana:
//	    configs:
//	      -
//	        source: grafana_dashboard_gaqno_dashboard_front
//	        target: /etc/grafana/dashboards/gaqno-dashboard-front.json
//	configs:
//	  grafana_dashboard_gaqno_dashboard_front:
//	    content: |
//	      {"title":"Front"}
//
// # Modes
//
// ModeVerbatim splices text at a fixed anchor and reproduces the deployed
// manifest byte for byte. ModeStructured merges into a parsed YAML tree at
// named extension points and re-serializes, so layout edits to the base
// cannot silently drop the mounts.
package manifest
