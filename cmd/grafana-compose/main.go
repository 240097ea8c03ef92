// Command grafana-compose prints the monitoring stack compose manifest with
// Grafana dashboards embedded as compose configs.
package main

import "github.com/gaqno/grafana-compose/internal/cmd"

func main() {
	cmd.Execute()
}
