package manifest

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// GrafanaConfigsAnchor is the grafana service configs block in the base
// manifest. Generated mounts are inserted right after it.
const GrafanaConfigsAnchor = `    configs:
      -
        source: grafana_datasource
        target: /etc/grafana/provisioning/datasources/prometheus.yml
`

// Splice errors.
var (
	// ErrAnchorNotFound indicates the base manifest no longer contains the anchor text.
	ErrAnchorNotFound = errors.New("grafana configs anchor not found in base manifest")

	// ErrAnchorAmbiguous indicates the anchor text appears more than once.
	ErrAnchorAmbiguous = errors.New("grafana configs anchor is not unique in base manifest")
)

// Splice inserts the fragments into base by literal text replacement and
// appends the top-level configs and volumes sections. The anchor must match
// exactly once; whitespace edits to the base manifest break the match.
func Splice(base string, f Fragments) (string, error) {
	switch n := strings.Count(base, GrafanaConfigsAnchor); {
	case n == 0:
		return "", ErrAnchorNotFound
	case n > 1:
		return "", fmt.Errorf("%w: %d matches", ErrAnchorAmbiguous, n)
	}

	doc := strings.Replace(base, GrafanaConfigsAnchor, GrafanaConfigsAnchor+f.MountsText()+"\n", 1)
	doc = strings.TrimRightFunc(doc, unicode.IsSpace)

	var b strings.Builder
	b.WriteString(doc)
	b.WriteString("\n")
	b.WriteString(staticConfigs)
	b.WriteString(f.ConfigsText())
	b.WriteString("\n")
	b.WriteString(volumesText())

	return b.String(), nil
}

// volumesText renders the volumes section with compose's empty-map style.
func volumesText() string {
	var b strings.Builder
	b.WriteString("volumes:\n")
	for _, v := range Volumes {
		b.WriteString("  " + v + ": {  }\n")
	}
	return b.String()
}
