package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrExtensionPointMissing indicates the base manifest lacks a node that
// generated content is merged into.
var ErrExtensionPointMissing = errors.New("extension point missing in base manifest")

// Merge inserts the fragments into a parsed copy of base and serializes the
// result. Mounts are appended to services.grafana.configs; the top-level
// configs and volumes mappings are built from the static configs, the
// fragments, and Volumes.
func Merge(base string, f Fragments) (string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(base), &doc); err != nil {
		return "", fmt.Errorf("parse base manifest: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return "", fmt.Errorf("%w: document root is not a mapping", ErrExtensionPointMissing)
	}
	root := doc.Content[0]

	mounts, err := lookupPath(root, yaml.SequenceNode, "services", GrafanaService, "configs")
	if err != nil {
		return "", err
	}
	for _, m := range f.Mounts {
		mounts.Content = append(mounts.Content, mappingNode(
			"source", scalarNode(m.Source),
			"target", scalarNode(m.Target),
		))
	}

	configs, err := staticConfigsNode()
	if err != nil {
		return "", err
	}
	for _, c := range f.Configs {
		content := scalarNode(clipContent(c.Content))
		content.Style = yaml.LiteralStyle
		configs.Content = append(configs.Content, scalarNode(c.Name), mappingNode("content", content))
	}
	setKey(root, "configs", configs)

	volumes := mappingNode()
	for _, v := range Volumes {
		empty := mappingNode()
		empty.Style = yaml.FlowStyle
		volumes.Content = append(volumes.Content, scalarNode(v), empty)
	}
	setKey(root, "volumes", volumes)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}

	return buf.String(), nil
}

// clipContent matches what a clipped literal block holds for the same text:
// trailing line breaks collapse into one, and empty content stays empty.
func clipContent(s string) string {
	trimmed := strings.TrimRight(s, "\r\n")
	if trimmed == "" {
		return ""
	}
	return trimmed + "\n"
}

// staticConfigsNode parses the fixed configs section into a fresh mapping.
func staticConfigsNode() (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(staticConfigs), &doc); err != nil {
		return nil, fmt.Errorf("parse static configs: %w", err)
	}
	return lookupPath(doc.Content[0], yaml.MappingNode, "configs")
}

// lookupPath walks mapping keys from node and checks the kind of the final value.
func lookupPath(node *yaml.Node, kind yaml.Kind, path ...string) (*yaml.Node, error) {
	current := node
	for i, key := range path {
		next := mappingValue(current, key)
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrExtensionPointMissing, strings.Join(path[:i+1], "."))
		}
		current = next
	}
	if current.Kind != kind {
		return nil, fmt.Errorf("%w: %s has unexpected type", ErrExtensionPointMissing, strings.Join(path, "."))
	}
	return current, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// setKey replaces the value of key in a mapping, or appends the pair.
func setKey(node *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content[i+1] = value
			return
		}
	}
	node.Content = append(node.Content, scalarNode(key), value)
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// mappingNode builds a mapping from alternating key strings and value nodes.
func mappingNode(pairs ...any) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(pairs); i += 2 {
		node.Content = append(node.Content, scalarNode(pairs[i].(string)), pairs[i+1].(*yaml.Node))
	}
	return node
}
