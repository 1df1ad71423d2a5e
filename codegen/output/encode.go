package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

// leadingKeys are always emitted first, in this order.
var leadingKeys = []string{"apiVersion", "kind", "metadata"}

// droppedKeys are populated by the API server and never belong in a manifest.
var droppedKeys = map[string]struct{}{
	"status": {},
}

// EncodeYAML serializes an API object to YAML using its JSON tags.
// Top-level keys are apiVersion, kind and metadata followed by the remaining keys in lexicographic order,
// and nested mapping keys are sorted, so encoding the same object twice gives identical bytes.
// The top-level status and null metadata fields (such as creationTimestamp) are left out.
func EncodeYAML(obj any) ([]byte, error) {
	j, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("marshaling to JSON: %w", err)
	}
	y, err := sigsyaml.JSONToYAML(j)
	if err != nil {
		return nil, fmt.Errorf("converting JSON to YAML: %w", err)
	}
	doc := &yaml.Node{}
	if err := yaml.Unmarshal(y, doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 && doc.Content[0].Kind == yaml.MappingNode {
		reorder(doc.Content[0])
	}

	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

type pair struct {
	key   *yaml.Node
	value *yaml.Node
}

func reorder(root *yaml.Node) {
	pairs := make(map[string]pair, len(root.Content)/2)
	rest := make([]string, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		if _, ok := droppedKeys[key]; ok {
			continue
		}
		pairs[key] = pair{key: root.Content[i], value: root.Content[i+1]}
		rest = append(rest, key)
	}
	if md, ok := pairs["metadata"]; ok && md.value.Kind == yaml.MappingNode {
		dropNulls(md.value)
	}

	content := make([]*yaml.Node, 0, len(root.Content))
	for _, key := range leadingKeys {
		if p, ok := pairs[key]; ok {
			content = append(content, p.key, p.value)
			delete(pairs, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		if p, ok := pairs[key]; ok {
			content = append(content, p.key, p.value)
		}
	}
	root.Content = content
}

func dropNulls(m *yaml.Node) {
	content := make([]*yaml.Node, 0, len(m.Content))
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i+1].Tag == "!!null" {
			continue
		}
		content = append(content, m.Content[i], m.Content[i+1])
	}
	m.Content = content
}
