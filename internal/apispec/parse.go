package apispec

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse decodes raw spec bytes as JSON, falling back to YAML. The top
// level must be a mapping.
func Parse(content []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err == nil {
		return raw, nil
	}

	var node any
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, fmt.Errorf("parsing spec: not valid JSON or YAML: %w", err)
	}
	m, ok := normalizeYAML(node).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parsing spec: document must be a JSON/YAML object")
	}
	return m, nil
}

// ParseAndNormalize is the common parse-then-normalize path used by the
// upload handler and the CLI.
func ParseAndNormalize(content []byte) (*Spec, error) {
	raw, err := Parse(content)
	if err != nil {
		return nil, err
	}
	return Normalize(raw), nil
}

// normalizeYAML converts yaml.v3's map[string]any / map[any]any trees into
// pure map[string]any form so JSON and YAML inputs look identical.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
