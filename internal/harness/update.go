package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/resiou/internal/score"
)

// UpdateExpectations rewrites the expect value of every failing case in the
// suite file at path with its actual score. Cases that could not be evaluated
// keep their expectation. Comments and layout are preserved.
// Returns the number of cases changed.
func UpdateExpectations(path string, result *Result) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read suite file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return 0, fmt.Errorf("empty suite file: %s", path)
	}

	scores := make(map[string]CaseResult, len(result.Cases))
	for _, c := range result.Cases {
		scores[c.Name] = c
	}

	cases := mappingValue(doc.Content[0], "cases")
	if cases == nil || cases.Kind != yaml.SequenceNode {
		return 0, fmt.Errorf("suite has no cases list: %s", path)
	}

	changed := 0
	for _, item := range cases.Content {
		name := mappingValue(item, "name")
		if name == nil {
			continue
		}
		cr, ok := scores[name.Value]
		if !ok || cr.Pass || cr.RunID == "" {
			continue
		}
		expect := mappingValue(item, "expect")
		if expect == nil {
			continue
		}
		expect.Value = score.Format(cr.Score)
		expect.Tag = ""
		expect.Style = 0
		changed++
	}

	if changed == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return 0, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("failed to encode YAML: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("failed to write suite file: %w", err)
	}
	return changed, nil
}

// mappingValue returns the value node for key in a mapping node.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
