package assess

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MOYARU/cyberchecklist/internal/report"
	"github.com/MOYARU/cyberchecklist/internal/scoring"
)

var errNoAnswers = errors.New("answers file contains no answers")

var valueAliases = map[string]report.Value{
	"y":        report.ValueYes,
	"yes":      report.ValueYes,
	"true":     report.ValueYes,
	"n":        report.ValueNo,
	"no":       report.ValueNo,
	"false":    report.ValueNo,
	"u":        report.ValueUnknown,
	"unknown":  report.ValueUnknown,
	"unsure":   report.ValueUnknown,
	"not sure": report.ValueUnknown,
	"?":        report.ValueUnknown,
}

// NormalizeValue maps the spellings accepted in answers files onto an
// answer value.
func NormalizeValue(s string) (report.Value, bool) {
	v, ok := valueAliases[strings.ToLower(strings.TrimSpace(s))]
	return v, ok
}

// ParseAnswers reads an answers document (YAML or JSON) into form state,
// keeping document order. Accepted shapes:
//
//	q1: yes                      # mapping of question id to answer
//	answers: {q1: yes}           # the same, nested under "answers"
//	answers: [{name: q1, value: yes}]
//	{"results": {"answers": [...]}}  # a previous JSON export
//
// Values are normalized with NormalizeValue; unrecognized values are kept
// verbatim so that scoring drops them.
func ParseAnswers(data []byte) (scoring.Form, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errNoAnswers
	}

	node := answersNode(doc.Content[0])
	var form scoring.Form
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("answer for %q must be a scalar (line %d)", k.Value, v.Line)
			}
			form = append(form, field(k.Value, v.Value))
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("answer entry must be a mapping (line %d)", item.Line)
			}
			name := lookupScalar(item, "name", "id")
			if name == "" {
				return nil, fmt.Errorf("answer entry without a name (line %d)", item.Line)
			}
			form = append(form, field(name, lookupScalar(item, "value", "answer")))
		}
	default:
		return nil, fmt.Errorf("unsupported answers document (line %d)", node.Line)
	}
	if len(form) == 0 {
		return nil, errNoAnswers
	}
	return form, nil
}

func field(name, value string) scoring.Field {
	name = strings.TrimSpace(name)
	if v, ok := NormalizeValue(value); ok {
		return scoring.Field{Name: name, Value: string(v)}
	}
	return scoring.Field{Name: name, Value: value}
}

// answersNode descends through "results" and "answers" wrappers.
func answersNode(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.MappingNode {
		next := mappingValue(n, "results")
		if next == nil {
			next = mappingValue(n, "answers")
		}
		if next == nil {
			return n
		}
		n = next
	}
	return n
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func lookupScalar(n *yaml.Node, keys ...string) string {
	for _, key := range keys {
		if v := mappingValue(n, key); v != nil && v.Kind == yaml.ScalarNode {
			return v.Value
		}
	}
	return ""
}
