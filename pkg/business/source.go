package business

import (
	"fmt"
	"os"

	"github.com/slamdev/importtoarray/pkg/integration"
	"gopkg.in/yaml.v3"
)

const maxMergeDepth = 32

// LoadNamespace decodes a YAML or JSON document whose root is a mapping.
// Names keep their document order. A root merge key (<<: *base) contributes the merged names at its
// position unless the mapping defines them itself; earlier merge sources win over later ones.
// Values are decoded as-is, except that nested mapping keys are rendered as strings.
func LoadNamespace(content []byte) (*Namespace[string, any], error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse namespace; %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, integration.NewValidationError("empty namespace document")
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, integration.NewValidationErrorf("namespace document root must be a mapping, got %s", describeNode(root))
	}

	ns := NewNamespace[string, any](len(root.Content) / 2)
	if err := loadMapping(ns, root, false, func(string) bool { return false }, 0); err != nil {
		return nil, err
	}
	return ns, nil
}

func LoadNamespaceFile(path string) (*Namespace[string, any], error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read namespace file; %w", err)
	}
	ns, err := LoadNamespace(content)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s; %w", path, err)
	}
	return ns, nil
}

// loadMapping copies the pairs of node into ns. Merged pairs never replace a name that is shadowed
// by an enclosing mapping or that an earlier merge source already defined.
func loadMapping(ns *Namespace[string, any], node *yaml.Node, merged bool, shadowed func(string) bool, depth int) error {
	if depth > maxMergeDepth {
		return integration.NewValidationErrorf("merge keys nested deeper than %d at line %d", maxMergeDepth, node.Line)
	}

	explicit := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if !isMergeKey(node.Content[i]) {
			explicit[node.Content[i].Value] = struct{}{}
		}
	}
	hidden := func(name string) bool {
		_, ok := explicit[name]
		return ok || shadowed(name)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		if isMergeKey(keyNode) {
			sources, err := mergeSources(valueNode)
			if err != nil {
				return err
			}
			for _, src := range sources {
				if err := loadMapping(ns, src, true, hidden, depth+1); err != nil {
					return err
				}
			}
			continue
		}

		if keyNode.Kind != yaml.ScalarNode {
			return integration.NewValidationErrorf("namespace name at line %d must be a scalar", keyNode.Line)
		}
		if merged && (shadowed(keyNode.Value) || ns.Has(keyNode.Value)) {
			continue
		}
		var value any
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode export %q; %w", keyNode.Value, err)
		}
		ns.Set(keyNode.Value, stringKeys(value))
	}
	return nil
}

func isMergeKey(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!merge"
}

func mergeSources(node *yaml.Node) ([]*yaml.Node, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{node}, nil
	case yaml.SequenceNode:
		sources := make([]*yaml.Node, 0, len(node.Content))
		for _, item := range node.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.MappingNode {
				return nil, integration.NewValidationErrorf("merge source at line %d must be a mapping, got %s", item.Line, describeNode(item))
			}
			sources = append(sources, item)
		}
		return sources, nil
	default:
		return nil, integration.NewValidationErrorf("merge value at line %d must be a mapping or a sequence of mappings, got %s", node.Line, describeNode(node))
	}
}

// stringKeys rewrites the map[any]any that yaml produces for non-string keys, so values stay JSON encodable.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = stringKeys(val)
		}
		return m
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func describeNode(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "node kind " + fmt.Sprint(node.Kind)
	}
}
