package tree

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlElement is the YAML shape of an element.
type yamlElement struct {
	Name     string        `yaml:"name"`
	Kind     string        `yaml:"kind"`
	Children []yamlElement `yaml:"children,omitempty"`
}

// Parse builds a tree from YAML. Elements without a kind default to a panel
// when they declare children and to a label otherwise.
func Parse(data []byte) (*Element, error) {
	var root yamlElement
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse tree: %w", err)
	}

	el := build(root)
	if err := el.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tree: %w", err)
	}
	return el, nil
}

// Load reads and parses a YAML tree file.
func Load(path string) (*Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}
	return Parse(data)
}

// Marshal renders a tree back to YAML.
func Marshal(e *Element) ([]byte, error) {
	return yaml.Marshal(toYAML(e))
}

func build(s yamlElement) *Element {
	kind := s.Kind
	if kind == "" {
		kind = KindLabel
		if len(s.Children) > 0 {
			kind = KindPanel
		}
	}
	e := NewElement(kind, s.Name)
	for _, c := range s.Children {
		e.children = append(e.children, build(c))
	}
	return e
}

func toYAML(e *Element) yamlElement {
	s := yamlElement{Name: e.Name(), Kind: e.Kind}
	for _, c := range e.Elements() {
		s.Children = append(s.Children, toYAML(c))
	}
	return s
}
