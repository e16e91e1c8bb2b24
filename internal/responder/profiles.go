package responder

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ModelSpec identifies a model by its short name and provider slug, plus
// the parameter profile its family requires. Reasoning models omit
// sampling parameters; standard models carry a temperature.
type ModelSpec struct {
	Name      string
	Slug      string
	Reasoning bool
}

// Registry maps short model names to provider slugs and profiles.
type Registry struct {
	byName map[string]ModelSpec
}

// registryFile is the model mappings schema, split by model family.
type registryFile struct {
	Models struct {
		Thinking    map[string]string `yaml:"thinking"`
		NonThinking map[string]string `yaml:"non_thinking"`
	} `yaml:"models"`
}

// LoadRegistry reads a model mappings file.
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Registry{}, fmt.Errorf("read model mappings: %w", err)
	}
	return ParseRegistry(data)
}

// ParseRegistry parses model mappings YAML with strict fields.
func ParseRegistry(data []byte) (Registry, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var file registryFile
	if err := decoder.Decode(&file); err != nil {
		return Registry{}, fmt.Errorf("parse model mappings: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Registry{}, fmt.Errorf("parse model mappings: multiple documents are not supported")
		}
		return Registry{}, fmt.Errorf("parse model mappings: %w", err)
	}

	byName := map[string]ModelSpec{}
	for name, slug := range file.Models.Thinking {
		byName[name] = ModelSpec{Name: name, Slug: slug, Reasoning: true}
	}
	for name, slug := range file.Models.NonThinking {
		if _, exists := byName[name]; exists {
			return Registry{}, fmt.Errorf("model %q is listed in both families", name)
		}
		byName[name] = ModelSpec{Name: name, Slug: slug}
	}
	if len(byName) == 0 {
		return Registry{}, fmt.Errorf("model mappings define no models")
	}
	return Registry{byName: byName}, nil
}

// Lookup resolves a short model name to its spec.
func (r Registry) Lookup(name string) (ModelSpec, error) {
	spec, ok := r.byName[name]
	if !ok {
		return ModelSpec{}, fmt.Errorf("unknown model %q (available: %v)", name, r.Names())
	}
	return spec, nil
}

// Names returns the sorted short names in the registry.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
