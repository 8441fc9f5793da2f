package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	invopop "github.com/invopop/jsonschema"

	"github.com/routekit-dev/routekit/manifest"
)

// Registry holds JSON Schemas for the typed document model, keyed by
// section name. Schemas are generated from the Go types at
// registration time.
type Registry struct {
	mu        sync.RWMutex
	schemas   map[string]string
	reflector *invopop.Reflector
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{
		schemas:   make(map[string]string),
		reflector: new(invopop.Reflector),
	}
	r.reflector.ExpandedStruct = true
	return r
}

// Register generates and stores the schema for a document model type.
// Registering a section twice is an error.
func (r *Registry) Register(section string, model interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[section]; exists {
		return fmt.Errorf("section already registered: %s", section)
	}

	generated := r.reflector.Reflect(model)
	data, err := json.MarshalIndent(generated, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling schema for %s: %w", section, err)
	}
	r.schemas[section] = string(data)
	return nil
}

// Schema returns the stored schema for a section.
func (r *Registry) Schema(section string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[section]
	return s, ok
}

// Sections returns all registered section names, sorted.
func (r *Registry) Sections() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sections := make([]string, 0, len(r.schemas))
	for section := range r.schemas {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	return sections
}

// DefaultRegistry returns a registry pre-populated with the document
// model sections.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	sections := map[string]interface{}{
		"child":       manifest.Child{},
		"collection":  manifest.Collection{},
		"environment": manifest.Environment{},
		"disable":     manifest.Disable{},
	}
	for section, model := range sections {
		if err := r.Register(section, model); err != nil {
			return nil, err
		}
	}
	return r, nil
}
