package lang

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Registry holds the available bindings.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Binding
	aliases map[string]string // alias -> name
	byExt   map[string]string // extension -> name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Binding),
		aliases: make(map[string]string),
		byExt:   make(map[string]string),
	}
}

// Register adds a binding with its aliases and extensions. A binding with
// the same name is replaced.
func (r *Registry) Register(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(b.Name())
	r.byName[name] = b
	for _, alias := range b.Aliases() {
		r.aliases[strings.ToLower(alias)] = name
	}
	for _, ext := range b.Extensions() {
		r.byExt[strings.ToLower(ext)] = name
	}
}

// Get looks a binding up by name or alias, ignoring case.
func (r *Registry) Get(key string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key = strings.ToLower(key)
	if b, ok := r.byName[key]; ok {
		return b, true
	}
	if name, ok := r.aliases[key]; ok {
		b, ok := r.byName[name]
		return b, ok
	}
	return nil, false
}

// ForPath returns the binding claiming the extension of path.
func (r *Registry) ForPath(path string) (Binding, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byExt[ext]
	if !ok {
		return nil, false
	}
	b, ok := r.byName[name]
	return b, ok
}

// Bindings returns every binding sorted by name.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Binding, 0, len(r.byName))
	for _, b := range r.byName {
		result = append(result, b)
	}
	slices.SortFunc(result, func(a, b Binding) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

// Extensions returns every claimed extension in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		result = append(result, ext)
	}
	slices.Sort(result)
	return result
}

// DefaultRegistry holds the built-in bindings. They register themselves
// during init().
//
//nolint:gochecknoglobals // Global registry is intentional for binding registration
var DefaultRegistry = NewRegistry()

// Register adds b to DefaultRegistry.
func Register(b Binding) { DefaultRegistry.Register(b) }
