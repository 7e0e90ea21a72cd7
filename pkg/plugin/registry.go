// Package plugin provides a registry for collaborator providers (NLU,
// ASR, TTS, responder) so deployments can swap hosted services without
// changes to the dialogue core. Provider packages self-register from
// their init() functions.
package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Provider kinds understood by the registry.
const (
	KindNLU       = "nlu"
	KindASR       = "asr"
	KindTTS       = "tts"
	KindResponder = "responder"
)

// Factory creates a provider instance from configuration. The returned
// value is cast by the caller to the port for its kind (nlu.NLU, asr.ASR,
// tts.TTS or responder.Responder).
type Factory func(cfg map[string]any) (any, error)

// Plugin is a registered provider with its metadata.
type Plugin struct {
	Kind        string
	Name        string
	Factory     Factory
	Description string
}

// Registry manages provider registration and lookup.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]map[string]*Plugin // [kind][name]
}

var globalRegistry = &Registry{plugins: make(map[string]map[string]*Plugin)}

// Register adds a provider to the global registry. Typically called from
// init() in provider packages. Panics on duplicate kind/name.
func Register(kind, name string, factory Factory) {
	globalRegistry.Register(kind, name, factory)
}

// Get retrieves a provider factory from the global registry.
func Get(kind, name string) (Factory, bool) {
	return globalRegistry.Get(kind, name)
}

// List returns registered providers of a kind, sorted by name. An empty
// kind lists everything.
func List(kind string) []*Plugin {
	return globalRegistry.List(kind)
}

// Register adds a provider to this registry instance.
func (r *Registry) Register(kind, name string, factory Factory) {
	if kind == "" {
		panic("plugin kind cannot be empty")
	}
	if name == "" {
		panic("plugin name cannot be empty")
	}
	if factory == nil {
		panic("plugin factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[kind][name]; exists {
		panic(fmt.Sprintf("plugin %s/%s already registered", kind, name))
	}
	if r.plugins[kind] == nil {
		r.plugins[kind] = make(map[string]*Plugin)
	}
	r.plugins[kind][name] = &Plugin{Kind: kind, Name: name, Factory: factory}
}

// Get retrieves a provider factory from this registry instance.
func (r *Registry) Get(kind, name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[kind][name]
	if !ok {
		return nil, false
	}
	return p.Factory, true
}

// List returns registered providers of a kind, sorted by kind then name.
func (r *Registry) List(kind string) []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Plugin
	for k, byName := range r.plugins {
		if kind != "" && k != kind {
			continue
		}
		for _, p := range byName {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out
}
