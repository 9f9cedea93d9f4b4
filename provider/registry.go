package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a new Invoker from the given configuration.
// Each transport registers its own factory function.
type Factory func(cfg Config) (Invoker, error)

// registry stores registered transport factories.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a transport factory to the registry.
// Transports should call this in their init() function.
// Panics if a transport with the same name is already registered.
//
// Example:
//
//	func init() {
//	    provider.Register("bedrock", func(cfg provider.Config) (provider.Invoker, error) {
//	        return New(cfg)
//	    })
//	}
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("provider %q already registered", name))
	}
	registry[name] = factory
}

// New creates a new Invoker using the named transport.
// Returns ErrUnknownProvider if the transport is not registered.
func New(name string, cfg Config) (Invoker, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return factory(cfg)
}

// MustNew creates a new Invoker, panicking on error.
// Use only when transport availability is guaranteed (e.g., in tests).
func MustNew(name string, cfg Config) Invoker {
	invoker, err := New(name, cfg)
	if err != nil {
		panic(fmt.Sprintf("provider.MustNew(%q): %v", name, err))
	}
	return invoker
}

// Available returns the names of all registered transports.
// The list is sorted alphabetically for consistent ordering.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a transport is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, ok := registry[name]
	return ok
}

// Unregister removes a transport from the registry.
// This is primarily useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	delete(registry, name)
}
