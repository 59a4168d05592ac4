package provider

import (
	"sort"
	"sync"

	"github.com/smartcat-ai/kicat/internal/config"
)

// Factory builds a client from provider configuration.
type Factory func(cfg config.ProviderConfig) (Client, error)

var (
	registry     = make(map[string]Factory)
	registryLock sync.RWMutex
)

// Register adds a provider factory to the registry. Called from the
// adapters' init functions.
func Register(name string, factory Factory) {
	registryLock.Lock()
	defer registryLock.Unlock()
	registry[name] = factory
}

func lookup(name string) (Factory, bool) {
	registryLock.RLock()
	defer registryLock.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// List returns all registered provider names, sorted.
func List() []string {
	registryLock.RLock()
	defer registryLock.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists checks if a provider is registered.
func Exists(name string) bool {
	registryLock.RLock()
	defer registryLock.RUnlock()
	_, ok := registry[name]
	return ok
}
