package corpora

import (
	"fmt"
	"sort"
	"sync"
)

// BuilderFactory constructs a Builder for one configuration of a dataset.
// The config argument is empty for single-config datasets. Factories should
// return an error wrapping ErrUnknownConfig for configurations they do not
// recognize.
type BuilderFactory func(config string) (Builder, error)

// registry holds the known dataset builders. Datasets register themselves
// in init(), so importing a dataset package is enough to make it available:
//
//	import _ "github.com/jdziat/corpora-go/datasets/iwslt2017"
var registry = struct {
	mu        sync.RWMutex
	factories map[string]BuilderFactory
	configs   map[string][]string
}{
	factories: make(map[string]BuilderFactory),
	configs:   make(map[string][]string),
}

// Register makes a dataset available under the given name. It panics if the
// name is empty, the factory is nil, or the name is already registered;
// registration happens in init() where a panic points straight at the
// conflicting package.
func Register(name string, factory BuilderFactory) {
	if name == "" {
		panic("corpora: Register called with empty dataset name")
	}
	if factory == nil {
		panic("corpora: Register called with nil factory for " + name)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, dup := registry.factories[name]; dup {
		panic("corpora: Register called twice for dataset " + name)
	}
	registry.factories[name] = factory
}

// RegisterConfigs declares the named configurations of a dataset, in the
// order tools should process them. Datasets without configurations skip
// this call. Like Register it panics on empty or duplicate names, since it
// runs from init().
func RegisterConfigs(name string, configs ...string) {
	if name == "" {
		panic("corpora: RegisterConfigs called with empty dataset name")
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, dup := registry.configs[name]; dup {
		panic("corpora: RegisterConfigs called twice for dataset " + name)
	}
	registry.configs[name] = append([]string(nil), configs...)
}

// Configs returns the declared configurations of a dataset, or nil for
// single-config and unknown datasets.
func Configs(name string) []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	return append([]string(nil), registry.configs[name]...)
}

// Builders returns the names of all registered datasets, sorted.
func Builders() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open returns a Builder for the given dataset reference, either "name" for
// single-config datasets or "name/config" for a specific configuration.
// Unknown dataset names return an error wrapping ErrUnknownDataset that
// lists the registered datasets.
//
// Example:
//
//	builder, err := corpora.Open("iwslt2017/iwslt2017_de-en")
func Open(ref string) (Builder, error) {
	name, config := ParseRef(ref)

	registry.mu.RLock()
	factory, ok := registry.factories[name]
	registry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownDataset, name, Builders())
	}
	return factory(config)
}
