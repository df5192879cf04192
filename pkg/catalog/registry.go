package catalog

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Factory creates a catalog from the scheme-specific part of a catalog URL.
type Factory func(ref string, logger *slog.Logger) (Catalog, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a catalog factory under a URL scheme.
// Called by backend implementations in their init() functions.
func Register(scheme string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[scheme] = factory
}

// Get retrieves a catalog factory by scheme.
func Get(scheme string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[scheme]
	return f, ok
}

// Schemes returns all registered schemes (sorted).
func Schemes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	schemes := make([]string, 0, len(registry))
	for s := range registry {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// Open creates a catalog from a URL of the form scheme://ref, where ref is a
// directory path or DSN understood by the backend. The logger may be nil.
func Open(url string, logger *slog.Logger) (Catalog, error) {
	scheme, ref, ok := strings.Cut(url, "://")
	if !ok {
		return nil, fmt.Errorf("catalog URL %q has no scheme", url)
	}

	factory, ok := Get(scheme)
	if !ok {
		return nil, &UnknownSchemeError{Scheme: scheme, Available: Schemes()}
	}
	return factory(ref, logger)
}

// UnknownSchemeError is returned when no backend is registered for a scheme.
type UnknownSchemeError struct {
	Scheme    string
	Available []string
}

func (e *UnknownSchemeError) Error() string {
	return fmt.Sprintf("unknown catalog scheme %q (available: %v)", e.Scheme, e.Available)
}
