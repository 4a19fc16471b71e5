package platform

import (
	"sync"

	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/internal/paths"
)

// Sentinel errors for registry operations.
var (
	// ErrPlatformAlreadyRegistered is returned when attempting to register
	// a platform with a name that is already in use.
	ErrPlatformAlreadyRegistered = errors.New("platform already registered")

	// ErrInvalidPlatformName is returned for names outside paths.Platforms().
	ErrInvalidPlatformName = errors.New("invalid platform name")
)

// Registry manages platform editor registration and lookup.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	platforms map[string]Platform
}

// NewRegistry creates a new empty platform registry.
func NewRegistry() *Registry {
	return &Registry{
		platforms: make(map[string]Platform),
	}
}

// Register adds a platform editor to the registry.
// Returns an error if:
//   - The platform name is invalid (per paths.ValidPlatform)
//   - A platform with the same name is already registered
func (r *Registry) Register(p Platform) error {
	if !paths.ValidPlatform(p.Name()) {
		return errors.Wrapf(ErrInvalidPlatformName, "%q", p.Name())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.platforms[p.Name()]; exists {
		return errors.Wrapf(ErrPlatformAlreadyRegistered, "%q", p.Name())
	}

	r.platforms[p.Name()] = p
	return nil
}

// Get returns the registered platform with the given name.
func (r *Registry) Get(name string) (Platform, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.platforms[name]
	return p, exists
}

// All returns all registered platforms in the deterministic order defined
// by paths.Platforms().
func (r *Registry) All() []Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]Platform, 0, len(r.platforms))
	for _, name := range paths.Platforms() {
		if p, registered := r.platforms[name]; registered {
			results = append(results, p)
		}
	}
	return results
}

// Detected returns the registered platforms whose native layout is present
// in the project tree at root, in deterministic order.
func (r *Registry) Detected(root string) []Platform {
	all := r.All()
	results := make([]Platform, 0, len(all))
	for _, p := range all {
		if p.Detect(root) {
			results = append(results, p)
		}
	}
	return results
}

// Select resolves an explicit list of platform names against the registry,
// preserving the deterministic order of paths.Platforms() rather than the
// order given. An unknown or unregistered name is an error.
func (r *Registry) Select(names []string) ([]Platform, error) {
	requested := make(map[string]bool, len(names))
	for _, name := range names {
		if !paths.ValidPlatform(name) {
			return nil, errors.Wrapf(ErrInvalidPlatformName, "%q", name)
		}
		requested[name] = true
	}

	results := make([]Platform, 0, len(requested))
	for _, p := range r.All() {
		if requested[p.Name()] {
			results = append(results, p)
			delete(requested, p.Name())
		}
	}
	for name := range requested {
		return nil, errors.Wrapf(ErrInvalidPlatformName, "%q is not registered", name)
	}
	return results, nil
}
