// Package platform defines the contract native-project editors implement
// and a registry that resolves which editors apply to a project tree.
package platform

import (
	"log/slog"

	"github.com/otawire/otawire/internal/platform/android"
	"github.com/otawire/otawire/internal/platform/ios"
	"github.com/otawire/otawire/internal/updates"
)

// Platform is the contract each native platform editor (iOS, Android)
// implements.
//
// Implementations must not write anything when the project is already in
// the desired state: Configure called twice with the same config reports no
// changed files on the second run and leaves every file byte-identical.
type Platform interface {
	// Name returns the platform identifier (ios, android). The name must
	// match one of the constants in the paths package.
	Name() string

	// DisplayName returns the platform name as shown to users.
	DisplayName() string

	// Detect reports whether the project tree at root contains this
	// platform's native project layout.
	Detect(root string) bool

	// Configure brings the platform's build files to the desired update
	// configuration and returns the project-relative paths of every file
	// it changed.
	Configure(root string, cfg updates.Config) ([]string, error)
}

// DefaultRegistry returns a registry with both platform editors wired in.
// When interactive is true the iOS editor resolves ambiguous project
// layouts with a fuzzy-finder prompt instead of taking the first match.
func DefaultRegistry(log *slog.Logger, interactive bool) *Registry {
	iosPlatform := ios.New(log)
	if interactive {
		iosPlatform = iosPlatform.WithPicker(ios.FuzzyPicker)
	}

	r := NewRegistry()
	// Registration of the built-in editors cannot fail.
	_ = r.Register(iosPlatform)
	_ = r.Register(android.New(log))
	return r
}
