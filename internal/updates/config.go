// Package updates defines the desired OTA update configuration and the
// platform-specific keys it maps onto.
package updates

import "github.com/otawire/otawire/internal/errors"

// Android meta-data names written under the manifest's <application> element.
const (
	AndroidSDKVersionKey     = "expo.modules.updates.EXPO_SDK_VERSION"
	AndroidRuntimeVersionKey = "expo.modules.updates.EXPO_RUNTIME_VERSION"
	AndroidUpdateURLKey      = "expo.modules.updates.EXPO_UPDATE_URL"
)

// Keys written to the iOS Expo.plist.
const (
	PlistSDKVersionKey     = "EXUpdatesSDKVersion"
	PlistRuntimeVersionKey = "EXUpdatesRuntimeVersion"
	PlistUpdateURLKey      = "EXUpdatesURL"
)

// Sentinel errors for config validation.
var (
	ErrMissingUpdateURL = errors.New("update URL is required")
	ErrMissingVersion   = errors.New("either an SDK version or a runtime version is required")
)

// Config is the desired end-state for a project's update wiring.
//
// Exactly one of SDKVersion/RuntimeVersion is active at a time: when
// RuntimeVersion is set it wins, and the editors remove any previously
// written SDK-version entry (and vice versa). Editors rely on this to keep
// the two keys mutually exclusive on disk.
type Config struct {
	// SDKVersion identifies the Expo SDK the binary was built against.
	SDKVersion string

	// RuntimeVersion, when non-empty, supersedes SDKVersion as the
	// compatibility selector for update bundles.
	RuntimeVersion string

	// UpdateURL is where the app checks for published updates.
	UpdateURL string
}

// Validate checks that the config can be applied.
func (c Config) Validate() error {
	if c.UpdateURL == "" {
		return ErrMissingUpdateURL
	}
	if c.SDKVersion == "" && c.RuntimeVersion == "" {
		return ErrMissingVersion
	}
	return nil
}

// UsesRuntimeVersion reports whether the runtime-version selector is active.
func (c Config) UsesRuntimeVersion() bool {
	return c.RuntimeVersion != ""
}

// VersionValue returns the active selector value.
func (c Config) VersionValue() string {
	if c.UsesRuntimeVersion() {
		return c.RuntimeVersion
	}
	return c.SDKVersion
}

// AndroidVersionKey returns the manifest meta-data name for the active
// selector; AndroidStaleVersionKey returns the name that must be removed.
func (c Config) AndroidVersionKey() string {
	if c.UsesRuntimeVersion() {
		return AndroidRuntimeVersionKey
	}
	return AndroidSDKVersionKey
}

// AndroidStaleVersionKey returns the inactive selector's meta-data name.
func (c Config) AndroidStaleVersionKey() string {
	if c.UsesRuntimeVersion() {
		return AndroidSDKVersionKey
	}
	return AndroidRuntimeVersionKey
}

// PlistVersionKey returns the Expo.plist key for the active selector.
func (c Config) PlistVersionKey() string {
	if c.UsesRuntimeVersion() {
		return PlistRuntimeVersionKey
	}
	return PlistSDKVersionKey
}
