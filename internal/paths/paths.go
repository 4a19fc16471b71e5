package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Platform identifiers for the supported native project layouts.
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

// Fixed relative paths inside a project tree. The Android layout is fully
// conventional, so these are hardcoded rather than discovered.
const (
	// AndroidBuildGradle is the app-level Gradle build descriptor.
	AndroidBuildGradle = "android/app/build.gradle"

	// AndroidManifest is the main Android manifest.
	AndroidManifest = "android/app/src/main/AndroidManifest.xml"

	// IOSProjectGlob matches Xcode project descriptors one level under ios/.
	IOSProjectGlob = "ios/*.xcodeproj/project.pbxproj"
)

// platformDirs maps platform names to the project subdirectory whose
// presence indicates the platform is part of this project.
var platformDirs = map[string]string{
	PlatformIOS:     "ios",
	PlatformAndroid: "android",
}

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// Platforms returns all known platform names in deterministic order.
func Platforms() []string {
	return []string{PlatformIOS, PlatformAndroid}
}

// ValidPlatform returns true if name is a known platform identifier.
func ValidPlatform(name string) bool {
	_, ok := platformDirs[name]
	return ok
}

// PlatformDir returns the project subdirectory for the given platform,
// or "" if the platform name is unknown.
func PlatformDir(name string) string {
	return platformDirs[name]
}

// ExpoPlistPath returns the path of the companion property list for the
// given project name, relative to the project root:
// ios/<ProjectName>/Supporting/Expo.plist.
func ExpoPlistPath(root, projectName string) string {
	return filepath.Join(root, "ios", projectName, "Supporting", "Expo.plist")
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
func ConfigHome() string {
	return xdg.ConfigHome
}
