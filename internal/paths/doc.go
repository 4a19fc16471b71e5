// Package paths centralizes the fixed file layout conventions the
// configuration engine depends on: the hardcoded Android descriptor paths,
// the iOS project glob, and the companion plist location, plus directory
// helpers and the XDG config home for the tool's own configuration.
package paths
