package android

import (
	"fmt"
	"strings"
)

// createManifestGradlePath is the script the app-level build.gradle must
// apply so update manifests are generated at build time. The path is
// relative to android/app/.
const createManifestGradlePath = "../../node_modules/expo-updates/scripts/create-manifest-android.gradle"

// applyFromMarker precedes the inclusion line when we append it, so a
// human reading the descriptor knows where the line came from.
const applyFromMarker = "// Integration with Expo updates"

// applyFromLine returns the inclusion directive in the given quote style.
// Gradle accepts both single- and double-quoted strings, so the membership
// check below must tolerate either spelling.
func applyFromLine(quote byte) string {
	return fmt.Sprintf(`apply from: %c%s%c`, quote, createManifestGradlePath, quote)
}

// EnsureApplyFrom returns text with the create-manifest inclusion line
// present exactly once. If the line is already there, in either quote
// style, text is returned unchanged and changed is false. Otherwise the
// line is appended after a blank separator and a marker comment.
func EnsureApplyFrom(text string) (result string, changed bool) {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == applyFromLine('"') || trimmed == applyFromLine('\'') {
			return text, false
		}
	}

	var b strings.Builder
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(applyFromMarker)
	b.WriteByte('\n')
	b.WriteString(applyFromLine('"'))
	b.WriteByte('\n')

	return b.String(), true
}
