package android

import (
	"strings"
	"testing"
)

const baseGradle = `apply plugin: "com.android.application"

android {
    compileSdkVersion 30
}
`

func TestEnsureApplyFromAppends(t *testing.T) {
	result, changed := EnsureApplyFrom(baseGradle)

	if !changed {
		t.Fatal("expected changed = true for unconfigured descriptor")
	}
	if !strings.Contains(result, applyFromLine('"')) {
		t.Errorf("result missing inclusion line:\n%s", result)
	}
	if !strings.Contains(result, applyFromMarker) {
		t.Errorf("result missing marker comment:\n%s", result)
	}
	if !strings.HasPrefix(result, baseGradle) {
		t.Error("existing content was not preserved verbatim")
	}
}

func TestEnsureApplyFromIdempotent(t *testing.T) {
	once, _ := EnsureApplyFrom(baseGradle)
	twice, changed := EnsureApplyFrom(once)

	if changed {
		t.Error("expected changed = false on second application")
	}
	if twice != once {
		t.Error("second application altered the descriptor")
	}
	if strings.Count(twice, createManifestGradlePath) != 1 {
		t.Errorf("inclusion line duplicated:\n%s", twice)
	}
}

func TestEnsureApplyFromQuotingTolerance(t *testing.T) {
	tests := []struct {
		name  string
		quote byte
	}{
		{"double quotes", '"'},
		{"single quotes", '\''},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseGradle + "\n" + applyFromLine(tt.quote) + "\n"

			result, changed := EnsureApplyFrom(input)
			if changed {
				t.Error("expected already-configured descriptor to be recognized")
			}
			if result != input {
				t.Error("already-configured descriptor was modified")
			}
		})
	}
}

func TestEnsureApplyFromNoTrailingNewline(t *testing.T) {
	result, changed := EnsureApplyFrom("apply plugin: \"com.android.application\"")

	if !changed {
		t.Fatal("expected changed = true")
	}
	if strings.Contains(result, "\"\n"+applyFromMarker) {
		// A newline must separate the old tail from the blank line we add.
		t.Errorf("missing blank separator:\n%s", result)
	}
	if !strings.HasSuffix(result, applyFromLine('"')+"\n") {
		t.Errorf("result does not end with inclusion line:\n%s", result)
	}
}
