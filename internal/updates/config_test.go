package updates

import (
	"testing"

	"github.com/otawire/otawire/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "sdk version only",
			cfg:  Config{SDKVersion: "40.0.0", UpdateURL: "https://exp.host/@u/s"},
		},
		{
			name: "runtime version only",
			cfg:  Config{RuntimeVersion: "1.0.0", UpdateURL: "https://exp.host/@u/s"},
		},
		{
			name:    "missing url",
			cfg:     Config{SDKVersion: "40.0.0"},
			wantErr: ErrMissingUpdateURL,
		},
		{
			name:    "missing version",
			cfg:     Config{UpdateURL: "https://exp.host/@u/s"},
			wantErr: ErrMissingVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSelectorKeys(t *testing.T) {
	sdk := Config{SDKVersion: "40.0.0", UpdateURL: "u"}
	runtime := Config{SDKVersion: "40.0.0", RuntimeVersion: "1.0.0", UpdateURL: "u"}

	if sdk.UsesRuntimeVersion() {
		t.Error("sdk config should not use runtime version")
	}
	if !runtime.UsesRuntimeVersion() {
		t.Error("runtime version should supersede sdk version when both set")
	}

	if got := sdk.AndroidVersionKey(); got != AndroidSDKVersionKey {
		t.Errorf("AndroidVersionKey() = %q", got)
	}
	if got := sdk.AndroidStaleVersionKey(); got != AndroidRuntimeVersionKey {
		t.Errorf("AndroidStaleVersionKey() = %q", got)
	}
	if got := runtime.AndroidVersionKey(); got != AndroidRuntimeVersionKey {
		t.Errorf("AndroidVersionKey() = %q", got)
	}
	if got := runtime.PlistVersionKey(); got != PlistRuntimeVersionKey {
		t.Errorf("PlistVersionKey() = %q", got)
	}
	if got := runtime.VersionValue(); got != "1.0.0" {
		t.Errorf("VersionValue() = %q", got)
	}
}
