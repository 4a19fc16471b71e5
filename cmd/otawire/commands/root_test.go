package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/otawire/otawire/internal/config"
	"github.com/otawire/otawire/internal/errors"
)

func TestValidatePlatformFlag(t *testing.T) {
	tests := []struct {
		name      string
		platforms []string
		wantErr   bool
	}{
		{"none", nil, false},
		{"ios", []string{"ios"}, false},
		{"android", []string{"android"}, false},
		{"both", []string{"ios", "android"}, false},
		{"unknown", []string{"windows"}, true},
		{"mixed", []string{"ios", "windows"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := platformFlag
			platformFlag = tt.platforms
			t.Cleanup(func() { platformFlag = orig })

			cmd := &cobra.Command{Use: "configure"}
			err := validatePlatformFlag(cmd, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePlatformFlag() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "invalid platform") {
				t.Errorf("error %q does not name the invalid platform", err)
			}
		})
	}
}

func TestValidatePlatformFlagSkipsHelp(t *testing.T) {
	orig := platformFlag
	platformFlag = []string{"windows"}
	t.Cleanup(func() { platformFlag = orig })

	cmd := &cobra.Command{Use: "help"}
	if err := validatePlatformFlag(cmd, nil); err != nil {
		t.Errorf("help command should skip validation, got %v", err)
	}
}

func TestInitConfigSurfacesValidationErrors(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	content := "version: 0\nupdate_host: \"\"\ndefault_platforms:\n  - windows\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	orig := configLoadErr
	t.Cleanup(func() { configLoadErr = orig })

	initConfig()

	if configLoadErr == nil {
		t.Fatal("expected validation errors for an invalid config file")
	}
	if !errors.Is(configLoadErr, config.ErrVersionTooLow) {
		t.Errorf("error %v does not report the version violation", configLoadErr)
	}
	if !errors.Is(configLoadErr, config.ErrEmptyUpdateHost) {
		t.Errorf("error %v does not report the empty update host", configLoadErr)
	}
	if !errors.Is(configLoadErr, config.ErrInvalidPlatform) {
		t.Errorf("error %v does not report the invalid platform", configLoadErr)
	}

	cmd := &cobra.Command{Use: "configure"}
	if err := validatePlatformFlag(cmd, nil); err == nil {
		t.Error("validatePlatformFlag should surface the config error")
	}
}

func TestSetupLoggingQuietAndVerboseConflict(t *testing.T) {
	origQuiet, origVerbosity := quiet, verbosity
	quiet, verbosity = true, 1
	t.Cleanup(func() { quiet, verbosity = origQuiet, origVerbosity })

	cmd := &cobra.Command{Use: "configure"}
	err := setupLogging(cmd)
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != errors.ExitUser {
		t.Fatalf("error = %v, want user-level ExitError", err)
	}
}
