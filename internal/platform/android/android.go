// Package android edits the Android build descriptor and manifest so the
// native build produces update manifests and the app knows where to fetch
// updates from. Both edits are idempotent: re-running against an already
// configured project changes nothing.
package android

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/internal/paths"
	"github.com/otawire/otawire/internal/updates"
	"github.com/otawire/otawire/pkg/fileutil"
)

// Platform is the Android editor.
type Platform struct {
	log *slog.Logger
}

// New creates the Android platform editor.
func New(log *slog.Logger) *Platform {
	return &Platform{log: log}
}

// Name returns the platform identifier.
func (p *Platform) Name() string {
	return paths.PlatformAndroid
}

// DisplayName returns a human-readable platform name.
func (p *Platform) DisplayName() string {
	return "Android"
}

// Detect reports whether the project tree contains an Android layout.
func (p *Platform) Detect(root string) bool {
	info, err := os.Stat(filepath.Join(root, paths.PlatformDir(paths.PlatformAndroid)))
	return err == nil && info.IsDir()
}

// Configure applies cfg to the project's build.gradle and AndroidManifest.xml.
// It returns the project-relative paths of files it changed; an already
// configured project yields an empty slice.
func (p *Platform) Configure(root string, cfg updates.Config) ([]string, error) {
	var changedPaths []string

	changed, err := p.configureGradle(root)
	if err != nil {
		return nil, err
	}
	if changed {
		changedPaths = append(changedPaths, paths.AndroidBuildGradle)
	}

	changed, err = p.configureManifest(root, cfg)
	if err != nil {
		return nil, err
	}
	if changed {
		changedPaths = append(changedPaths, paths.AndroidManifest)
	}

	return changedPaths, nil
}

func (p *Platform) configureGradle(root string) (bool, error) {
	path := filepath.Join(root, paths.AndroidBuildGradle)

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, errors.Wrapf(errors.ErrFileNotFound, "%s", paths.AndroidBuildGradle)
		}
		return false, err
	}

	result, changed := EnsureApplyFrom(string(data))
	if !changed {
		p.log.Debug("build.gradle already configured", "path", paths.AndroidBuildGradle)
		return false, nil
	}

	if err := fileutil.AtomicWriteFile(path, []byte(result), 0644); err != nil {
		return false, err
	}
	p.log.Info("added create-manifest-android.gradle to build.gradle")
	return true, nil
}

func (p *Platform) configureManifest(root string, cfg updates.Config) (bool, error) {
	path := filepath.Join(root, paths.AndroidManifest)

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, errors.Wrapf(errors.ErrFileNotFound, "%s", paths.AndroidManifest)
		}
		return false, err
	}

	man, err := ParseManifest(data)
	if err != nil {
		return false, err
	}

	changed, err := man.ApplyUpdatesConfig(cfg)
	if err != nil {
		return false, err
	}
	if !changed {
		p.log.Debug("manifest already configured", "path", paths.AndroidManifest)
		return false, nil
	}

	if err := fileutil.AtomicWriteFile(path, man.Serialize(), 0644); err != nil {
		return false, err
	}
	p.log.Info("configured updates meta-data in AndroidManifest.xml")
	return true, nil
}
