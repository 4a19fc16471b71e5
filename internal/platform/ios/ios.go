// Package ios wires the update mechanism into an Xcode project: the bundle
// build phase gains a manifest-generation step and a companion Expo.plist
// carries the runtime update configuration. Re-running against an already
// configured project changes nothing.
package ios

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/internal/paths"
	"github.com/otawire/otawire/internal/updates"
	"github.com/otawire/otawire/pkg/fileutil"
)

// Platform is the iOS editor.
type Platform struct {
	log  *slog.Logger
	pick Picker
}

// New creates the iOS platform editor.
func New(log *slog.Logger) *Platform {
	return &Platform{log: log}
}

// WithPicker sets the selector used when several .xcodeproj candidates
// exist. Without one the first candidate in sorted order is used.
func (p *Platform) WithPicker(pick Picker) *Platform {
	p.pick = pick
	return p
}

// Name returns the platform identifier.
func (p *Platform) Name() string {
	return paths.PlatformIOS
}

// DisplayName returns a human-readable platform name.
func (p *Platform) DisplayName() string {
	return "iOS"
}

// Detect reports whether the project tree contains an iOS layout.
func (p *Platform) Detect(root string) bool {
	info, err := os.Stat(filepath.Join(root, paths.PlatformDir(paths.PlatformIOS)))
	return err == nil && info.IsDir()
}

// Configure applies cfg to the Xcode project and its Expo.plist. It returns
// the project-relative paths of files it changed; an already configured
// project yields an empty slice. The build phase is edited before the plist
// is written, so a missing phase aborts the run with no files touched.
func (p *Platform) Configure(root string, cfg updates.Config) ([]string, error) {
	loc, err := Locate(root, p.pick)
	if err != nil {
		return nil, err
	}

	var changedPaths []string

	changed, err := p.configurePbxproj(loc)
	if err != nil {
		return nil, err
	}
	if changed {
		rel, err := filepath.Rel(root, loc.PbxprojPath)
		if err != nil {
			return nil, errors.Wrap(err, "resolving project path")
		}
		changedPaths = append(changedPaths, rel)
	}

	plistRel, plistChanged, err := WriteExpoPlist(root, loc.Name, cfg)
	if err != nil {
		return nil, err
	}
	if plistChanged {
		p.log.Info("wrote update configuration", "path", plistRel)
		changedPaths = append(changedPaths, plistRel)
	} else {
		p.log.Debug("Expo.plist already up to date", "path", plistRel)
	}

	return changedPaths, nil
}

func (p *Platform) configurePbxproj(loc *LocatedProject) (bool, error) {
	data, err := fileutil.ReadFileWithLimit(loc.PbxprojPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, errors.Wrapf(errors.ErrFileNotFound, "%s", loc.PbxprojPath)
		}
		return false, err
	}

	proj, err := ParseProject(data)
	if err != nil {
		return false, err
	}

	phase, err := proj.FindBuildPhase(BundlePhaseName)
	if err != nil {
		return false, err
	}

	if !proj.EnsureScriptInvocation(phase, CreateManifestScriptPath) {
		p.log.Debug("build phase already configured", "project", loc.Name)
		return false, nil
	}

	if err := fileutil.AtomicWriteFile(loc.PbxprojPath, proj.Serialize(), 0644); err != nil {
		return false, err
	}
	p.log.Info("added create-manifest-ios.sh to bundle build phase", "project", loc.Name)
	return true, nil
}
