package ios

import (
	"bytes"
	"os"
	"path/filepath"

	"howett.net/plist"

	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/internal/paths"
	"github.com/otawire/otawire/internal/updates"
	"github.com/otawire/otawire/pkg/fileutil"
)

// expoPlist is the on-disk shape of Expo.plist. Only the active version
// selector is emitted, so a config switch from SDK to runtime versioning
// drops the stale key on the next write.
type expoPlist struct {
	SDKVersion     string `plist:"EXUpdatesSDKVersion,omitempty"`
	RuntimeVersion string `plist:"EXUpdatesRuntimeVersion,omitempty"`
	UpdateURL      string `plist:"EXUpdatesURL"`
}

// RenderExpoPlist produces the complete Expo.plist contents for cfg. The
// file is regenerated wholesale on every run; previous contents do not
// survive.
func RenderExpoPlist(cfg updates.Config) ([]byte, error) {
	p := expoPlist{UpdateURL: cfg.UpdateURL}
	if cfg.UsesRuntimeVersion() {
		p.RuntimeVersion = cfg.RuntimeVersion
	} else {
		p.SDKVersion = cfg.SDKVersion
	}

	data, err := plist.MarshalIndent(p, plist.XMLFormat, "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding Expo.plist")
	}
	return append(data, '\n'), nil
}

// WriteExpoPlist renders cfg to ios/<projectName>/Supporting/Expo.plist,
// creating the Supporting directory if needed. It returns the
// project-relative path and whether the file's bytes changed.
func WriteExpoPlist(root, projectName string, cfg updates.Config) (string, bool, error) {
	path := paths.ExpoPlistPath(root, projectName)
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false, errors.Wrap(err, "resolving Expo.plist path")
	}

	out, err := RenderExpoPlist(cfg)
	if err != nil {
		return rel, false, err
	}

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, out) {
		return rel, false, nil
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return rel, false, errors.Wrap(err, "creating Supporting directory")
	}
	if err := fileutil.AtomicWriteFile(path, out, 0644); err != nil {
		return rel, false, err
	}
	return rel, true, nil
}
