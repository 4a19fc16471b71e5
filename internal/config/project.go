package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/otawire/otawire/internal/errors"
)

// ProjectFileName is the per-project override file read from the project root.
const ProjectFileName = "otawire.toml"

// ProjectOverrides are settings pinned by a project, taking precedence over
// the user-level configuration but not over explicit CLI flags.
type ProjectOverrides struct {
	UpdateURL      string `toml:"update_url"`
	Account        string `toml:"account"`
	NonInteractive bool   `toml:"non_interactive"`
}

// LoadProjectOverrides reads otawire.toml from the project root. A missing
// file is not an error; a malformed one is.
func LoadProjectOverrides(root string) (*ProjectOverrides, error) {
	data, err := os.ReadFile(filepath.Join(root, ProjectFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &ProjectOverrides{}, nil
		}
		return nil, errors.Wrapf(err, "reading %s", ProjectFileName)
	}

	var overrides ProjectOverrides
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return nil, errors.Wrapf(errors.ErrParse, "%s: %v", ProjectFileName, err)
	}
	return &overrides, nil
}
