package ios

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/internal/paths"
)

// LocatedProject is a discovered Xcode project descriptor.
type LocatedProject struct {
	// PbxprojPath is the path to project.pbxproj.
	PbxprojPath string

	// Name is the project name, taken from the .xcodeproj directory.
	Name string
}

// Picker chooses among several candidate descriptor paths and returns the
// index of the chosen one. Candidates arrive sorted.
type Picker func(candidates []string) (int, error)

// FuzzyPicker selects a candidate interactively.
func FuzzyPicker(candidates []string) (int, error) {
	idx, err := fuzzyfinder.Find(candidates, func(i int) string {
		return candidates[i]
	})
	if err != nil {
		return 0, errors.Wrap(err, "selecting Xcode project")
	}
	return idx, nil
}

// Locate resolves the project's pbxproj by globbing ios/*.xcodeproj.
// Candidates are sorted for determinism; with several matches the picker
// decides, and without one the first match wins. Zero matches is
// ErrProjectNotFound.
func Locate(root string, pick Picker) (*LocatedProject, error) {
	matches, err := filepath.Glob(filepath.Join(root, paths.IOSProjectGlob))
	if err != nil {
		return nil, errors.Wrap(err, "globbing for Xcode project")
	}
	if len(matches) == 0 {
		return nil, errors.Wrapf(errors.ErrProjectNotFound, "no match for %s", paths.IOSProjectGlob)
	}
	sort.Strings(matches)

	idx := 0
	if len(matches) > 1 && pick != nil {
		idx, err = pick(matches)
		if err != nil {
			return nil, err
		}
	}

	path := matches[idx]
	name := strings.TrimSuffix(filepath.Base(filepath.Dir(path)), ".xcodeproj")
	return &LocatedProject{PbxprojPath: path, Name: name}, nil
}
