// Package project reads the JavaScript-side project descriptors (package.json
// and app.json) that the configuration engine takes its inputs from. These
// files are read-only collaborators: the engine never mutates them.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/pkg/fileutil"
)

// UpdatesPackage is the npm package whose presence gates configuration.
// A project without it has nothing to wire up.
const UpdatesPackage = "expo-updates"

// ErrNoSlug indicates app.json has no expo.slug field, so no update URL
// can be derived.
var ErrNoSlug = errors.New("app.json has no expo.slug")

// ErrNoAccount indicates no account name could be resolved from app.json
// or configuration.
var ErrNoAccount = errors.New("no account name configured")

// PackageJSON is the subset of package.json the engine cares about.
type PackageJSON struct {
	Name         string            `json:"name"`
	Dependencies map[string]string `json:"dependencies"`
}

// AppConfig is the subset of the expo object in app.json.
type AppConfig struct {
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Owner          string `json:"owner"`
	SDKVersion     string `json:"sdkVersion"`
	RuntimeVersion string `json:"runtimeVersion"`
}

// ReadPackageJSON parses <root>/package.json.
func ReadPackageJSON(root string) (*PackageJSON, error) {
	path := filepath.Join(root, "package.json")

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrFileNotFound, "%s", path)
		}
		return nil, err
	}

	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, errors.Wrapf(errors.ErrParse, "package.json: %v", err)
	}
	return &pkg, nil
}

// HasUpdatesPackage reports whether expo-updates is a dependency.
func (p *PackageJSON) HasUpdatesPackage() bool {
	_, ok := p.Dependencies[UpdatesPackage]
	return ok
}

// ReadAppConfig parses the expo object of <root>/app.json.
func ReadAppConfig(root string) (*AppConfig, error) {
	path := filepath.Join(root, "app.json")

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrFileNotFound, "%s", path)
		}
		return nil, err
	}

	var wrapper struct {
		Expo AppConfig `json:"expo"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, errors.Wrapf(errors.ErrParse, "app.json: %v", err)
	}
	return &wrapper.Expo, nil
}

// ResolveAccount picks the account slug for the update URL: the app.json
// owner field wins, then the explicit override (flag or config file).
func (a *AppConfig) ResolveAccount(override string) (string, error) {
	if a.Owner != "" {
		return a.Owner, nil
	}
	if override != "" {
		return override, nil
	}
	return "", ErrNoAccount
}

// UpdateURL builds the canonical update URL for an account and slug.
func UpdateURL(host, account, slug string) string {
	return fmt.Sprintf("https://%s/@%s/%s", host, account, slug)
}
