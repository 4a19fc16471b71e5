package fileutil

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/otawire/otawire/internal/errors"
)

// AtomicWriteYAMLWithPerm writes v as YAML to path atomically with specified permissions.
// Combines yaml.Marshal with AtomicWriteFile for safe config file writes.
// Returns an error if marshaling fails (including panics from unmarshalable types).
func AtomicWriteYAMLWithPerm(path string, v any, perm os.FileMode) (err error) {
	// yaml.Marshal panics on unmarshalable types; recover and return error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}

	// yaml.Marshal already includes trailing newline, but ensure it
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	return AtomicWriteFile(path, data, perm)
}

// AtomicWriteYAML writes v as YAML to path atomically.
func AtomicWriteYAML(path string, v any) (err error) {
	return AtomicWriteYAMLWithPerm(path, v, 0644)
}
