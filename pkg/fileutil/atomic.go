// Package fileutil provides atomic file writes for generated artifacts such
// as registry snapshots and the ntc configuration file.
package fileutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ntc/internal/errors"
)

// DefaultPerm is the mode of files written without an explicit permission.
const DefaultPerm os.FileMode = 0o644

// AtomicWriteFile writes data to path through a temp file in the same
// directory followed by a rename, so readers never observe a partial file.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ntc-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	defer func() {
		// Still present only when the rename did not happen.
		if _, statErr := os.Stat(tmpName); statErr == nil {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	return nil
}

// AtomicWriteWith renders the file with encode and writes it atomically.
// Nothing touches path when encode fails.
func AtomicWriteWith(path string, perm os.FileMode, encode func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return err
	}
	return AtomicWriteFile(path, withTrailingNewline(buf.Bytes()), perm)
}

// AtomicWriteJSON writes v as 2-space indented JSON.
func AtomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	return AtomicWriteFile(path, withTrailingNewline(data), DefaultPerm)
}

// AtomicWriteYAML writes v as YAML.
func AtomicWriteYAML(path string, v any) (err error) {
	// yaml.Marshal panics on unmarshalable types.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}
	return AtomicWriteFile(path, withTrailingNewline(data), DefaultPerm)
}

// AtomicWriteTOML writes v as TOML.
func AtomicWriteTOML(path string, v any) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling TOML")
	}
	return AtomicWriteFile(path, withTrailingNewline(data), DefaultPerm)
}

func withTrailingNewline(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data
}
