package marker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Path returns the marker path for a forest root.
func Path(root string) string {
	return filepath.Join(root, Filename)
}

// Exists reports whether dir holds a root marker.
func Exists(dir string) bool {
	info, err := os.Stat(Path(dir))
	return err == nil && info.Mode().IsRegular()
}

// Load reads and validates the marker in root.
func Load(root string) (*File, error) {
	path := Path(root)
	data, err := os.ReadFile(path) //nolint:gosec // path is the forest marker
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("problem opening %s", path)).
			WithCause(err)
	}
	return Parse(path, data)
}

// Parse parses marker content. path is only used in error messages.
func Parse(path string, data []byte) (*File, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("problem parsing %s", path)).
			WithCause(err)
	}
	if _, ok := raw["configurationDirectory"]; !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("problem parsing %s: missing field 'configurationDirectory'", path))
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("problem parsing %s", path)).
			WithCause(err)
	}
	return &f, nil
}

// Save writes the marker into root, two-space indented.
func Save(root string, f *File) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("marshaling root marker: %w", err)
	}
	if err := os.WriteFile(Path(root), buf.Bytes(), 0o644); err != nil { //nolint:gosec // marker needs to be readable
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("writing %s", Path(root))).
			WithCause(err)
	}
	return nil
}
