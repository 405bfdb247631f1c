package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Path returns the manifest path inside configDir for a named manifest.
func Path(configDir, name string) string {
	return filepath.Join(configDir, Filename(name))
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the forest manifest
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("problem opening %s", path)).
			WithCause(err)
	}
	return Parse(path, data)
}

// Parse parses and validates manifest content. path is only used in error messages.
func Parse(path string, data []byte) (*Manifest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, invalid(path, "", err)
	}
	if _, ok := raw["dependencies"]; !ok {
		return nil, invalid(path, "dependencies", nil)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, invalid(path, "", err)
	}
	if err := validate(path, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Save validates and writes a manifest, two-space indented with a trailing newline.
func Save(path string, m *Manifest) error {
	if err := validate(path, m); err != nil {
		return err
	}
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // manifest is checked in
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("writing %s", path)).
			WithCause(err)
	}
	return nil
}

// Marshal renders m exactly as Save writes it.
func Marshal(m *Manifest) ([]byte, error) {
	if m.Dependencies == nil {
		m.Dependencies = Dependencies{}
	}
	compact, err := marshalNoEscape(m)
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("indenting manifest: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func validate(path string, m *Manifest) error {
	for _, e := range m.Dependencies {
		if e.Path == "" {
			return invalid(path, "dependencies", fmt.Errorf("empty repository path"))
		}
		if filepath.IsAbs(e.Path) {
			return invalid(path, fmt.Sprintf("dependencies.%s", e.Path), fmt.Errorf("absolute path is not allowed"))
		}
		if e.Origin == "" {
			return invalid(path, fmt.Sprintf("dependencies.%s.origin", e.Path), nil)
		}
		if e.PinnedRevision != "" && e.LockedBranch != "" {
			return invalid(path, fmt.Sprintf("dependencies.%s", e.Path),
				fmt.Errorf("pinnedRevision and lockedBranch are mutually exclusive"))
		}
	}
	return nil
}

func invalid(path, field string, cause error) error {
	msg := fmt.Sprintf("problem parsing %s", path)
	if field != "" && cause == nil {
		msg = fmt.Sprintf("problem parsing %s: missing field '%s'", path, field)
	} else if field != "" {
		msg = fmt.Sprintf("problem parsing %s: field '%s': %v", path, field, cause)
	} else if cause != nil {
		msg = fmt.Sprintf("problem parsing %s: %v", path, cause)
	}
	b := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
	if cause != nil {
		b = b.WithCause(cause)
	}
	return b
}
