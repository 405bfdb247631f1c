package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON writes the mapping as an object in slice order. Free
// dependencies are written as a bare origin string.
func (ds Dependencies) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range ds {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(e.Path)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		var val []byte
		if e.IsFree() && !e.ObjectForm {
			val, err = marshalNoEscape(e.Origin)
		} else {
			val, err = marshalNoEscape(e.Dependency)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object keeping key order.
func (ds *Dependencies) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dependencies must be an object")
	}
	out := Dependencies{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		path, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		d, object, err := parseDependency(raw)
		if err != nil {
			return fmt.Errorf("dependency %q: %w", path, err)
		}
		out.Set(path, d)
		out[out.index(path)].ObjectForm = object && d.IsFree()
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*ds = out
	return nil
}

// parseDependency also reports whether the declaration was an object.
func parseDependency(raw json.RawMessage) (Dependency, bool, error) {
	var origin string
	if err := json.Unmarshal(raw, &origin); err == nil {
		return Dependency{Origin: origin}, false, nil
	}
	var d Dependency
	if err := json.Unmarshal(raw, &d); err != nil {
		return Dependency{}, false, fmt.Errorf("must be an origin string or an object: %w", err)
	}
	return d, true, nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
