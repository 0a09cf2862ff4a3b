package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Error reports a manifest that is missing, unreadable, or not valid JSON.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "manifest: " + e.Err.Error()
	}
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Load reads and parses a package.json file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the project manifest
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	f, err := Parse(data)
	if err != nil {
		var me *Error
		if errors.As(err, &me) {
			me.Path = path
		}
		return nil, err
	}
	return f, nil
}

// Parse parses package.json content. The top level must be an object and
// every dependency value must be a string.
func Parse(data []byte) (*File, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, &Error{Err: err}
	}

	f := &File{Dependencies: NewDependencies()}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, &Error{Err: err}
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, &Error{Err: fmt.Errorf("value of %q: %w", key, err)}
		}
		if key == dependenciesKey {
			deps, err := parseDependencies(raw)
			if err != nil {
				return nil, &Error{Err: err}
			}
			f.Dependencies = deps
		}
		f.set(key, raw)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, &Error{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &Error{Err: fmt.Errorf("unexpected data after top-level object")}
	}
	return f, nil
}

// Marshal renders the manifest as two-space indented JSON with a trailing
// newline, keeping top-level key order.
func (f *File) Marshal() ([]byte, error) {
	fields := f.fields
	if f.Dependencies.Len() > 0 && !f.has(dependenciesKey) {
		fields = append(fields[:len(fields):len(fields)], field{key: dependenciesKey})
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fl := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")
		buf.Write(quote(fl.key))
		buf.WriteString(": ")

		value := fl.value
		if fl.key == dependenciesKey && !(f.Dependencies.Len() == 0 && isNull(value)) {
			value = f.Dependencies.marshal()
		}
		if err := json.Indent(&buf, value, "  ", "  "); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", fl.key, err)
		}
	}
	if len(fields) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// Update loads the manifest at path, applies mutate, sorts the dependency
// keys and writes the result back. The write goes to a temporary file in the
// same directory which is then renamed over path, so a failed write leaves
// the original untouched.
func Update(path string, mutate func(*File) error) error {
	f, err := Load(path)
	if err != nil {
		return err
	}
	if err := mutate(f); err != nil {
		return err
	}
	f.Dependencies.Sort()

	data, err := f.Marshal()
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing manifest: %w", err)
	}
	return nil
}

func (f *File) has(key string) bool {
	for _, fl := range f.fields {
		if fl.key == key {
			return true
		}
	}
	return false
}

// set records a top-level value. A repeated key keeps its first position
// and the last value, as JSON.parse does.
func (f *File) set(key string, raw []byte) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].value = raw
			return
		}
	}
	f.fields = append(f.fields, field{key: key, value: raw})
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func parseDependencies(raw []byte) (*Dependencies, error) {
	deps := NewDependencies()
	if isNull(raw) {
		return deps, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("dependencies: %w", err)
	}
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, fmt.Errorf("dependencies: %w", err)
		}
		var spec string
		if err := dec.Decode(&spec); err != nil {
			return nil, fmt.Errorf("dependencies: value of %q must be a string", name)
		}
		deps.Set(name, spec)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("dependencies: %w", err)
	}
	return deps, nil
}

func (d *Dependencies) marshal() []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(quote(k))
		buf.WriteByte(':')
		buf.Write(quote(d.values[k]))
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		if want == '{' {
			return fmt.Errorf("expected a JSON object, got %v", tok)
		}
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// quote encodes s as a JSON string without HTML escaping.
func quote(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimRight(buf.Bytes(), "\n")
}
