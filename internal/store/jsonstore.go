package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

// JSONStore keeps JSON documents under a root directory. The same type
// serves both trees: raw upstream responses under data/raw and computed
// artifacts under data/derived.
type JSONStore struct {
	Root   string // e.g. "data/raw"
	Pretty bool   // re-indent documents on write
}

func NewJSONStore(root string) *JSONStore {
	return &JSONStore{Root: root, Pretty: true}
}

func (s *JSONStore) Path(rel string) string {
	return filepath.Join(s.Root, rel)
}

func (s *JSONStore) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

// WriteRaw stores body at rel as-is, except that when Pretty is set and
// the body parses as JSON it is re-indented for diffable caches.
func (s *JSONStore) WriteRaw(rel string, body []byte) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if s.Pretty {
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			buf := &bytes.Buffer{}
			enc := json.NewEncoder(buf)
			enc.SetIndent("", "  ")
			_ = enc.Encode(v)
			body = buf.Bytes()
		}
	}

	return os.WriteFile(path, body, 0o644)
}

// WriteJSON marshals v indented and stores it at rel.
func (s *JSONStore) WriteJSON(rel string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadRaw returns the stored document. A missing file surfaces the
// underlying os.ErrNotExist so callers can branch on cache misses.
func (s *JSONStore) ReadRaw(rel string) ([]byte, error) {
	return os.ReadFile(s.Path(rel))
}

// ReadJSON reads the document at rel and unmarshals it into v.
func (s *JSONStore) ReadJSON(rel string, v any) error {
	b, err := s.ReadRaw(rel)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
