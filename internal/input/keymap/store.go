package keymap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Document is the persisted form of the bindings: action name to an ordered
// list of accelerator strings.
type Document map[string][]string

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = slices.Clone(v)
	}
	return out
}

// Equal reports whether two documents hold the same lists.
// A nil list equals an empty one.
func (d Document) Equal(other Document) bool {
	return maps.EqualFunc(d, other, func(a, b []string) bool {
		return slices.Equal(a, b)
	})
}

// Store loads and saves the bindings document.
type Store interface {
	// Load returns the stored document. A store with nothing saved yet
	// returns (nil, nil). A partially readable document is returned along
	// with the error describing the skipped parts.
	Load() (Document, error)

	// Save replaces the stored document.
	Save(doc Document) error
}

// Codec converts between a Document and its serialized form.
type Codec interface {
	Name() string
	Decode(data []byte) (Document, error)
	Encode(doc Document) ([]byte, error)
}

// Built-in codecs.
var (
	JSON Codec = jsonCodec{}
	YAML Codec = yamlCodec{}
)

// CodecForPath picks a codec from the file extension.
// ".yaml" and ".yml" use YAML, everything else JSON.
func CodecForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

// Decode walks the document with gjson so that one bad entry does not
// discard the rest.
func (jsonCodec) Decode(data []byte) (Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, &DecodeError{Format: "json", Err: errors.New("invalid JSON")}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &DecodeError{Format: "json", Err: fmt.Errorf("root is %s, want object", root.Type)}
	}

	doc := make(Document)
	var errs []error
	root.ForEach(func(k, v gjson.Result) bool {
		name := k.String()
		if !v.IsArray() {
			errs = append(errs, fmt.Errorf("action %q: value is not a list", name))
			return true
		}
		list := make([]string, 0)
		for i, elem := range v.Array() {
			if elem.Type != gjson.String {
				errs = append(errs, fmt.Errorf("action %q: element %d is not a string", name, i))
				continue
			}
			list = append(list, elem.Str)
		}
		doc[name] = list
		return true
	})
	return doc, errors.Join(errs...)
}

func (jsonCodec) Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(nonNilLists(doc)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Decode(data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &DecodeError{Format: "yaml", Err: err}
	}

	doc := make(Document)
	if root.Kind == 0 {
		// empty file
		return doc, nil
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, &DecodeError{Format: "yaml", Err: fmt.Errorf("line %d: root is not a mapping", node.Line)}
	}

	var errs []error
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		name := k.Value
		switch {
		case v.Kind == yaml.ScalarNode && v.Tag == "!!null":
			doc[name] = []string{}
		case v.Kind != yaml.SequenceNode:
			errs = append(errs, fmt.Errorf("line %d: action %q: value is not a list", v.Line, name))
		default:
			list := make([]string, 0, len(v.Content))
			for _, elem := range v.Content {
				if elem.Kind != yaml.ScalarNode || elem.Tag == "!!null" {
					errs = append(errs, fmt.Errorf("line %d: action %q: element is not a string", elem.Line, name))
					continue
				}
				list = append(list, elem.Value)
			}
			doc[name] = list
		}
	}
	return doc, errors.Join(errs...)
}

func (yamlCodec) Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(nonNilLists(doc)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// nonNilLists makes empty lists serialize as [] rather than null.
func nonNilLists(doc Document) map[string][]string {
	out := make(map[string][]string, len(doc))
	for k, v := range doc {
		if v == nil {
			v = []string{}
		}
		out[k] = v
	}
	return out
}

// FileStore persists the document to a file.
type FileStore struct {
	path  string
	codec Codec
}

// NewFileStore creates a store for path, choosing the codec by extension.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, codec: CodecForPath(path)}
}

// Path returns the file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the file. A missing file returns (nil, nil).
func (s *FileStore) Load() (Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading bindings file: %w", err)
	}

	doc, err := s.codec.Decode(data)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = s.path
			return doc, de
		}
		return doc, fmt.Errorf("%s: %w", s.path, err)
	}
	return doc, nil
}

// Save encodes doc and replaces the file atomically using a temporary file
// in the same directory and rename.
func (s *FileStore) Save(doc Document) error {
	data, err := s.codec.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding bindings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0o644); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// MemoryStore keeps the document in memory.
type MemoryStore struct {
	mu    sync.Mutex
	doc   Document
	saves int
}

// NewMemoryStore creates a store holding a copy of doc (which may be nil).
func NewMemoryStore(doc Document) *MemoryStore {
	return &MemoryStore{doc: doc.Clone()}
}

// Load returns a copy of the stored document.
func (s *MemoryStore) Load() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone(), nil
}

// Save stores a copy of doc.
func (s *MemoryStore) Save(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
