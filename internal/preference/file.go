package preference

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/tint/internal/theme"
)

// FileStore keeps the mode as a top-level key of a YAML file. Other keys and
// comments in the file are preserved when saving.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the YAML file at path. The file
// is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context) (theme.Mode, bool, error) {
	return load(ctx, "file", s)
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, mode theme.Mode) error {
	return save(ctx, s, mode)
}

func (s *FileStore) loadRaw(_ context.Context) (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, s.path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// A corrupt file is a configuration problem, not an outage.
		return fmt.Sprintf("<unparseable: %v>", err), true, nil
	}

	value, found := doc[Key]
	if !found {
		return "", false, nil
	}
	str, ok := value.(string)
	if !ok {
		return fmt.Sprint(value), true, nil
	}
	return str, true, nil
}

func (s *FileStore) saveRaw(_ context.Context, value string) error {
	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: reading %s: %v", ErrUnavailable, s.path, err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			// Unparseable content is replaced rather than blocking the save.
			doc = yaml.Node{}
		}
	}

	valueNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}

	if doc.Kind == 0 || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{{
				Kind: yaml.MappingNode,
				Content: []*yaml.Node{
					{Kind: yaml.ScalarNode, Value: Key},
					valueNode,
				},
			}},
		}
	} else {
		root := doc.Content[0]
		found := false
		for i := 0; i < len(root.Content)-1; i += 2 {
			if root.Content[i].Value == Key {
				root.Content[i+1] = valueNode
				found = true
				break
			}
		}
		if !found {
			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: Key},
				valueNode,
			)
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(s.path, buf.Bytes())
}

// writeAtomic writes data to a temp file next to path and renames it over
// path so readers never observe a partial file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: creating directory: %v", ErrUnavailable, err)
	}

	temp, err := os.CreateTemp(dir, ".tint-preferences.tmp.*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrUnavailable, err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
