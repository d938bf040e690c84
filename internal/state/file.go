package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// StateFileEnv overrides the default state file location (for testing).
const StateFileEnv = "DEBUGPANELS_STATE_FILE"

// DefaultStateFile is the path of the state file relative to the XDG state dir.
const DefaultStateFile = "debugpanels/state.toml"

type fileDoc struct {
	Flags map[string]bool `toml:"flags"`
}

// File is a Store backed by a TOML document on disk.
// The whole document is rewritten on every SetBool.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]bool
}

// Ensure File implements Store.
var _ Store = (*File)(nil)

// DefaultFilePath resolves the state file path, honouring StateFileEnv.
func DefaultFilePath() (string, error) {
	if p := os.Getenv(StateFileEnv); p != "" {
		return p, nil
	}
	return xdg.StateFile(DefaultStateFile)
}

// OpenFile loads the state file at path. A missing file yields an empty store.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]bool)}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state %s: %w", path, err)
	}
	var doc fileDoc
	if err := toml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", path, err)
	}
	for k, v := range doc.Flags {
		f.values[k] = v
	}
	return f, nil
}

// Path returns the file backing the store.
func (f *File) Path() string {
	return f.path
}

// Bool implements Store.
func (f *File) Bool(key string) (bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

// SetBool implements Store.
func (f *File) SetBool(key string, value bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value

	b, err := toml.Marshal(fileDoc{Flags: f.values})
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(f.path, b, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", f.path, err)
	}
	return nil
}
