package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Store holds the loaded profile tree. It is populated once by Load and
// read-only afterwards.
type Store struct {
	roots map[string]*Fragment
}

// Load reads the profile tree from the TOML file at path. A missing file is
// not an error: profiles are optional and Load returns an empty store so the
// tool can run on overrides and defaults alone. A present but malformed file
// fails with ErrConfigParse.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Store{roots: map[string]*Fragment{}}, nil
		}
		return nil, Wrap(ErrConfigParse, fmt.Sprintf("read %s", path), err)
	}
	return Parse(data)
}

// Parse decodes a profile tree from raw TOML.
func Parse(data []byte) (*Store, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, Wrap(ErrConfigParse, "decode profiles", err)
	}

	roots := make(map[string]*Fragment, len(raw))
	for name, value := range raw {
		table, ok := value.(map[string]any)
		if !ok {
			return nil, Wrap(ErrConfigParse, fmt.Sprintf("top-level key %q must be a profile table, got %T", name, value), nil)
		}
		frag, err := buildFragment(name, table)
		if err != nil {
			return nil, Wrap(ErrConfigParse, "", err)
		}
		roots[name] = frag
	}
	return &Store{roots: roots}, nil
}

// Len reports the number of top-level profiles.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.roots)
}

// RootNames returns the top-level profile names in sorted order.
func (s *Store) RootNames() []string {
	if s == nil || len(s.roots) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.roots))
	for name := range s.roots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the top-level fragment with the given name.
func (s *Store) Lookup(name string) (*Fragment, bool) {
	if s == nil {
		return nil, false
	}
	frag, ok := s.roots[name]
	return frag, ok
}

// Walk visits every fragment in the tree, depth first in sorted dotted-path
// order, calling fn with the fragment's full dotted path.
func (s *Store) Walk(fn func(dotted string, frag *Fragment)) {
	if s == nil {
		return
	}
	for _, name := range s.RootNames() {
		walkFragment(name, s.roots[name], fn)
	}
}

func walkFragment(dotted string, frag *Fragment, fn func(string, *Fragment)) {
	fn(dotted, frag)
	for _, child := range frag.ChildNames() {
		walkFragment(dotted+"."+child, frag.Children[child], fn)
	}
}
