package profile

import (
	"fmt"
	"sort"
)

// Fragment is one node of the profile tree. Every leaf field is optional; a
// nil pointer (or nil slice) means the fragment does not set that field and
// the ancestor's value propagates down.
type Fragment struct {
	Path     *string
	Name     *string
	OCR      *bool
	Keywords []string

	Children map[string]*Fragment
}

// ChildNames returns the fragment's child profile names in sorted order.
func (f *Fragment) ChildNames() []string {
	if f == nil || len(f.Children) == 0 {
		return nil
	}
	names := make([]string, 0, len(f.Children))
	for name := range f.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fields returns the fragment's explicitly set leaf fields as a Resolution
// layer suitable for merging.
func (f *Fragment) fields() Resolution {
	return Resolution{
		Path:     f.Path,
		Name:     f.Name,
		OCR:      f.OCR,
		Keywords: f.Keywords,
	}
}

// Recognized option keys. Any other key inside a profile table must be a
// nested table and names a child profile.
const (
	keyPath     = "path"
	keyName     = "name"
	keyOCR      = "ocr"
	keyKeywords = "keywords"
)

func buildFragment(ident string, raw map[string]any) (*Fragment, error) {
	frag := &Fragment{}
	for key, value := range raw {
		switch key {
		case keyPath:
			str, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("profile %q: %s must be a string, got %T", ident, keyPath, value)
			}
			frag.Path = &str
		case keyName:
			str, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("profile %q: %s must be a string, got %T", ident, keyName, value)
			}
			frag.Name = &str
		case keyOCR:
			enabled, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("profile %q: %s must be a boolean, got %T", ident, keyOCR, value)
			}
			frag.OCR = &enabled
		case keyKeywords:
			keywords, err := stringSlice(value)
			if err != nil {
				return nil, fmt.Errorf("profile %q: %s: %w", ident, keyKeywords, err)
			}
			frag.Keywords = keywords
		default:
			child, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("profile %q: unrecognized option %q", ident, key)
			}
			built, err := buildFragment(ident+"."+key, child)
			if err != nil {
				return nil, err
			}
			if frag.Children == nil {
				frag.Children = make(map[string]*Fragment)
			}
			frag.Children[key] = built
		}
	}
	return frag, nil
}

func stringSlice(value any) ([]string, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("must be an array of strings, got %T", value)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("must be an array of strings, found %T element", item)
		}
		out = append(out, str)
	}
	return out, nil
}
