package profile

import "strings"

// Resolution is the accumulated result of walking a profile's ancestor
// chain. Nil pointers mark fields no fragment in the chain has set; they
// either take their documented default or fail required-field validation
// when Apply finalizes the value.
type Resolution struct {
	Path     *string
	Name     *string
	OCR      *bool
	Keywords []string
}

// Resolved is the fully merged configuration driving one scan run. It is
// constructed once by Apply and treated as immutable afterwards.
type Resolved struct {
	Path     string
	Name     string
	OCR      bool
	Keywords []string
}

// Resolve walks the dotted path through the store and folds each fragment's
// explicitly set fields into a Resolution, root first. The empty path
// resolves to an all-unset Resolution. An unknown segment fails with
// ErrProfileNotFound naming the requested path and the first unresolved
// segment.
func (s *Store) Resolve(dotted string) (Resolution, error) {
	var acc Resolution
	if strings.TrimSpace(dotted) == "" {
		return acc, nil
	}

	segments := strings.Split(dotted, ".")
	var current *Fragment
	for i, segment := range segments {
		var next *Fragment
		var ok bool
		if i == 0 {
			next, ok = s.Lookup(segment)
		} else {
			next, ok = current.Children[segment]
		}
		if !ok {
			return Resolution{}, notFoundError(dotted, segment)
		}
		acc = Merge(acc, next.fields())
		current = next
	}
	return acc, nil
}

// Merge folds child onto parent using field-level override semantics: every
// field the child sets replaces the parent's value, fields the child leaves
// unset propagate through. Keywords are the one exception and accumulate,
// ancestor entries first, duplicates kept. Merge is pure; neither input is
// modified.
func Merge(parent, child Resolution) Resolution {
	merged := Resolution{
		Path: parent.Path,
		Name: parent.Name,
		OCR:  parent.OCR,
	}
	if child.Path != nil {
		merged.Path = child.Path
	}
	if child.Name != nil {
		merged.Name = child.Name
	}
	if child.OCR != nil {
		merged.OCR = child.OCR
	}
	if total := len(parent.Keywords) + len(child.Keywords); total > 0 {
		merged.Keywords = make([]string, 0, total)
		merged.Keywords = append(merged.Keywords, parent.Keywords...)
		merged.Keywords = append(merged.Keywords, child.Keywords...)
	}
	return merged
}
