package profile

// Overrides carries the user-supplied values from the invocation surface.
// Nil fields were not supplied and leave the resolved value alone. Pages and
// NoWait do not participate in resolution; the scan workflow consumes them
// directly.
type Overrides struct {
	Path     *string
	Name     *string
	OCR      *bool
	Keywords []string

	Pages  int
	NoWait bool
}

// Apply layers the overrides on top of the resolution and finalizes the
// configuration. Overrides outrank every profile level, including the leaf;
// an explicit keyword override replaces the accumulated list rather than
// appending to it. After application the documented defaults kick in
// (ocr=false, keywords empty) and the required fields are validated: a still
// unset path or name fails with ErrMissingField.
func (r Resolution) Apply(o Overrides) (Resolved, error) {
	if o.Path != nil {
		r.Path = o.Path
	}
	if o.Name != nil {
		r.Name = o.Name
	}
	if o.OCR != nil {
		r.OCR = o.OCR
	}
	if o.Keywords != nil {
		r.Keywords = o.Keywords
	}

	if r.Path == nil || *r.Path == "" {
		return Resolved{}, missingFieldError("path")
	}
	if r.Name == nil || *r.Name == "" {
		return Resolved{}, missingFieldError("name")
	}

	resolved := Resolved{
		Path:     *r.Path,
		Name:     *r.Name,
		Keywords: append([]string(nil), r.Keywords...),
	}
	if resolved.Keywords == nil {
		resolved.Keywords = []string{}
	}
	if r.OCR != nil {
		resolved.OCR = *r.OCR
	}
	return resolved, nil
}
