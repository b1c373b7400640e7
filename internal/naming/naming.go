// Package naming derives filesystem-safe output names from resolved scan
// configurations. Slugs are lowercase, diacritic-folded, and joined with
// single dashes; a timestamp discriminator keeps repeated scans against the
// same profile from colliding.
package naming

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"digitize/internal/profile"
)

// ErrInvalidName marks names whose slug collapses to the empty string, for
// example a name made entirely of punctuation.
var ErrInvalidName = errors.New("invalid document name")

// Separator joins slug tokens and the discriminator.
const Separator = "-"

// foldMarks decomposes characters and strips combining marks so accented
// letters slug to their base form ("Müller" -> "muller").
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug normalizes value into a lowercase token: diacritics are folded away
// and every run of non-alphanumeric characters collapses to a single
// separator, trimmed at both ends. The result may be empty.
func Slug(value string) string {
	folded, _, err := transform.String(foldMarks, value)
	if err != nil {
		folded = value
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteString(Separator)
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// Timestamp formats t as the filename discriminator used by MakeFilename.
func Timestamp(t time.Time) string {
	return t.Format("20060102-150405")
}

// MakeFilename produces the base output filename (no extension) for one scan
// run by slugifying the resolved name and appending the discriminator. Fails
// with ErrInvalidName when the slug is empty.
func MakeFilename(cfg profile.Resolved, discriminator string) (string, error) {
	slug := Slug(cfg.Name)
	if slug == "" {
		return "", fmt.Errorf("%w: name %q slugs to an empty string", ErrInvalidName, cfg.Name)
	}
	discriminator = strings.TrimSpace(discriminator)
	if discriminator == "" {
		return slug, nil
	}
	return slug + Separator + discriminator, nil
}
