package profile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfigParse     = errors.New("profile config parse error")
	ErrProfileNotFound = errors.New("profile not found")
	ErrMissingField    = errors.New("missing required field")
)

// Wrap tags err with the provided sentinel marker and a context message so
// callers can classify failures with errors.Is while still seeing detail.
func Wrap(marker error, message string, err error) error {
	message = strings.TrimSpace(message)
	if err != nil {
		if message == "" {
			return fmt.Errorf("%w: %w", marker, err)
		}
		return fmt.Errorf("%w: %s: %w", marker, message, err)
	}
	if message == "" {
		return marker
	}
	return fmt.Errorf("%w: %s", marker, message)
}

func notFoundError(requested, segment string) error {
	return Wrap(ErrProfileNotFound, fmt.Sprintf("%q (unresolved segment %q)", requested, segment), nil)
}

func missingFieldError(field string) error {
	return Wrap(ErrMissingField, field, nil)
}
