package paint

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors returned by paint operations.
var (
	// ErrInvalidDimensions is returned when a width or height is not a
	// positive integer.
	ErrInvalidDimensions = errors.New("paint: invalid dimensions")

	// ErrNoStore is returned by Save and Open when the engine was created
	// without a persistence collaborator.
	ErrNoStore = errors.New("paint: no store configured")

	// ErrLoopStopped is returned when work is submitted to a Loop whose
	// Run has returned.
	ErrLoopStopped = errors.New("paint: loop stopped")
)

// MaxDimension bounds document sizes so a typo cannot allocate gigabytes.
const MaxDimension = 16384

// ParseSize validates textual width and height input, as typed into a
// new-document form.
func ParseSize(width, height string) (w, h int, err error) {
	w, err = parseDimension("width", width)
	if err != nil {
		return 0, 0, err
	}
	h, err = parseDimension("height", height)
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func parseDimension(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidDimensions, name, s)
	}
	if err := checkDimension(name, v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkDimension(name string, v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidDimensions, name, v)
	}
	if v > MaxDimension {
		return fmt.Errorf("%w: %s %d exceeds %d", ErrInvalidDimensions, name, v, MaxDimension)
	}
	return nil
}
