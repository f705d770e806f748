// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDisplayName is the sentinel error wrapped by InvalidDisplayNameError.
var ErrInvalidDisplayName = errors.New("invalid display name")

type (
	// DisplayName is the human-readable (often localization token) name of a
	// piece, e.g. "$piece_woodwall". It is NOT unique across pieces.
	// The zero value ("") is valid and means the piece has no display name.
	DisplayName string

	// IconRef references the icon sprite of a piece. It is a reference only;
	// the catalog never owns icon data. The zero value means "no icon".
	IconRef string

	// InvalidDisplayNameError is returned when a DisplayName value is
	// non-empty but whitespace-only.
	InvalidDisplayNameError struct {
		Value DisplayName
	}
)

// String returns the string representation of the DisplayName.
func (d DisplayName) String() string { return string(d) }

// IsValid returns whether the DisplayName is valid.
// The zero value ("") is valid. Non-zero values must not be whitespace-only.
func (d DisplayName) IsValid() (bool, []error) {
	if d == "" {
		return true, nil
	}
	if strings.TrimSpace(string(d)) == "" {
		return false, []error{&InvalidDisplayNameError{Value: d}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDisplayNameError.
func (e *InvalidDisplayNameError) Error() string {
	return fmt.Sprintf("invalid display name: non-empty value must not be whitespace-only (got %q)", e.Value)
}

// Unwrap returns ErrInvalidDisplayName for errors.Is() compatibility.
func (e *InvalidDisplayNameError) Unwrap() error { return ErrInvalidDisplayName }

// String returns the string representation of the IconRef.
func (i IconRef) String() string { return string(i) }
