// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPieceName is the sentinel error wrapped by InvalidPieceNameError.
	ErrInvalidPieceName = errors.New("invalid piece name")
	// ErrInvalidPlanName is the sentinel error wrapped by InvalidPlanNameError.
	ErrInvalidPlanName = errors.New("invalid plan name")
)

type (
	// PieceName is the prefab name of a piece in the source catalog
	// (e.g. "wood_wall"). It is unique within one catalog snapshot, but the
	// same name can be reused by unrelated mods across process lifetimes.
	// The zero value ("") is invalid.
	PieceName string

	// PlanName is the registration name of a generated plan piece. It is a
	// deterministic function of the source PieceName (see PlanNameFor).
	PlanName string

	// InvalidPieceNameError is returned when a PieceName value is empty or
	// whitespace-only.
	InvalidPieceNameError struct {
		Value PieceName
	}

	// InvalidPlanNameError is returned when a PlanName value is empty or
	// whitespace-only.
	InvalidPlanNameError struct {
		Value PlanName
	}
)

// String returns the string representation of the PieceName.
func (n PieceName) String() string { return string(n) }

// IsValid returns whether the PieceName is valid.
// A valid name must be non-empty and not whitespace-only.
func (n PieceName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" {
		return false, []error{&InvalidPieceNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPieceNameError.
func (e *InvalidPieceNameError) Error() string {
	return fmt.Sprintf("invalid piece name %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidPieceName for errors.Is() compatibility.
func (e *InvalidPieceNameError) Unwrap() error { return ErrInvalidPieceName }

// String returns the string representation of the PlanName.
func (n PlanName) String() string { return string(n) }

// IsValid returns whether the PlanName is valid.
// A valid name must be non-empty and not whitespace-only.
func (n PlanName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" {
		return false, []error{&InvalidPlanNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPlanNameError.
func (e *InvalidPlanNameError) Error() string {
	return fmt.Sprintf("invalid plan name %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidPlanName for errors.Is() compatibility.
func (e *InvalidPlanNameError) Unwrap() error { return ErrInvalidPlanName }

// PlanNameFor derives the plan name for a piece by appending suffix.
func PlanNameFor(piece PieceName, suffix string) PlanName {
	return PlanName(string(piece) + suffix)
}
