// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidResourceName is the sentinel error wrapped by InvalidResourceNameError.
	ErrInvalidResourceName = errors.New("invalid resource name")
	// ErrInvalidTableName is the sentinel error wrapped by InvalidTableNameError.
	ErrInvalidTableName = errors.New("invalid table name")
)

type (
	// ResourceName is the shared item name of a build resource (e.g. "$item_wood").
	ResourceName string

	// TableName identifies a piece table (a build menu), e.g. "_HammerPieceTable".
	TableName string

	// InvalidResourceNameError is returned when a ResourceName value is empty
	// or whitespace-only.
	InvalidResourceNameError struct {
		Value ResourceName
	}

	// InvalidTableNameError is returned when a TableName value is empty or
	// whitespace-only.
	InvalidTableNameError struct {
		Value TableName
	}
)

// String returns the string representation of the ResourceName.
func (r ResourceName) String() string { return string(r) }

// IsValid returns whether the ResourceName is valid.
func (r ResourceName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(r)) == "" {
		return false, []error{&InvalidResourceNameError{Value: r}}
	}
	return true, nil
}

// Error implements the error interface for InvalidResourceNameError.
func (e *InvalidResourceNameError) Error() string {
	return fmt.Sprintf("invalid resource name %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidResourceName for errors.Is() compatibility.
func (e *InvalidResourceNameError) Unwrap() error { return ErrInvalidResourceName }

// String returns the string representation of the TableName.
func (t TableName) String() string { return string(t) }

// IsValid returns whether the TableName is valid.
func (t TableName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(t)) == "" {
		return false, []error{&InvalidTableNameError{Value: t}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTableNameError.
func (e *InvalidTableNameError) Error() string {
	return fmt.Sprintf("invalid table name %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidTableName for errors.Is() compatibility.
func (e *InvalidTableNameError) Unwrap() error { return ErrInvalidTableName }
