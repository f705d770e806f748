// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE parsing flow shared by catalog files and
// the configuration loader:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with the schema's root definition
//  3. Validate and decode into a Go struct
//
// # Usage
//
//	//go:embed catalog_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[fileCatalog](
//	    schemaBytes,
//	    data,
//	    "#Catalog",
//	    cueutil.WithFilename("pieces.cue"),
//	)
//	if err != nil {
//	    return nil, err // carries the CUE path of the offending field
//	}
//	return result.Value, nil
package cueutil
