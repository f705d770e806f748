// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// FormatError rewrites err so every CUE error in it is reported against file
// and its value path:
//
//	pieces.cue: tables[0].pieces[2].requirements.Wood: invalid value -1 (out of bound >=0)
//
// Several errors are listed one per line. Errors that carry no CUE positions
// keep their chain and only gain the file prefix.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}

	list := errors.Errors(err)
	switch len(list) {
	case 0:
		return fmt.Errorf("%s: %w", file, err)
	case 1:
		return fmt.Errorf("%s: %s", file, describe(list[0]))
	}

	lines := make([]string, len(list))
	for i, e := range list {
		lines[i] = describe(e)
	}
	return fmt.Errorf("%s: validation failed:\n  %s", file, strings.Join(lines, "\n  "))
}

// describe prefixes the message of e with its value path, unless CUE already
// did.
func describe(e errors.Error) string {
	path := formatPath(errors.Path(e))
	msg := e.Error()
	if path == "" {
		return msg
	}
	if rest, ok := strings.CutPrefix(msg, path); ok {
		msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	}
	return path + ": " + msg
}

// formatPath joins path selectors with dots and renders list indices in
// brackets: ["tables", "0", "name"] becomes "tables[0].name".
func formatPath(path []string) string {
	var b strings.Builder
	for i, sel := range path {
		switch {
		case i > 0 && isIndex(sel):
			b.WriteString("[" + sel + "]")
		case i > 0:
			b.WriteString("." + sel)
		default:
			b.WriteString(sel)
		}
	}
	return b.String()
}

func isIndex(sel string) bool {
	return sel != "" && strings.Trim(sel, "0123456789") == ""
}

// CheckFileSize rejects data larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if size := int64(len(data)); size > maxSize {
		return fmt.Errorf("%s: %d bytes exceeds maximum of %d", filename, size, maxSize)
	}
	return nil
}
