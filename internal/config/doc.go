// SPDX-License-Identifier: MPL-2.0

// Package config handles planbuild configuration using Viper with CUE as the
// file format.
//
// Configuration is loaded from config.cue in the planbuild config directory
// ($XDG_CONFIG_HOME/planbuild on Linux, ~/Library/Application Support/planbuild
// on macOS, %APPDATA%\planbuild on Windows) or from the current directory.
// Files are validated against the embedded config_schema.cue before being
// merged over the defaults; PLANBUILD_* environment variables override both.
package config
