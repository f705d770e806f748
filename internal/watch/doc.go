// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when catalog files change.
//
// Directories under a base directory are registered with fsnotify; events for
// paths matching the configured doublestar patterns are collected and, once
// the debounce window has been quiet, handed to the callback in one batch.
// A callback that is still running when the next batch is due is not
// re-entered; the batch is retried after another debounce period.
package watch
