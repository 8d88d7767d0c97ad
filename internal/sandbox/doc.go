// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sandbox confines every filesystem operation to a single root
// directory.
//
// All user-supplied paths pass through Resolve before any command
// touches the disk. Resolve normalizes the path, follows symlinks, and
// rejects anything that lands outside the root, so a command handler
// never has to reason about traversal on its own.
//
// # Key Functions
//
//   - Resolve: normalize a user path against the root and current
//     directory, or fail with EscapeError
//   - Rel: render an absolute sandbox path as a "/docs"-style display
//     path
//
// # Usage
//
//	path, err := sandbox.Resolve(root, cwd, "../notes/a.txt")
//	if err != nil {
//	    var esc *sandbox.EscapeError
//	    // errors.As(err, &esc) for the rejected path details
//	}
//
// Absolute user paths are treated as sandbox-absolute: "/docs" means
// "<root>/docs", never the host's /docs.
package sandbox
