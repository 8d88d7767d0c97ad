// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sandbox.go - path normalization and containment checks.
package sandbox

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxDepth is the maximum number of path segments accepted in a single
// request. Deeper paths are rejected before resolution.
const MaxDepth = 50

// =============================================================================
// ERRORS
// =============================================================================

// EscapeError is returned when a requested path resolves outside the
// sandbox root.
type EscapeError struct {
	Requested string
	Resolved  string
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("path escapes sandbox: %s", e.Requested)
}

// Is reports whether target is an *EscapeError, so callers can match
// with errors.Is(err, &EscapeError{}).
func (e *EscapeError) Is(target error) bool {
	_, ok := target.(*EscapeError)
	return ok
}

// =============================================================================
// RESOLUTION
// =============================================================================

// Resolve canonicalizes a user-requested path against the current
// directory and verifies the result stays inside root.
//
// The steps are:
//  1. Join relative requests against cwd; re-root absolute requests so
//     "/docs" means "<root>/docs", never the host's /docs.
//  2. Clean the joined path.
//  3. Resolve symlinks. For paths that do not exist yet (mkdir, touch)
//     the nearest existing ancestor is resolved instead, and the
//     remaining segments are re-applied.
//  4. Verify segment-boundary containment: root "/data" does not
//     contain "/data-evil".
//
// Resolve never modifies the filesystem, and a failed resolution has
// no side effects. Resolution is idempotent: feeding a resolved path
// back in yields the same path.
func Resolve(root, cwd, requested string) (string, error) {
	if strings.Count(filepath.ToSlash(requested), "/") > MaxDepth {
		return "", &EscapeError{Requested: requested}
	}

	var joined string
	if filepath.IsAbs(requested) {
		// Absolute requests are interpreted relative to the sandbox
		// root, matching how a chroot sees "/".
		joined = filepath.Join(root, requested)
	} else {
		joined = filepath.Join(cwd, requested)
	}
	joined = filepath.Clean(joined)

	real, err := resolveSymlinks(joined)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", requested, err)
	}

	realRoot, err := resolveSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}

	if !within(realRoot, real) {
		return "", &EscapeError{Requested: requested, Resolved: real}
	}
	return real, nil
}

// resolveSymlinks canonicalizes path, falling back to the nearest
// existing ancestor when the path itself does not exist yet. The
// missing tail is cleaned and re-joined so a dangling "../.." cannot
// hide behind a nonexistent prefix.
func resolveSymlinks(path string) (string, error) {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		return real, nil
	}

	// Walk up until an existing ancestor resolves.
	ancestor := path
	var tail []string
	for {
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			// Hit the filesystem root without resolving anything.
			return filepath.Clean(path), nil
		}
		tail = append(tail, filepath.Base(ancestor))
		ancestor = parent

		if real, err := filepath.EvalSymlinks(ancestor); err == nil {
			// Re-apply the missing segments in original order.
			for i := len(tail) - 1; i >= 0; i-- {
				real = filepath.Join(real, tail[i])
			}
			return filepath.Clean(real), nil
		}
	}
}

// within reports whether path sits at or below root, comparing on
// segment boundaries so "/data" does not contain "/data-evil".
func within(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)

	if path == root {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

// Rel returns path relative to root with a leading separator, for
// prompts and listings ("/docs/a.txt"). Falls back to the full path
// when the inputs are unrelated.
func Rel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if rel == "." {
		return "/"
	}
	return "/" + filepath.ToSlash(rel)
}
