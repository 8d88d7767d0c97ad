// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// session.go - per-session state.
package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jeranaias/nlterm/internal/sandbox"
)

// State is the mutable state of a shell session. The cwd invariant is
// maintained by Chdir: it always points inside the sandbox root.
// History is append-only; entries are never rewritten.
type State struct {
	// ID uniquely identifies this session in the command log.
	ID string

	root    string
	cwd     string
	history []string
}

// New creates a session rooted at root with cwd set to root.
func New(root string) (*State, error) {
	real, err := sandbox.Resolve(root, root, ".")
	if err != nil {
		return nil, fmt.Errorf("invalid session root: %w", err)
	}
	return &State{
		ID:   uuid.NewString(),
		root: real,
		cwd:  real,
	}, nil
}

// Root returns the sandbox root.
func (s *State) Root() string { return s.root }

// Cwd returns the current directory. Always inside Root.
func (s *State) Cwd() string { return s.cwd }

// RelCwd returns the cwd relative to the root, for the prompt.
func (s *State) RelCwd() string {
	return sandbox.Rel(s.root, s.cwd)
}

// Chdir moves the session to a resolved, sandbox-checked directory.
// On failure the cwd is unchanged.
func (s *State) Chdir(resolved string) {
	s.cwd = resolved
}

// Record appends an input line to the in-memory history, whether or
// not the command succeeded.
func (s *State) Record(line string) {
	s.history = append(s.history, line)
}

// History returns a copy of the recorded lines in order.
func (s *State) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}
