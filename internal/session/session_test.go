// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, s.Root(), s.Cwd())
	assert.Equal(t, "/", s.RelCwd())
}

func TestNewMissingRoot(t *testing.T) {
	// Existence of the root is enforced by config.Validate at startup;
	// session creation itself only canonicalizes.
	s, err := New(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Equal(t, s.Root(), s.Cwd())
}

func TestChdirAndRelCwd(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	require.NoError(t, os.Mkdir(docs, 0755))

	s, err := New(root)
	require.NoError(t, err)

	s.Chdir(filepath.Join(s.Root(), "docs"))
	assert.Equal(t, "/docs", s.RelCwd())
}

func TestHistoryAppendOnly(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	s.Record("ls")
	s.Record("bogus command")
	s.Record("ls")

	got := s.History()
	assert.Equal(t, []string{"ls", "bogus command", "ls"}, got)

	// Mutating the returned slice must not affect session state.
	got[0] = "tampered"
	assert.Equal(t, "ls", s.History()[0])
}
