// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, limit int) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), limit)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := newStore(t, 100)

	require.NoError(t, s.Append("sess", "ls", "ls", true))
	require.NoError(t, s.Append("sess", "frobnicate", "", false))
	require.NoError(t, s.Append("sess", "cd docs", "cd", true))

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "ls", entries[0].Line)
	assert.True(t, entries[0].OK)
	assert.Equal(t, "frobnicate", entries[1].Line)
	assert.False(t, entries[1].OK)
	assert.Equal(t, "cd docs", entries[2].Line)
}

func TestConsecutiveDuplicatesCollapsed(t *testing.T) {
	s := newStore(t, 100)

	require.NoError(t, s.Append("sess", "ls", "ls", true))
	require.NoError(t, s.Append("sess", "ls", "ls", true))
	require.NoError(t, s.Append("sess", "pwd", "pwd", true))
	require.NoError(t, s.Append("sess", "ls", "ls", true))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRetentionLimit(t *testing.T) {
	s := newStore(t, 5)

	for i := 0; i < 10; i++ {
		require.NoError(t, s.Append("sess", "cmd "+string(rune('a'+i)), "cmd", true))
	}

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	// Oldest retained entry is the sixth appended.
	assert.Equal(t, "cmd f", entries[0].Line)
}

func TestSearch(t *testing.T) {
	s := newStore(t, 100)

	require.NoError(t, s.Append("sess", "ls docs", "ls", true))
	require.NoError(t, s.Append("sess", "cat docs/readme", "cat", true))
	require.NoError(t, s.Append("sess", "pwd", "pwd", true))

	entries, err := s.Search("docs")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestClosedStore(t *testing.T) {
	s := newStore(t, 100)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Append("sess", "ls", "ls", true), ErrClosed)
	_, err := s.Recent(1)
	assert.ErrorIs(t, err, ErrClosed)
}
