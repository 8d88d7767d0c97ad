// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/nlterm/internal/history"
)

func TestHelpListsAllCategories(t *testing.T) {
	ctx, out := newCtx(t)

	require.NoError(t, run(t, ctx, "help"))
	for _, category := range []string{CategoryFS, CategorySystem, CategoryCode, CategoryShell} {
		assert.Contains(t, out.String(), category)
	}
	// Every command appears in the listing.
	for _, cmd := range ctx.Registry.All() {
		assert.Contains(t, out.String(), cmd.Name)
	}
}

func TestHelpSingleCommand(t *testing.T) {
	ctx, out := newCtx(t)

	require.NoError(t, run(t, ctx, "help", "rm"))
	assert.Contains(t, out.String(), "-r")

	err := run(t, ctx, "help", "frobnicate")
	require.Error(t, err)
	assert.ErrorIs(t, err, &UnknownCommandError{})
}

func TestHistoryFallsBackToSession(t *testing.T) {
	ctx, out := newCtx(t)
	ctx.Session.Record("ls")
	ctx.Session.Record("pwd")

	require.NoError(t, run(t, ctx, "history"))
	assert.Contains(t, out.String(), "ls")
	assert.Contains(t, out.String(), "pwd")
}

func TestHistoryFromStore(t *testing.T) {
	ctx, out := newCtx(t)

	store, err := history.Open(filepath.Join(t.TempDir(), "h.db"), 100)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	ctx.History = store

	require.NoError(t, store.Append(ctx.Session.ID, "mkdir demo", "mkdir", true))
	require.NoError(t, store.Append(ctx.Session.ID, "frobnicate", "", false))

	require.NoError(t, run(t, ctx, "history"))
	assert.Contains(t, out.String(), "mkdir demo")
	assert.Contains(t, out.String(), "frobnicate")

	out.Reset()
	require.NoError(t, run(t, ctx, "history", "demo"))
	assert.Contains(t, out.String(), "mkdir demo")
	assert.NotContains(t, out.String(), "frobnicate")
}

func TestClear(t *testing.T) {
	ctx, out := newCtx(t)
	require.NoError(t, run(t, ctx, "clear"))
	assert.Contains(t, out.String(), "\x1b[2J")
}

func TestExitCallsQuit(t *testing.T) {
	ctx, _ := newCtx(t)
	called := false
	ctx.Quit = func() { called = true }

	require.NoError(t, run(t, ctx, "exit"))
	assert.True(t, called)
}
