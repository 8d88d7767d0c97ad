// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/nlterm/internal/commands"
	"github.com/jeranaias/nlterm/internal/config"
	"github.com/jeranaias/nlterm/internal/resolver"
	"github.com/jeranaias/nlterm/internal/sandbox"
)

// newShell builds a shell over a temp sandbox with output captured.
func newShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	stateDir := t.TempDir()
	cfg := config.Default()
	cfg.Root = root
	cfg.HistoryFile = filepath.Join(stateDir, "history")
	cfg.HistoryDB = filepath.Join(stateDir, "history.db")

	shell, err := NewShell(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { shell.Close() })

	var out bytes.Buffer
	shell.out = &out
	return shell, &out
}

func TestExecuteLiteralCommand(t *testing.T) {
	shell, out := newShell(t)
	require.NoError(t, os.WriteFile(filepath.Join(shell.Session().Root(), "a.txt"), nil, 0644))

	require.NoError(t, shell.Execute("ls"))
	assert.Contains(t, out.String(), "a.txt")
}

func TestExecuteNaturalLanguage(t *testing.T) {
	shell, _ := newShell(t)

	require.NoError(t, shell.Execute("create a folder called demo"))
	assert.DirExists(t, filepath.Join(shell.Session().Root(), "demo"))

	require.NoError(t, shell.Execute("go to demo"))
	assert.Equal(t, "/demo", shell.Session().RelCwd())
}

func TestLiteralWinsOverPhrase(t *testing.T) {
	shell, _ := newShell(t)

	// "find" is both a command name and phrase vocabulary; the
	// literal interpretation must win.
	res, err := shell.dispatchTarget("find *.go")
	require.NoError(t, err)
	assert.Equal(t, "find", res.Command)
	assert.Equal(t, []string{"*.go"}, res.Args)
}

func TestAliasVerbPhrasesReachResolver(t *testing.T) {
	shell, out := newShell(t)
	root := shell.Session().Root()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0644))

	// "copy", "rename", "list" and "memory" are aliases as bare
	// tokens but phrase verbs in a full sentence. The sentence must
	// not die on the alias's arity.
	require.NoError(t, shell.Execute("copy a.txt to b.txt"))
	assert.FileExists(t, filepath.Join(root, "b.txt"))

	require.NoError(t, shell.Execute("rename a.txt to c.txt"))
	assert.FileExists(t, filepath.Join(root, "c.txt"))
	assert.NoFileExists(t, filepath.Join(root, "a.txt"))

	require.NoError(t, shell.Execute("list the files"))
	assert.Contains(t, out.String(), "b.txt")

	// mem itself can fail on exotic platforms; what must not come
	// back is "usage" being treated as a positional argument.
	err := shell.Execute("memory usage")
	assert.NotErrorIs(t, err, &commands.ValidationError{})
}

func TestExecutePathEscapeRejected(t *testing.T) {
	shell, _ := newShell(t)

	// The phrase resolves to cd, but the sandbox rejects the target
	// at execution time.
	err := shell.Execute("go to ../../etc")
	require.Error(t, err)
	assert.ErrorIs(t, err, &sandbox.EscapeError{})
	assert.Equal(t, "/", shell.Session().RelCwd())
}

func TestExecuteArityMismatch(t *testing.T) {
	shell, _ := newShell(t)

	err := shell.Execute("cp onlyone")
	require.Error(t, err)
	assert.ErrorIs(t, err, &commands.ValidationError{})
}

func TestExecuteNoMatch(t *testing.T) {
	shell, _ := newShell(t)

	err := shell.Execute("frobnicate the whatsit")
	require.Error(t, err)
	var noMatch *resolver.NoMatchError
	require.ErrorAs(t, err, &noMatch)
	assert.Empty(t, noMatch.Suggestions)
}

func TestExecuteTypoSuggestion(t *testing.T) {
	shell, _ := newShell(t)

	err := shell.Execute("mkdri")
	require.Error(t, err)
	var unknown *commands.UnknownCommandError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, unknown.Name, "mkdir")
}

func TestHistoryRecordedOnFailure(t *testing.T) {
	shell, _ := newShell(t)

	_ = shell.Execute("ls")
	_ = shell.Execute("frobnicate the whatsit")

	lines := shell.Session().History()
	require.Len(t, lines, 2)
	assert.Equal(t, "frobnicate the whatsit", lines[1])

	entries, err := shell.store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].OK)
	assert.False(t, entries[1].OK)
}

func TestExecuteEmptyLineIgnored(t *testing.T) {
	shell, _ := newShell(t)
	require.NoError(t, shell.Execute("   "))
	assert.Empty(t, shell.Session().History())
}

func TestExitSetsQuit(t *testing.T) {
	shell, _ := newShell(t)
	require.NoError(t, shell.Execute("exit"))
	assert.True(t, shell.quit)
}

func TestParseArgs(t *testing.T) {
	args := parseArgs([]string{"--root", "/tmp", "-c", "ls"})
	assert.Equal(t, "/tmp", args.Root)
	assert.Equal(t, "ls", args.Exec)

	args = parseArgs([]string{"--version"})
	assert.True(t, args.ShowVersion)

	args = parseArgs(nil)
	assert.False(t, args.ShowHelp)
}

func TestErrorsAreNotFatal(t *testing.T) {
	shell, out := newShell(t)

	shell.printError(errors.New("boom"))
	assert.Contains(t, out.String(), "boom")

	out.Reset()
	shell.printError(&resolver.NoMatchError{Input: "x", Suggestions: []string{"ls", "cd"}})
	assert.Contains(t, out.String(), "did you mean")
}
