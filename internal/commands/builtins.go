// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// builtins.go - command registration and the shell's own commands.
package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/nlterm/internal/format"
	"github.com/jeranaias/nlterm/internal/styles"
)

// Command categories.
const (
	CategoryFS     = "filesystem"
	CategorySystem = "system"
	CategoryCode   = "code"
	CategoryShell  = "shell"
)

// registerBuiltins wires up the full built-in command set. Called once
// from NewRegistry; duplicate registrations panic.
func (r *Registry) registerBuiltins() {
	// Filesystem
	r.Register(&Command{
		Name: "ls", Aliases: []string{"dir", "list"},
		Description: "List directory contents",
		Usage:       "## ls\n\n`ls [-l] [-a] [path]`\n\n- `-l` long listing with mode, size and mtime\n- `-a` include dotfiles",
		Category:    CategoryFS,
		MinArgs:     0, MaxArgs: 1,
		Handler: cmdLs,
	})
	r.Register(&Command{
		Name:        "cd",
		Description: "Change the current directory",
		Usage:       "## cd\n\n`cd [path]`\n\nWithout arguments returns to the root. Paths are confined to the sandbox.",
		Category:    CategoryFS,
		MinArgs:     0, MaxArgs: 1,
		Handler: cmdCd,
	})
	r.Register(&Command{
		Name:        "pwd",
		Description: "Print the current directory",
		Category:    CategoryFS,
		MinArgs:     0, MaxArgs: 0,
		Handler: cmdPwd,
	})
	r.Register(&Command{
		Name:        "mkdir",
		Description: "Create directories",
		Usage:       "## mkdir\n\n`mkdir [-p] <dir>...`\n\n- `-p` create parent directories as needed",
		Category:    CategoryFS,
		MinArgs:     1, MaxArgs: Unlimited,
		Handler: cmdMkdir,
	})
	r.Register(&Command{
		Name: "rm", Aliases: []string{"del"},
		Description: "Remove files or directories",
		Usage:       "## rm\n\n`rm [-r] [-f] <path>...`\n\n- `-r` remove directories recursively\n- `-f` ignore missing files",
		Category:    CategoryFS,
		MinArgs:     1, MaxArgs: Unlimited,
		Handler: cmdRm,
	})
	r.Register(&Command{
		Name:        "cat",
		Description: "Print file contents (syntax highlighted on a TTY)",
		Category:    CategoryFS,
		MinArgs:     1, MaxArgs: Unlimited,
		Handler: cmdCat,
	})
	r.Register(&Command{
		Name:        "touch",
		Description: "Create empty files",
		Category:    CategoryFS,
		MinArgs:     1, MaxArgs: Unlimited,
		Handler: cmdTouch,
	})
	r.Register(&Command{
		Name: "cp", Aliases: []string{"copy"},
		Description: "Copy a file or directory",
		Usage:       "## cp\n\n`cp [-r] <src> <dst>`\n\n- `-r` copy directories recursively",
		Category:    CategoryFS,
		MinArgs:     2, MaxArgs: 2,
		Handler: cmdCp,
	})
	r.Register(&Command{
		Name: "mv", Aliases: []string{"move", "rename"},
		Description: "Move or rename a file or directory",
		Category:    CategoryFS,
		MinArgs:     2, MaxArgs: 2,
		Handler: cmdMv,
	})
	r.Register(&Command{
		Name:        "find",
		Description: "Find files matching a glob pattern",
		Usage:       "## find\n\n`find <pattern> [path]`\n\nMatches entry names against a glob pattern, recursively.",
		Category:    CategoryFS,
		MinArgs:     1, MaxArgs: 2,
		Handler: cmdFind,
	})
	r.Register(&Command{
		Name:        "wc",
		Description: "Count lines, words and bytes",
		Category:    CategoryFS,
		MinArgs:     1, MaxArgs: Unlimited,
		Handler: cmdWc,
	})
	r.Register(&Command{
		Name:        "head",
		Description: "Print the first lines of a file",
		Usage:       "## head\n\n`head [-n N] <file>`",
		Category:    CategoryFS,
		MinArgs:     1, MaxArgs: 1,
		ValueFlags: []string{"n"},
		Handler:    cmdHead,
	})
	r.Register(&Command{
		Name:        "tail",
		Description: "Print the last lines of a file",
		Usage:       "## tail\n\n`tail [-n N] <file>`",
		Category:    CategoryFS,
		MinArgs:     1, MaxArgs: 1,
		ValueFlags: []string{"n"},
		Handler:    cmdTail,
	})
	r.Register(&Command{
		Name:        "watch",
		Description: "Stream filesystem events for a path until interrupted",
		Usage:       "## watch\n\n`watch [path]`\n\nPrints create/write/remove/rename events. Ctrl-C stops.",
		Category:    CategoryFS,
		MinArgs:     0, MaxArgs: 1,
		Handler: cmdWatch,
	})

	// System monitoring
	r.Register(&Command{
		Name:        "cpu",
		Description: "Show CPU usage per core",
		Category:    CategorySystem,
		MinArgs:     0, MaxArgs: 0,
		Handler: cmdCPU,
	})
	r.Register(&Command{
		Name: "mem", Aliases: []string{"memory"},
		Description: "Show memory usage",
		Category:    CategorySystem,
		MinArgs:     0, MaxArgs: 0,
		Handler: cmdMem,
	})
	r.Register(&Command{
		Name: "ps", Aliases: []string{"processes"},
		Description: "Show top processes by CPU",
		Usage:       "## ps\n\n`ps [-n N]`\n\nShows the top N processes by CPU usage (default 10).",
		Category:    CategorySystem,
		MinArgs:     0, MaxArgs: 0,
		ValueFlags: []string{"n"},
		Handler:    cmdPs,
	})
	r.Register(&Command{
		Name:        "disk",
		Description: "Show disk usage for the sandbox root",
		Category:    CategorySystem,
		MinArgs:     0, MaxArgs: 0,
		Handler: cmdDisk,
	})
	r.Register(&Command{
		Name:        "uptime",
		Description: "Show system uptime",
		Category:    CategorySystem,
		MinArgs:     0, MaxArgs: 0,
		Handler: cmdUptime,
	})
	r.Register(&Command{
		Name: "net", Aliases: []string{"network"},
		Description: "Show network interface counters",
		Category:    CategorySystem,
		MinArgs:     0, MaxArgs: 0,
		Handler: cmdNet,
	})

	// Code assistance
	r.Register(&Command{
		Name:        "analyze",
		Description: "Analyze a source file with the code-assistance service",
		Usage:       "## analyze\n\n`analyze [-t type] <file>`\n\n- `-t` narrow the review: security, performance or style\n\nRequires NLTERM_ASSIST_KEY.",
		Category:    CategoryCode,
		MinArgs:     1, MaxArgs: 1,
		ValueFlags: []string{"t"},
		Handler:    cmdAnalyze,
	})
	r.Register(&Command{
		Name:        "generate",
		Description: "Generate code from a prompt",
		Usage:       "## generate\n\n`generate [-l lang] [-o file] <prompt>...`\n\n- `-l` target language (default python)\n- `-o` write the generated code to a file\n\nRequires NLTERM_ASSIST_KEY.",
		Category:    CategoryCode,
		MinArgs:     1, MaxArgs: Unlimited,
		ValueFlags: []string{"l", "o"},
		Handler:    cmdGenerate,
	})

	// Shell
	r.Register(&Command{
		Name: "help", Aliases: []string{"?"},
		Description: "Show command help",
		Usage:       "## help\n\n`help [command]`",
		Category:    CategoryShell,
		MinArgs:     0, MaxArgs: 1,
		Handler: cmdHelp,
	})
	r.Register(&Command{
		Name: "history", Aliases: []string{"hist"},
		Description: "Show or search the command history",
		Usage:       "## history\n\n`history [term]`\n\nWithout arguments shows recent commands; with a term searches the full log.",
		Category:    CategoryShell,
		MinArgs:     0, MaxArgs: 1,
		Handler: cmdHistory,
	})
	r.Register(&Command{
		Name: "clear", Aliases: []string{"cls"},
		Description: "Clear the screen",
		Category:    CategoryShell,
		MinArgs:     0, MaxArgs: 0,
		Handler: cmdClear,
	})
	r.Register(&Command{
		Name: "exit", Aliases: []string{"quit", "bye"},
		Description: "Leave the shell",
		Category:    CategoryShell,
		MinArgs:     0, MaxArgs: 0,
		Handler: cmdExit,
	})
}

// =============================================================================
// SHELL COMMANDS
// =============================================================================

func cmdHelp(ctx *Context, args []string) error {
	if len(args) == 1 {
		cmd, ok := ctx.Registry.Get(args[0])
		if !ok {
			return &UnknownCommandError{Name: args[0]}
		}
		return printUsage(ctx, cmd)
	}

	for _, category := range ctx.Registry.Categories() {
		fmt.Fprintln(ctx.Out, styles.Header.Render(category))
		rows := [][]string{}
		for _, cmd := range ctx.Registry.ByCategory(category) {
			name := cmd.Name
			if len(cmd.Aliases) > 0 {
				name += " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			rows = append(rows, []string{"  " + name, cmd.Description})
		}
		fmt.Fprint(ctx.Out, format.Table(rows, false))
		fmt.Fprintln(ctx.Out)
	}
	fmt.Fprintln(ctx.Out, styles.Dim.Render("Plain English works too: try \"show me the files\"."))
	return nil
}

// printUsage renders a command's markdown usage through glamour,
// falling back to plain text off-terminal.
func printUsage(ctx *Context, cmd *Command) error {
	usage := cmd.Usage
	if usage == "" {
		usage = fmt.Sprintf("## %s\n\n%s", cmd.Name, cmd.Description)
	}

	if styles.IsTerminal() {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(styles.Width()),
		)
		if err == nil {
			if out, err := renderer.Render(usage); err == nil {
				fmt.Fprint(ctx.Out, out)
				return nil
			}
		}
	}
	fmt.Fprintln(ctx.Out, usage)
	return nil
}

func cmdHistory(ctx *Context, args []string) error {
	if ctx.History == nil {
		// No persistent log; fall back to the session's own record.
		for i, line := range ctx.Session.History() {
			fmt.Fprintf(ctx.Out, "%4d  %s\n", i+1, line)
		}
		return nil
	}

	if len(args) == 1 {
		found, serr := ctx.History.Search(args[0])
		if serr != nil {
			return serr
		}
		for _, e := range found {
			printHistoryEntry(ctx, e.ID, e.Line, e.OK)
		}
		return nil
	}

	entries, err := ctx.History.Recent(20)
	if err != nil {
		return err
	}
	for _, e := range entries {
		printHistoryEntry(ctx, e.ID, e.Line, e.OK)
	}
	return nil
}

func printHistoryEntry(ctx *Context, id int64, line string, ok bool) {
	marker := " "
	if !ok {
		marker = styles.Error.Render("!")
	}
	fmt.Fprintf(ctx.Out, "%4d %s %s\n", id, marker, line)
}

func cmdClear(ctx *Context, args []string) error {
	// ANSI clear screen and home cursor.
	fmt.Fprint(ctx.Out, "\x1b[2J\x1b[H")
	return nil
}

func cmdExit(ctx *Context, args []string) error {
	if ctx.Quit != nil {
		ctx.Quit()
	}
	return nil
}
