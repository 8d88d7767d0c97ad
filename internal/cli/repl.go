// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - the interactive shell loop and command dispatcher.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/nlterm/internal/assist"
	"github.com/jeranaias/nlterm/internal/commands"
	"github.com/jeranaias/nlterm/internal/config"
	"github.com/jeranaias/nlterm/internal/history"
	"github.com/jeranaias/nlterm/internal/resolver"
	"github.com/jeranaias/nlterm/internal/sandbox"
	"github.com/jeranaias/nlterm/internal/session"
	"github.com/jeranaias/nlterm/internal/styles"
)

// =============================================================================
// SHELL
// =============================================================================

// Shell wires the registry, resolver, session and history into one
// dispatch loop. Command execution is single-threaded: one command
// finishes before the next line is read.
type Shell struct {
	registry *commands.Registry
	resolver *resolver.Resolver
	sess     *session.State
	cfg      *config.Config
	store    *history.Store // nil when the log cannot be opened
	assist   *assist.Client
	out      io.Writer
	quit     bool
}

// NewShell builds a shell for the configured sandbox root. The
// history log is best-effort: the shell runs without it if the
// database cannot be opened.
func NewShell(cfg *config.Config) (*Shell, error) {
	sess, err := session.New(cfg.Root)
	if err != nil {
		return nil, err
	}

	store, err := history.Open(cfg.HistoryDB, cfg.HistoryLimit)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.Warning.Render("history log unavailable: "+err.Error()))
		store = nil
	}

	assistClient := assist.NewClient(cfg.AssistKey).WithModel(cfg.AssistModel)
	if cfg.AssistURL != "" {
		assistClient.WithBaseURL(cfg.AssistURL)
	}

	return &Shell{
		registry: commands.NewRegistry(),
		resolver: resolver.New(cfg.Suggestions),
		sess:     sess,
		cfg:      cfg,
		store:    store,
		assist:   assistClient,
		out:      os.Stdout,
	}, nil
}

// Close releases the history log.
func (s *Shell) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// Session exposes the session state, for the prompt and tests.
func (s *Shell) Session() *session.State { return s.sess }

// =============================================================================
// DISPATCH
// =============================================================================

// Execute dispatches one input line: literal command lookup first,
// then natural-language resolution. The line lands in history either
// way, including on failure.
func (s *Shell) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	res, resolveErr := s.dispatchTarget(line)

	var execErr error
	if resolveErr != nil {
		execErr = resolveErr
	} else {
		execErr = s.runCommand(res.Command, res.Args)
	}

	s.sess.Record(line)
	if s.store != nil {
		name := ""
		if resolveErr == nil {
			name = res.Command
		}
		if err := s.store.Append(s.sess.ID, line, name, execErr == nil); err != nil {
			fmt.Fprintln(os.Stderr, styles.Warning.Render("history: "+err.Error()))
		}
	}
	return execErr
}

// dispatchTarget decides what a line means without running anything.
func (s *Shell) dispatchTarget(line string) (resolver.Resolution, error) {
	tokens := commands.SplitLine(line)
	if len(tokens) == 0 {
		return resolver.Resolution{}, &resolver.NoMatchError{Input: line}
	}

	// Literal first: a registered name or alias wins over any phrase
	// interpretation, as long as the rest of the line fits its arity.
	// Aliases like "copy" and "list" double as phrase verbs ("copy
	// a.txt to b.txt"), so an arity mismatch hands the whole line to
	// the resolver before the mismatch is surfaced.
	if cmd, ok := s.registry.Get(tokens[0]); ok {
		lit := resolver.Resolution{Command: tokens[0], Args: tokens[1:]}
		if commands.ValidateArgs(cmd, tokens[1:]) != nil {
			if res, err := s.resolver.Resolve(line); err == nil {
				return res, nil
			}
		}
		return lit, nil
	}

	res, err := s.resolver.Resolve(line)
	if err == nil {
		return res, nil
	}

	// Single unknown token: more likely a typo than a phrase.
	var noMatch *resolver.NoMatchError
	if errors.As(err, &noMatch) && len(tokens) == 1 {
		if near := resolver.Nearest(tokens[0], s.registry.Names()); near != "" {
			return resolver.Resolution{}, &commands.UnknownCommandError{Name: tokens[0] + " (did you mean: " + near + "?)"}
		}
		return resolver.Resolution{}, &commands.UnknownCommandError{Name: tokens[0]}
	}
	return resolver.Resolution{}, err
}

func (s *Shell) runCommand(name string, args []string) error {
	cmd, ok := s.registry.Get(name)
	if !ok {
		return &commands.UnknownCommandError{Name: name}
	}
	if err := commands.ValidateArgs(cmd, args); err != nil {
		return err
	}
	ctx := &commands.Context{
		Session:  s.sess,
		Config:   s.cfg,
		Registry: s.registry,
		History:  s.store,
		Assist:   s.assist,
		Out:      s.out,
		Quit:     func() { s.quit = true },
	}
	return cmd.Handler(ctx, args)
}

// =============================================================================
// INTERACTIVE LOOP
// =============================================================================

// Run reads lines until exit or EOF. Every command error is printed
// and swallowed here; only terminal I/O failures escape.
func (s *Shell) Run() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	line.SetCompleter(func(prefix string) []string {
		var out []string
		for _, name := range s.registry.Names() {
			if strings.HasPrefix(name, strings.ToLower(prefix)) {
				out = append(out, name)
			}
		}
		return out
	})

	s.loadLinerHistory(line)
	defer s.saveLinerHistory(line)

	fmt.Fprintln(s.out, styles.Prompt.Render("nlterm "+Version)+styles.Dim.Render("  (type help, or just say what you want)"))

	for !s.quit {
		input, err := line.Prompt(s.prompt())
		if err == liner.ErrPromptAborted {
			// Ctrl-C clears the current line, not the shell.
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(s.out)
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		if err := s.Execute(input); err != nil {
			s.printError(err)
		}
	}

	fmt.Fprintln(s.out, styles.Dim.Render("goodbye"))
	return nil
}

// prompt renders "nlterm:/docs> ". Kept free of ANSI escapes so liner
// measures the width correctly.
func (s *Shell) prompt() string {
	return s.cfg.Prompt + ":" + s.sess.RelCwd() + "> "
}

// printError renders a command failure at the loop boundary. Nothing
// here is fatal.
func (s *Shell) printError(err error) {
	var noMatch *resolver.NoMatchError
	switch {
	case errors.Is(err, &sandbox.EscapeError{}):
		fmt.Fprintln(s.out, styles.Error.Render(err.Error()))
	case errors.As(err, &noMatch):
		fmt.Fprintln(s.out, styles.Warning.Render("I don't understand: "+noMatch.Input))
		if len(noMatch.Suggestions) > 0 {
			fmt.Fprintln(s.out, styles.Info.Render("did you mean: "+strings.Join(noMatch.Suggestions, ", ")+"?"))
		}
	default:
		fmt.Fprintln(s.out, styles.Error.Render(err.Error()))
	}
}

// =============================================================================
// READLINE HISTORY FILE
// =============================================================================

func (s *Shell) loadLinerHistory(line *liner.State) {
	f, err := os.Open(s.cfg.HistoryFile)
	if err != nil {
		return
	}
	defer f.Close()
	line.ReadHistory(f)
}

func (s *Shell) saveLinerHistory(line *liner.State) {
	if err := os.MkdirAll(filepath.Dir(s.cfg.HistoryFile), 0700); err != nil {
		fmt.Fprintln(os.Stderr, styles.Warning.Render("cannot save history: "+err.Error()))
		return
	}
	f, err := os.OpenFile(s.cfg.HistoryFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.Warning.Render("cannot save history: "+err.Error()))
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
