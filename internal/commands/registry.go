// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// registry.go - command definitions and name/alias lookup.
package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/jeranaias/nlterm/internal/assist"
	"github.com/jeranaias/nlterm/internal/config"
	"github.com/jeranaias/nlterm/internal/history"
	"github.com/jeranaias/nlterm/internal/session"
)

// =============================================================================
// COMMAND TYPES
// =============================================================================

// Unlimited marks a command with no upper bound on arguments.
const Unlimited = -1

// Handler executes a command with already-validated arguments.
type Handler func(ctx *Context, args []string) error

// Command describes a registered shell command.
type Command struct {
	// Name is the primary command name (e.g., "ls").
	Name string

	// Aliases are alternative names (e.g., "dir" for "ls").
	Aliases []string

	// Description is a one-line summary shown in help listings.
	Description string

	// Usage is markdown usage text rendered by "help <cmd>".
	Usage string

	// Category groups commands in the help listing.
	Category string

	// MinArgs and MaxArgs bound the positional argument count after
	// flags are stripped. MaxArgs may be Unlimited.
	MinArgs int
	MaxArgs int

	// ValueFlags names the flags that consume the next token as a
	// value ("n" for -n 5).
	ValueFlags []string

	// Handler executes the command.
	Handler Handler
}

// Context carries the dependencies a handler may need. Handlers write
// through Out so tests can capture output.
type Context struct {
	Session  *session.State
	Config   *config.Config
	Registry *Registry
	History  *history.Store
	Assist   *assist.Client // nil when code assistance is not configured
	Out      io.Writer

	// Quit asks the REPL to exit after the current command.
	Quit func()
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string
	order    []string // registration order, for deterministic listings
}

// NewRegistry creates a registry pre-populated with the built-in
// command set.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command. Duplicate names or aliases are programming
// errors and panic at startup.
func (r *Registry) Register(cmd *Command) {
	if cmd.Name == "" {
		panic("commands: cannot register unnamed command")
	}
	if _, exists := r.commands[cmd.Name]; exists {
		panic(fmt.Sprintf("commands: duplicate command %q", cmd.Name))
	}
	if _, exists := r.aliases[cmd.Name]; exists {
		panic(fmt.Sprintf("commands: command %q collides with an alias", cmd.Name))
	}
	r.commands[cmd.Name] = cmd
	r.order = append(r.order, cmd.Name)

	for _, alias := range cmd.Aliases {
		if _, exists := r.commands[alias]; exists {
			panic(fmt.Sprintf("commands: alias %q collides with a command", alias))
		}
		if _, exists := r.aliases[alias]; exists {
			panic(fmt.Sprintf("commands: duplicate alias %q", alias))
		}
		r.aliases[alias] = cmd.Name
	}
}

// Get looks up a command by name or alias.
func (r *Registry) Get(name string) (*Command, bool) {
	if cmd, ok := r.commands[name]; ok {
		return cmd, true
	}
	if primary, ok := r.aliases[name]; ok {
		return r.commands[primary], true
	}
	return nil, false
}

// Names returns all primary command names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns all commands in registration order.
func (r *Registry) All() []*Command {
	out := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, cmd := range r.commands {
		if !seen[cmd.Category] {
			seen[cmd.Category] = true
			out = append(out, cmd.Category)
		}
	}
	sort.Strings(out)
	return out
}

// ByCategory returns the commands in a category, registration order.
func (r *Registry) ByCategory(category string) []*Command {
	var out []*Command
	for _, name := range r.order {
		if cmd := r.commands[name]; cmd.Category == category {
			out = append(out, cmd)
		}
	}
	return out
}
