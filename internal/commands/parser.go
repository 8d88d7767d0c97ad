// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// parser.go - input tokenization and argument validation.
package commands

import (
	"fmt"
	"strings"
)

// =============================================================================
// ERRORS
// =============================================================================

// ValidationError reports an arity mismatch before a handler runs.
type ValidationError struct {
	Command  string
	Got      int
	Expected string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: expected %s argument(s), got %d", e.Command, e.Expected, e.Got)
}

// Is reports whether target is a *ValidationError.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// UnknownCommandError reports a literal token that matched no
// registered command.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Name)
}

// Is reports whether target is an *UnknownCommandError.
func (e *UnknownCommandError) Is(target error) bool {
	_, ok := target.(*UnknownCommandError)
	return ok
}

// =============================================================================
// TOKENIZATION
// =============================================================================

// SplitLine tokenizes an input line, honoring single and double quotes
// and backslash escapes, so `mkdir "my folder"` yields two tokens.
func SplitLine(line string) []string {
	var tokens []string
	var current strings.Builder
	inQuote := false
	quoteChar := byte(0)
	escaped := false

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case escaped:
			current.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case inQuote:
			if c == quoteChar {
				inQuote = false
			} else {
				current.WriteByte(c)
			}
		case c == '"' || c == '\'':
			inQuote = true
			quoteChar = c
		case c == ' ' || c == '\t':
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// ParseFlags separates dash-flags from positional arguments. Flags
// named in valueFlags consume the following token as their value
// (-n 5). A bare "--" ends flag parsing. Flags may appear anywhere,
// matching the loose parsing of most small shells.
func ParseFlags(args []string, valueFlags ...string) (flags map[string]string, positional []string) {
	flags = make(map[string]string)
	takesValue := make(map[string]bool, len(valueFlags))
	for _, f := range valueFlags {
		takesValue[f] = true
	}

	terminated := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case terminated || !strings.HasPrefix(arg, "-") || arg == "-":
			positional = append(positional, arg)
		case arg == "--":
			terminated = true
		default:
			name := strings.TrimLeft(arg, "-")
			if takesValue[name] && i+1 < len(args) {
				flags[name] = args[i+1]
				i++
			} else {
				flags[name] = ""
			}
		}
	}
	return flags, positional
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidateArgs checks the positional argument count against the
// command's arity bounds. Runs before the handler; a failure means the
// handler is never called.
func ValidateArgs(cmd *Command, args []string) error {
	_, positional := ParseFlags(args, cmd.ValueFlags...)
	n := len(positional)

	if n < cmd.MinArgs || (cmd.MaxArgs != Unlimited && n > cmd.MaxArgs) {
		return &ValidationError{
			Command:  cmd.Name,
			Got:      n,
			Expected: expectedRange(cmd),
		}
	}
	return nil
}

func expectedRange(cmd *Command) string {
	switch {
	case cmd.MaxArgs == Unlimited:
		return fmt.Sprintf("at least %d", cmd.MinArgs)
	case cmd.MinArgs == cmd.MaxArgs:
		return fmt.Sprintf("%d", cmd.MinArgs)
	default:
		return fmt.Sprintf("%d-%d", cmd.MinArgs, cmd.MaxArgs)
	}
}
