// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the shell command system: the registry,
// argument validation, and the built-in command set.
//
// # Key Types
//
//   - Command: a named command with aliases, arity bounds and a handler
//   - Registry: lookup by name or alias, with deterministic listing order
//   - Context: the dependencies a handler may use (session, config,
//     history, output)
//
// # Built-in Commands
//
// Filesystem: ls, cd, pwd, mkdir, rm, touch, cat, head, tail, wc, cp,
// mv, find, watch. System: cpu, mem, ps, disk, uptime, net. Code:
// analyze, generate. Shell: help, history, clear, exit.
//
// # Usage
//
// Look up and run a command with validated arguments:
//
//	cmd, ok := registry.Get("ls")
//	if ok && commands.ValidateArgs(cmd, args) == nil {
//	    err = cmd.Handler(ctx, args)
//	}
//
// Every path-taking handler resolves its targets through the sandbox
// package; handlers never touch the disk with raw user input.
package commands
