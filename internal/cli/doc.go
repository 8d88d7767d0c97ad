// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides argument parsing and the interactive shell loop.
//
// The Shell ties the registry, resolver, session and history store
// into one dispatch path: literal command names win, full phrases fall
// through to the resolver, and every line lands in history whether it
// succeeded or not. Command errors are printed and swallowed at the
// loop boundary; only terminal I/O failures end the session.
package cli
