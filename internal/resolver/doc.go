// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resolver maps natural-language input to shell commands.
//
// The resolver is pure: it reads nothing but its input and always
// returns the same answer for the same phrase. Resolution runs in two
// stages: an ordered regex rule table where the first match wins, then
// a keyword-scoring fallback for phrases no rule covers. When neither
// stage is confident the caller gets a NoMatchError carrying ranked
// suggestions.
//
// # Key Types
//
//   - Resolver: the two-stage phrase matcher
//   - Resolution: the chosen command plus extracted arguments
//   - NoMatchError: resolution failure with "did you mean" candidates
//
// # Usage
//
//	r := resolver.New(3)
//	res, err := r.Resolve("create a folder called demo")
//	// res.Command == "mkdir", res.Args == []string{"demo"}
//
// Nearest supplies Levenshtein-based typo correction for single
// unknown tokens ("mkdri" -> "mkdir").
package resolver
