// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// resolver.go - two-stage phrase resolution: rules, then keywords.
package resolver

import (
	"fmt"
	"regexp"
	"strings"
)

// =============================================================================
// TYPES
// =============================================================================

// Resolution is a resolved command invocation.
type Resolution struct {
	Command string
	Args    []string
}

// NoMatchError reports input no rule or keyword could resolve.
// Suggestions holds up to the configured number of candidate command
// names, best first; it is empty when the input shares no vocabulary
// with any command.
type NoMatchError struct {
	Input       string
	Suggestions []string
}

func (e *NoMatchError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no matching command for: %s", e.Input)
	}
	return fmt.Sprintf("no matching command for: %s (did you mean: %s?)",
		e.Input, strings.Join(e.Suggestions, ", "))
}

// Is reports whether target is a *NoMatchError.
func (e *NoMatchError) Is(target error) bool {
	_, ok := target.(*NoMatchError)
	return ok
}

// rule is one phrase pattern. fixedArgs come first, then capture
// groups in order ("delete the folder X" yields rm -r X; "go back"
// yields cd .. with no captures).
type rule struct {
	re        *regexp.Regexp
	command   string
	fixedArgs []string
}

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver resolves phrases with an ordered rule table and a keyword
// fallback. Rules are evaluated top to bottom; the first match wins,
// so adding rules never changes the meaning of earlier ones.
type Resolver struct {
	rules          []rule
	keywords       []keywordSet
	maxSuggestions int
}

// New creates a resolver with the built-in rule table. maxSuggestions
// caps the "did you mean" list on failed resolution.
func New(maxSuggestions int) *Resolver {
	if maxSuggestions <= 0 {
		maxSuggestions = 3
	}
	return &Resolver{
		rules:          builtinRules(),
		keywords:       builtinKeywords(),
		maxSuggestions: maxSuggestions,
	}
}

// Resolve maps a phrase to a command invocation. Resolution order:
//
//  1. The ordered rule table, first match wins.
//  2. Keyword scoring: the phrase's tokens are scored against each
//     command's keyword set. The best-scoring command resolves when
//     its score is at least 2, or when it scores 1 and no other
//     command overlaps at all.
//
// Anything else is a *NoMatchError carrying ranked suggestions.
func (r *Resolver) Resolve(input string) (Resolution, error) {
	phrase := strings.TrimSpace(strings.ToLower(input))
	if phrase == "" {
		return Resolution{}, &NoMatchError{Input: input}
	}

	for _, rl := range r.rules {
		m := rl.re.FindStringSubmatch(phrase)
		if m == nil {
			continue
		}
		args := append([]string(nil), rl.fixedArgs...)
		for _, group := range m[1:] {
			group = strings.TrimSpace(group)
			if group != "" {
				args = append(args, group)
			}
		}
		return Resolution{Command: rl.command, Args: args}, nil
	}

	return r.resolveByKeywords(input, phrase)
}

type scoredCommand struct {
	command string
	score   int
}

func (r *Resolver) resolveByKeywords(original, phrase string) (Resolution, error) {
	tokens := strings.Fields(phrase)

	// Iterating keyword sets in registration order keeps ties
	// deterministic.
	var ranked []scoredCommand
	best := 0
	for _, ks := range r.keywords {
		score := ks.score(tokens)
		if score == 0 {
			continue
		}
		ranked = append(ranked, scoredCommand{command: ks.command, score: score})
		if score > best {
			best = score
		}
	}

	// A confident keyword match resolves directly: either two or more
	// keyword hits, or a single hit that no other command shares.
	if best >= 2 || len(ranked) == 1 {
		for _, cand := range ranked {
			if cand.score == best {
				return Resolution{Command: cand.command}, nil
			}
		}
	}

	// Otherwise rank the overlapping commands as suggestions, highest
	// score first, registration order within a band.
	suggestions := make([]string, 0, r.maxSuggestions)
	for s := best; s >= 1 && len(suggestions) < r.maxSuggestions; s-- {
		for _, cand := range ranked {
			if cand.score == s && len(suggestions) < r.maxSuggestions {
				suggestions = append(suggestions, cand.command)
			}
		}
	}
	return Resolution{}, &NoMatchError{Input: original, Suggestions: suggestions}
}
