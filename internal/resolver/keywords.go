// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// keywords.go - keyword fallback scoring for phrases no rule matched.
package resolver

// keywordSet associates a command with the vocabulary that hints at
// it. Scoring counts distinct keyword hits among the input tokens.
type keywordSet struct {
	command  string
	keywords map[string]bool
}

func (k keywordSet) score(tokens []string) int {
	seen := make(map[string]bool)
	score := 0
	for _, tok := range tokens {
		if k.keywords[tok] && !seen[tok] {
			seen[tok] = true
			score++
		}
	}
	return score
}

func set(command string, words ...string) keywordSet {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return keywordSet{command: command, keywords: m}
}

// builtinKeywords returns the fallback vocabulary. Order matters for
// tie-breaking: earlier entries win equal scores.
func builtinKeywords() []keywordSet {
	return []keywordSet{
		set("ls", "show", "list", "files", "contents", "listing"),
		set("cd", "go", "navigate", "enter", "into"),
		set("pwd", "where", "current", "location", "path"),
		set("mkdir", "create", "make", "folder", "directory"),
		set("rm", "delete", "remove", "trash", "erase"),
		set("cat", "read", "open", "view", "display"),
		set("touch", "file", "empty"),
		set("cp", "copy", "duplicate"),
		set("mv", "move", "rename"),
		set("find", "find", "search", "locate", "look"),
		set("wc", "count", "lines", "words"),
		set("cpu", "cpu", "processor", "load"),
		set("mem", "memory", "ram"),
		set("ps", "processes", "process", "running"),
		set("disk", "disk", "space", "storage"),
		set("uptime", "uptime", "booted"),
		set("net", "network", "bandwidth", "traffic"),
		set("analyze", "analyze", "analyse", "review", "inspect"),
		set("generate", "generate", "write", "code"),
		set("history", "history", "ran", "typed"),
		set("help", "help", "commands", "usage"),
		set("clear", "clear", "screen"),
		set("exit", "exit", "quit", "goodbye", "leave", "bye"),
	}
}
