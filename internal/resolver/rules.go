// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// rules.go - the ordered phrase rule table.
package resolver

import "regexp"

// builtinRules returns the phrase table. Order is significant: more
// specific phrasings sit above the generic ones they would otherwise
// shadow ("show me the files" must win before any "show ... file X"
// rule sees it). Input is lowercased before matching.
func builtinRules() []rule {
	mk := func(pattern, command string, fixed ...string) rule {
		return rule{
			re:        regexp.MustCompile(pattern),
			command:   command,
			fixedArgs: fixed,
		}
	}

	return []rule{
		// Listing
		mk(`^show (?:me )?(?:the )?files$`, "ls"),
		mk(`^list (?:the )?files$`, "ls"),
		mk(`^list everything$`, "ls"),
		mk(`^what(?:'?s| is) (?:in here|here)\??$`, "ls"),
		mk(`^show (?:me )?(?:the )?contents$`, "ls"),
		mk(`^show (?:me )?(?:the )?hidden files$`, "ls", "-a"),

		// Navigation
		mk(`^go back$`, "cd", ".."),
		mk(`^go up$`, "cd", ".."),
		mk(`^go home$`, "cd", "/"),
		mk(`^go (?:in)?to (.+)$`, "cd"),
		mk(`^change (?:directory|dir) to (.+)$`, "cd"),
		mk(`^navigate to (.+)$`, "cd"),
		mk(`^take me to (.+)$`, "cd"),
		mk(`^enter (.+)$`, "cd"),
		mk(`^where am i\??$`, "pwd"),
		mk(`^current (?:directory|dir|folder)\??$`, "pwd"),
		mk(`^show (?:me )?(?:the )?current path$`, "pwd"),

		// Creation
		mk(`^create (?:a )?(?:new )?(?:folder|directory)(?: called| named)? (.+)$`, "mkdir"),
		mk(`^make (?:a )?(?:new )?(?:folder|directory)(?: called| named)? (.+)$`, "mkdir"),
		mk(`^new folder (.+)$`, "mkdir"),
		mk(`^create (?:a )?(?:new )?file(?: called| named)? (.+)$`, "touch"),
		mk(`^make (?:a )?(?:new )?file(?: called| named)? (.+)$`, "touch"),

		// Removal
		mk(`^delete (?:the )?(?:folder|directory) (.+)$`, "rm", "-r"),
		mk(`^delete (?:the )?(?:file )?(.+)$`, "rm"),
		mk(`^remove (?:the )?(?:file )?(.+)$`, "rm"),
		mk(`^get rid of (.+)$`, "rm"),
		mk(`^trash (.+)$`, "rm"),

		// Reading
		mk(`^show (?:me )?(?:the )?file (.+)$`, "cat"),
		mk(`^read (?:the )?(?:file )?(.+)$`, "cat"),
		mk(`^open (?:the )?(?:file )?(.+)$`, "cat"),
		mk(`^what(?:'?s| is) in (?:the )?(?:file )?(.+)\??$`, "cat"),

		// Copy / move
		mk(`^copy (.+?) to (.+)$`, "cp"),
		mk(`^duplicate (.+)$`, "cp"),
		mk(`^move (.+?) to (.+)$`, "mv"),
		mk(`^rename (.+?) to (.+)$`, "mv"),

		// Search
		mk(`^find (?:all )?(?:files )?(?:matching |named |called )?(.+)$`, "find"),
		mk(`^search for (.+)$`, "find"),
		mk(`^look for (.+)$`, "find"),

		// Counting
		mk(`^count (?:the )?(?:lines|words) in (.+)$`, "wc"),
		mk(`^how (?:big|long) is (.+)\??$`, "wc"),

		// System monitoring
		mk(`^(?:show|check) (?:me )?(?:the )?cpu(?: usage)?$`, "cpu"),
		mk(`^how(?:'?s| is) (?:the )?cpu(?: doing)?\??$`, "cpu"),
		mk(`^cpu usage$`, "cpu"),
		mk(`^(?:show|check) (?:me )?(?:the )?memory(?: usage)?$`, "mem"),
		mk(`^how much (?:memory|ram)(?: is free| is left)?\??$`, "mem"),
		mk(`^memory usage$`, "mem"),
		mk(`^(?:show|list) (?:me )?(?:the )?(?:running )?processes$`, "ps"),
		mk(`^what(?:'?s| is) running\??$`, "ps"),
		mk(`^disk (?:space|usage)$`, "disk"),
		mk(`^how much (?:disk )?space(?: is left| is free)?\??$`, "disk"),
		mk(`^how long (?:has the system been|have we been) (?:up|running)\??$`, "uptime"),
		mk(`^(?:show|check) (?:the )?uptime$`, "uptime"),
		mk(`^(?:show|check) (?:me )?(?:the )?network(?: usage| stats| activity)?$`, "net"),

		// Code assistance
		mk(`^analy[sz]e (?:the )?(?:code in )?(.+)$`, "analyze"),
		mk(`^review (?:the )?code in (.+)$`, "analyze"),
		mk(`^(?:write|generate) (?:me )?(?:some )?code (?:that|to|for) (.+)$`, "generate"),

		// Shell
		mk(`^show (?:me )?(?:the )?history$`, "history"),
		mk(`^what (?:have|did) i (?:run|done|do)\??$`, "history"),
		mk(`^clear (?:the )?screen$`, "clear"),
		mk(`^help(?: me)?\??$`, "help"),
		mk(`^what can (?:you|i) do\??$`, "help"),
		mk(`^(?:goodbye|bye|quit|exit|leave)$`, "exit"),
		mk(`^(?:i'?m done|that's all)$`, "exit"),
	}
}
