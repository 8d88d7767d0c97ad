// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - command-line argument parsing and usage text.
package cli

import (
	"fmt"
	"os"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Args holds parsed command-line options.
type Args struct {
	// Root overrides the configured sandbox root.
	Root string

	// ConfigPath overrides the default config file location.
	ConfigPath string

	// Exec runs a single command line and exits instead of starting
	// the interactive loop.
	Exec string

	// ShowVersion prints version info and exits.
	ShowVersion bool

	// ShowHelp prints usage and exits.
	ShowHelp bool
}

// Parse interprets os.Args. Unknown flags are an error; Parse prints
// usage and exits on malformed input, matching small-tool convention.
func Parse() Args {
	return parseArgs(os.Args[1:])
}

func parseArgs(argv []string) Args {
	var args Args
	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "--root", "-r":
			if i+1 >= len(argv) {
				fatalUsage("missing value for --root")
			}
			args.Root = argv[i+1]
			i++
		case "--config":
			if i+1 >= len(argv) {
				fatalUsage("missing value for --config")
			}
			args.ConfigPath = argv[i+1]
			i++
		case "-c", "--exec":
			if i+1 >= len(argv) {
				fatalUsage("missing value for -c")
			}
			args.Exec = argv[i+1]
			i++
		case "--version", "-v":
			args.ShowVersion = true
		case "--help", "-h", "help":
			args.ShowHelp = true
		default:
			fatalUsage(fmt.Sprintf("unknown option: %s", argv[i]))
		}
	}
	return args
}

func fatalUsage(msg string) {
	fmt.Fprintf(os.Stderr, "nlterm: %s\n\n", msg)
	PrintUsage(os.Stderr)
	os.Exit(2)
}

// PrintUsage writes the top-level usage text.
func PrintUsage(w *os.File) {
	fmt.Fprint(w, `nlterm - a sandboxed shell that speaks plain English

Usage:
  nlterm [options]

Options:
  -r, --root DIR     sandbox root directory (default from config)
      --config FILE  config file (default ~/.nlterm/config.toml)
  -c, --exec CMD     run one command line and exit
  -v, --version      print version
  -h, --help         show this help

Inside the shell, type literal commands (ls -l docs) or plain
English ("create a folder called demo"). Type help for the full
command list.
`)
}

// PrintVersion writes version information.
func PrintVersion(w *os.File) {
	fmt.Fprintf(w, "nlterm %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
