// nlterm - a sandboxed terminal shell that speaks plain English.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	"github.com/jeranaias/nlterm/internal/cli"
	"github.com/jeranaias/nlterm/internal/config"
	"github.com/jeranaias/nlterm/internal/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	args := cli.Parse()

	if args.ShowHelp {
		cli.PrintUsage(os.Stdout)
		return
	}
	if args.ShowVersion {
		cli.PrintVersion(os.Stdout)
		return
	}

	var cfg *config.Config
	var err error
	if args.ConfigPath != "" {
		cfg, err = config.LoadFrom(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err == nil && args.Root != "" {
		cfg.Root = args.Root
		err = cfg.Validate()
	}
	if err != nil {
		// A root that does not exist is the one fatal startup
		// condition; everything past this point recovers in the loop.
		fmt.Fprintf(os.Stderr, "nlterm: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	styles.Configure(cfg.Color)

	shell, err := cli.NewShell(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nlterm: %v\n", err)
		os.Exit(1)
	}
	defer shell.Close()

	if args.Exec != "" {
		if err := shell.Execute(args.Exec); err != nil {
			fmt.Fprintf(os.Stderr, "nlterm: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := shell.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "nlterm: %v\n", err)
		os.Exit(1)
	}
}
