// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch.go - live filesystem event stream for a sandboxed path.
package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/jeranaias/nlterm/internal/sandbox"
	"github.com/jeranaias/nlterm/internal/styles"
)

// watchRate caps event output at 20 lines/sec with a small burst, so
// a bulk copy into a watched directory cannot flood the terminal.
var watchRate = rate.Limit(20)

func cmdWatch(ctx *Context, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	path, err := resolve(ctx, target)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return pathErr("watch", target, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	fmt.Fprintln(ctx.Out, styles.Info.Render("watching "+sandbox.Rel(ctx.Session.Root(), path)+" (ctrl-c to stop)"))

	limiter := rate.NewLimiter(watchRate, 5)
	dropped := 0

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !limiter.Allow() {
				dropped++
				continue
			}
			fmt.Fprintf(ctx.Out, "%s %s\n",
				styles.Accent.Render(strings.ToLower(event.Op.String())),
				sandbox.Rel(ctx.Session.Root(), event.Name))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(ctx.Out, styles.Warning.Render("watch: "+err.Error()))
		case <-interrupt:
			if dropped > 0 {
				fmt.Fprintln(ctx.Out, styles.Dim.Render(fmt.Sprintf("(%d event(s) throttled)", dropped)))
			}
			return nil
		}
	}
}
