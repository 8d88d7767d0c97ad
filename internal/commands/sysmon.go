// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sysmon.go - system monitoring commands backed by gopsutil.
package commands

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/jeranaias/nlterm/internal/format"
	"github.com/jeranaias/nlterm/internal/styles"
)

// cpuSampleInterval is how long cpu percent sampling blocks. Short
// enough to feel instant at the prompt.
const cpuSampleInterval = 200 * time.Millisecond

func cmdCPU(ctx *Context, args []string) error {
	total, err := cpu.Percent(cpuSampleInterval, false)
	if err != nil {
		return fmt.Errorf("cpu: %w", err)
	}
	perCore, err := cpu.Percent(cpuSampleInterval, true)
	if err != nil {
		return fmt.Errorf("cpu: %w", err)
	}

	if len(total) > 0 {
		fmt.Fprintln(ctx.Out, styles.Header.Render("CPU usage"))
		fmt.Fprintf(ctx.Out, "total: %s\n", format.Percent(total[0]))
	}
	rows := [][]string{{"CORE", "USAGE"}}
	for i, pct := range perCore {
		rows = append(rows, []string{fmt.Sprintf("cpu%d", i), format.Percent(pct)})
	}
	fmt.Fprint(ctx.Out, format.Table(rows, true))
	return nil
}

func cmdMem(ctx *Context, args []string) error {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Errorf("mem: %w", err)
	}

	fmt.Fprintln(ctx.Out, styles.Header.Render("Memory"))
	rows := [][]string{
		{"total", format.Size(vm.Total)},
		{"used", fmt.Sprintf("%s (%s)", format.Size(vm.Used), format.Percent(vm.UsedPercent))},
		{"available", format.Size(vm.Available)},
	}
	fmt.Fprint(ctx.Out, format.Table(rows, false))
	return nil
}

func cmdPs(ctx *Context, args []string) error {
	flags, _ := ParseFlags(args, "n")
	limit := 10
	if v, ok := flags["n"]; ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("ps: invalid count %q", v)
		}
		limit = parsed
	}

	procs, err := process.Processes()
	if err != nil {
		return fmt.Errorf("ps: %w", err)
	}

	type procRow struct {
		pid  int32
		name string
		cpu  float64
		mem  float32
	}
	var rows []procRow
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			// Processes can vanish between listing and inspection.
			continue
		}
		cpuPct, _ := p.CPUPercent()
		memPct, _ := p.MemoryPercent()
		rows = append(rows, procRow{pid: p.Pid, name: name, cpu: cpuPct, mem: memPct})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].cpu > rows[j].cpu })
	if len(rows) > limit {
		rows = rows[:limit]
	}

	table := [][]string{{"PID", "NAME", "CPU", "MEM"}}
	for _, r := range rows {
		table = append(table, []string{
			fmt.Sprintf("%d", r.pid),
			r.name,
			format.Percent(r.cpu),
			format.Percent(float64(r.mem)),
		})
	}
	fmt.Fprint(ctx.Out, format.Table(table, true))
	return nil
}

func cmdDisk(ctx *Context, args []string) error {
	usage, err := disk.Usage(ctx.Session.Root())
	if err != nil {
		return fmt.Errorf("disk: %w", err)
	}

	fmt.Fprintln(ctx.Out, styles.Header.Render("Disk usage for "+ctx.Session.Root()))
	rows := [][]string{
		{"total", format.Size(usage.Total)},
		{"used", fmt.Sprintf("%s (%s)", format.Size(usage.Used), format.Percent(usage.UsedPercent))},
		{"free", format.Size(usage.Free)},
	}
	fmt.Fprint(ctx.Out, format.Table(rows, false))
	return nil
}

func cmdUptime(ctx *Context, args []string) error {
	seconds, err := host.Uptime()
	if err != nil {
		return fmt.Errorf("uptime: %w", err)
	}
	info, err := host.Info()
	if err != nil {
		return fmt.Errorf("uptime: %w", err)
	}

	fmt.Fprintf(ctx.Out, "up %s (%s %s, booted %s)\n",
		format.Duration(time.Duration(seconds)*time.Second),
		info.Platform,
		info.PlatformVersion,
		time.Unix(int64(info.BootTime), 0).Format("2006-01-02 15:04"),
	)
	return nil
}

func cmdNet(ctx *Context, args []string) error {
	counters, err := net.IOCounters(true)
	if err != nil {
		return fmt.Errorf("net: %w", err)
	}

	rows := [][]string{{"IFACE", "RX", "TX", "RX PKTS", "TX PKTS"}}
	for _, c := range counters {
		rows = append(rows, []string{
			c.Name,
			format.Size(c.BytesRecv),
			format.Size(c.BytesSent),
			fmt.Sprintf("%d", c.PacketsRecv),
			fmt.Sprintf("%d", c.PacketsSent),
		})
	}
	fmt.Fprint(ctx.Out, format.Table(rows, true))
	return nil
}
