/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"text/tabwriter"
	"time"

	tgraph "github.com/daoleno/tgraph"
	ps "github.com/mitchellh/go-ps"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewStatusCmd builds the status command: a snapshot of system health.
func NewStatusCmd() *cobra.Command {
	var chart bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a system health snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(chart)
		},
	}
	cmd.Flags().BoolVar(&chart, "chart", false, "draw usage bars below the report")
	return cmd
}

func runStatus(chart bool) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	if info, err := host.Info(); err == nil {
		fmt.Fprintf(tw, "Host\t%s (%s %s)\n", info.Hostname, info.Platform, info.PlatformVersion)
		fmt.Fprintf(tw, "Uptime\t%s\n", (time.Duration(info.Uptime) * time.Second).String())
	}

	cpuPct := 0.0
	if pcts, err := cpu.Percent(time.Second, false); err == nil && len(pcts) > 0 {
		cpuPct = pcts[0]
		fmt.Fprintf(tw, "CPU load\t%.1f%%\n", cpuPct)
	}
	if avg, err := load.Avg(); err == nil {
		fmt.Fprintf(tw, "Load avg\t%.2f %.2f %.2f\n", avg.Load1, avg.Load5, avg.Load15)
	}

	memPct := 0.0
	if vm, err := mem.VirtualMemory(); err == nil {
		memPct = vm.UsedPercent
		fmt.Fprintf(tw, "Memory\t%.1f%% of %.1f GB\n", vm.UsedPercent, float64(vm.Total)/1e9)
	}

	diskPct := 0.0
	if du, err := disk.Usage("/"); err == nil {
		diskPct = du.UsedPercent
		fmt.Fprintf(tw, "Disk /\t%.1f%% of %.1f GB\n", du.UsedPercent, float64(du.Total)/1e9)
	}
	if du, err := disk.Usage("/home"); err == nil {
		fmt.Fprintf(tw, "Disk /home\t%.1f%%\n", du.UsedPercent)
	}

	fmt.Fprintf(tw, "Pending updates\t%d\n", pendingUpdates())
	fmt.Fprintf(tw, "Failed services\t%s\n", failedServices())
	fmt.Fprintf(tw, "Monitor daemon\t%s\n", monitorState())
	tw.Flush()

	if chart && term.IsTerminal(0) {
		width, _, err := term.GetSize(0)
		if err == nil {
			tgraph.Chart(
				"Resource usage",
				[]string{"CPU", "Memory", "Disk /"},
				[][]float64{{cpuPct}, {memPct}, {diskPct}},
				[]string{"Used %"},
				[]string{"blue"},
				float64(width),
				false,
				"",
			)
		}
	}
	return nil
}

func failedServices() string {
	out, err := exec.Command("systemctl", "--failed", "--no-legend", "--plain").Output()
	if err != nil {
		return "N/A"
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return "none"
	}
	return fmt.Sprintf("%d failed", len(strings.Split(trimmed, "\n")))
}

// monitorState looks for another genesis process besides this one,
// which is how the background monitor shows up in the process table.
func monitorState() string {
	procs, err := ps.Processes()
	if err != nil {
		return "unknown"
	}
	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() != self && strings.HasPrefix(p.Executable(), "genesis") {
			return fmt.Sprintf("running (PID %d)", p.Pid())
		}
	}
	return "not running"
}
