/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/spf13/cobra"

	"github.com/Raindancer118/genesis/log"
)

// NewMonitorCmd builds the hidden monitor command. It is meant to run
// from a systemd user service and logs a warning whenever a resource
// crosses its configured limit.
func NewMonitorCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:    "monitor",
		Short:  "Run the background resource monitor",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if once {
				monitorTick(cfg.Monitor.CPUWarnPercent, cfg.Monitor.MemWarnPercent, cfg.Monitor.DiskWarnPercent)
				return nil
			}

			interval := cfg.Monitor.IntervalMinutes
			if interval <= 0 {
				interval = 30
			}
			scheduler := gocron.NewScheduler(time.UTC)
			job, err := scheduler.Every(interval).Minutes().Do(func() {
				monitorTick(cfg.Monitor.CPUWarnPercent, cfg.Monitor.MemWarnPercent, cfg.Monitor.DiskWarnPercent)
			})
			if err != nil {
				return fmt.Errorf("scheduling monitor job: %w", err)
			}
			log.CronLogger.Infof("monitor started, next run at %s", job.NextRun())
			scheduler.StartBlocking()
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "run a single check and exit")
	return cmd
}

func monitorTick(cpuWarn, memWarn, diskWarn float64) {
	if pcts, err := cpu.Percent(time.Second, false); err == nil && len(pcts) > 0 {
		if pcts[0] >= cpuWarn {
			log.CronLogger.Warnf("CPU load %.1f%% exceeds limit %.0f%%", pcts[0], cpuWarn)
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm.UsedPercent >= memWarn {
		log.CronLogger.Warnf("memory usage %.1f%% exceeds limit %.0f%%", vm.UsedPercent, memWarn)
	}
	if du, err := disk.Usage("/"); err == nil && du.UsedPercent >= diskWarn {
		log.CronLogger.Warnf("disk usage %.1f%% exceeds limit %.0f%%", du.UsedPercent, diskWarn)
	}
	log.CronLogger.Info("monitor check complete")
}
