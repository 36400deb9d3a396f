/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Raindancer118/genesis/hero"
)

// NewHeroCmd builds the hero command: find the processes hurting the
// machine and take them down safely.
func NewHeroCmd() *cobra.Command {
	var (
		dryRun bool
		scope  string
		memMB  float64
		cpuPct float64
		limit  int
		quiet  bool
		fast   bool
		yes    bool
		chart  bool
	)

	cmd := &cobra.Command{
		Use:   "hero",
		Short: "Terminate resource-intensive processes to free up the system",
		Long: `Hero scans running processes, ranks the ones exceeding the memory or
CPU thresholds and terminates them after confirmation. System-critical
processes (desktop shell, session and network daemons, init, genesis
itself) are never touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// config supplies the defaults, flags override
			if !cmd.Flags().Changed("scope") {
				scope = cfg.Hero.DefaultScope
			}
			if !cmd.Flags().Changed("mem") {
				memMB = cfg.Hero.MemThresholdMB
			}
			if !cmd.Flags().Changed("cpu") {
				cpuPct = cfg.Hero.CPUThreshold
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.Hero.Limit
			}
			if scope != "user" && scope != "all" {
				return fmt.Errorf("invalid scope %q (want user or all)", scope)
			}

			verbose := !quiet
			if verbose {
				fmt.Printf("Scope: %s | Dry run: %t | Fast: %t\n", scope, dryRun, fast)
				fmt.Printf("Thresholds: memory >= %.0f MB, CPU >= %.0f%% | Limit: %d\n\n",
					memMB, cpuPct, limit)
			}

			confirm := ConfirmKey
			if yes {
				confirm = func(prompt string) bool { return true }
			}

			gov := hero.NewGovernor(hero.DefaultSafeSet(), confirm, func(targets []hero.Target, fastMode bool) {
				RenderTargets(os.Stdout, targets, fastMode)
				if chart {
					RenderScoreChart(targets)
				}
			})

			code := gov.Run(hero.RunOptions{
				Options: hero.Options{
					Scope:          scope,
					MemThresholdMB: memMB,
					CPUThreshold:   cpuPct,
					Limit:          limit,
					Fast:           fast,
					SampleInterval: cfg.Hero.SampleInterval(),
					Weights: hero.Weights{
						CPU:    cfg.Hero.WeightCPU,
						Memory: cfg.Hero.WeightMem,
					},
				},
				DryRun:          dryRun,
				Verbose:         verbose,
				GracefulTimeout: cfg.Hero.GracefulTimeout(),
			})
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "only show targets, terminate nothing")
	cmd.Flags().StringVarP(&scope, "scope", "s", "user", "which processes to consider: user or all")
	cmd.Flags().Float64Var(&memMB, "mem", 400, "memory threshold in MB")
	cmd.Flags().Float64Var(&cpuPct, "cpu", 50, "CPU threshold in percent")
	cmd.Flags().IntVarP(&limit, "limit", "l", 15, "maximum number of targets")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the report, print outcomes only")
	cmd.Flags().BoolVar(&fast, "fast", false, "skip CPU sampling for instant results")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&chart, "chart", false, "draw a score chart below the table")

	return cmd
}
