/*
Copyright © 2025 Raindancer118
*/
package main

import (
	"encoding/json"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Raindancer118/genesis/hero"
	"github.com/Raindancer118/genesis/log"
)

// Standalone helper that dumps the current hero target list as JSON,
// meant for piping into jq or scripting around genesis without the
// interactive command. CPU sampling is skipped unless --sample is set
// so the output is instant.
func main() {
	log.Init()

	app := &cli.App{
		Name:  "herotargets",
		Usage: "print resource-hungry processes as JSON",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "mem", Value: 400, Usage: "memory threshold in MB"},
			&cli.Float64Flag{Name: "cpu", Value: 50, Usage: "CPU threshold in percent"},
			&cli.IntFlag{Name: "limit", Value: hero.DefaultLimit, Usage: "maximum number of targets"},
			&cli.StringFlag{Name: "scope", Value: "user", Usage: "user or all"},
			&cli.BoolFlag{Name: "sample", Usage: "take a CPU sample instead of reporting 0"},
		},
		Action: func(c *cli.Context) error {
			targets, err := hero.FindTargets(hero.Options{
				Scope:          c.String("scope"),
				MemThresholdMB: c.Float64("mem"),
				CPUThreshold:   c.Float64("cpu"),
				Limit:          c.Int("limit"),
				Fast:           !c.Bool("sample"),
			}, hero.DefaultSafeSet())
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(targets)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.ConsoleLogger.Fatal(err)
	}
}
