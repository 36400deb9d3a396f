/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"bytes"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/Raindancer118/genesis/log"
)

// NewScanCmd builds the scan command, a clamscan wrapper with a
// progress bar sized by a file count of the target directory.
func NewScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory for malware using clamscan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return runScan(path)
		},
	}
}

func runScan(path string) error {
	if _, err := exec.LookPath("clamscan"); err != nil {
		return fmt.Errorf("clamscan not found, install clamav first")
	}

	fmt.Printf("Counting files in %q for progress estimation...\n", path)
	total := countFiles(path)
	fmt.Printf("Starting scan of %d files...\n", total)

	scan := exec.Command("clamscan", "-r", "--stdout", path)
	var out bytes.Buffer
	scan.Stdout = &out
	scan.Stderr = &out

	if err := scan.Start(); err != nil {
		return fmt.Errorf("starting clamscan: %w", err)
	}
	log.FileLogger.Infof("clamscan started for %s (%d files)", path, total)

	var wg sync.WaitGroup
	wg.Add(1)
	p := mpb.New(
		mpb.WithWidth(64),
		mpb.WithWaitGroup(&wg),
	)
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("Scanning:"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), "done",
			),
		),
	)

	done := make(chan error, 1)
	go func() { done <- scan.Wait() }()

	// clamscan buffers its output, so the bar advances on a fixed tick
	// and snaps to full when the process exits.
	ticker := time.NewTicker(300 * time.Millisecond)
	var scanErr error
	go func() {
		defer wg.Done()
		defer ticker.Stop()
		step := int64(max(total/100, 1))
		for {
			select {
			case <-ticker.C:
				if bar.Current() < int64(total)-step {
					bar.EwmaIncrInt64(step, 300*time.Millisecond)
				}
			case err := <-done:
				scanErr = err
				bar.SetCurrent(int64(total))
				return
			}
		}
	}()
	p.Wait()

	summary := scanSummary(out.String())
	fmt.Println("\n--- Scan Summary ---")
	fmt.Println(summary)

	// clamscan exits 1 when infected files are found; that is a result,
	// not a failure of the scan itself.
	if exitErr, ok := scanErr.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
		log.CombinedLogger.Warnf("clamscan found infected files in %s", path)
		return nil
	}
	if scanErr != nil {
		return fmt.Errorf("clamscan failed: %w", scanErr)
	}
	return nil
}

func countFiles(path string) int {
	total := 0
	filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			total++
		}
		return nil
	})
	return total
}

func scanSummary(output string) string {
	const marker = "----------- SCAN SUMMARY -----------"
	if i := strings.LastIndex(output, marker); i >= 0 {
		return strings.TrimSpace(output[i+len(marker):])
	}
	return strings.TrimSpace(output)
}
