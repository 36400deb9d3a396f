package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Raindancer118/genesis/hero"
	"github.com/Raindancer118/genesis/log"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "genesis-logs")
	if err != nil {
		panic(err)
	}
	os.Setenv("GENESIS_LOG_DIR", dir)
	log.Init()
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func sampleTargets() []hero.Target {
	return []hero.Target{
		{PID: 4242, Name: "chromium", Username: "kai", RSSMB: 812.4, CPUPercent: 63.1, Cmdline: "/usr/bin/chromium", Score: 532.4},
		{PID: 977, Name: "code", Username: "kai", RSSMB: 441.0, CPUPercent: 12.0, Cmdline: "/usr/bin/code", Score: 244.5},
	}
}

func TestRenderTargetsTable(t *testing.T) {
	var buf bytes.Buffer
	RenderTargets(&buf, sampleTargets(), false)

	out := buf.String()
	assert.Contains(t, out, "PID")
	assert.Contains(t, out, "chromium")
	assert.Contains(t, out, "4242")
	assert.Contains(t, out, "63.1")
	assert.Contains(t, out, "532.4")
}

func TestRenderTargetsFastModeHidesCPU(t *testing.T) {
	var buf bytes.Buffer
	RenderTargets(&buf, sampleTargets(), true)

	out := buf.String()
	assert.Contains(t, out, "N/A")
	assert.NotContains(t, out, "63.1")
}

func TestGreetingFor(t *testing.T) {
	assert.Equal(t, "Good morning", greetingFor(7))
	assert.Equal(t, "Good morning", greetingFor(0))
	assert.Equal(t, "Good afternoon", greetingFor(12))
	assert.Equal(t, "Good afternoon", greetingFor(17))
	assert.Equal(t, "Good evening", greetingFor(18))
	assert.Equal(t, "Good evening", greetingFor(23))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Kai", capitalize("kai"))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "X", capitalize("x"))
}

func TestScanSummaryExtraction(t *testing.T) {
	output := "scanning a\nscanning b\n----------- SCAN SUMMARY -----------\nInfected files: 0\nTime: 2.1 sec\n"
	assert.Equal(t, "Infected files: 0\nTime: 2.1 sec", scanSummary(output))
}

func TestScanSummaryWithoutMarker(t *testing.T) {
	assert.Equal(t, "plain output", scanSummary("plain output\n"))
}
