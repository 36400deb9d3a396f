// Package log wires the zap loggers Genesis writes to. Console output is
// kept human readable while the file logs are JSON and rotated by
// lumberjack under the user's state directory.
package log

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ps "github.com/mitchellh/go-ps"
	"github.com/natefinch/lumberjack"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	FileLogger     *zap.SugaredLogger
	ConsoleLogger  *zap.SugaredLogger
	CombinedLogger *zap.SugaredLogger
	CronLogger     *zap.SugaredLogger
	GitLogger      *zap.SugaredLogger
)

// Dir returns the directory log files are written to.
func Dir() string {
	if dir := os.Getenv("GENESIS_LOG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "logs"
	}
	return filepath.Join(home, ".local", "state", "genesis")
}

// Init initializes the loggers.
// CombinedLogger logs to both console and file.
// CronLogger is written by the background monitor only.
// GitLogger records explicit git commands run by self-update.
func Init() {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(Dir(), "genesis.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 1,
		MaxAge:     7, // days,
		LocalTime:  true,
	})
	cronWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(Dir(), "monitor.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 1,
		MaxAge:     1, // days,
	})
	gitWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(Dir(), "git.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 1,
		MaxAge:     7, // days,
	})

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(config),
		fileWriter,
		zap.DebugLevel,
	)
	FileLogger = zap.New(fileCore).Sugar()

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(config),
		zapcore.AddSync(os.Stderr),
		zap.WarnLevel,
	)
	ConsoleLogger = zap.New(consoleCore).Sugar()

	CombinedLogger = zap.New(zapcore.NewTee(fileCore, consoleCore)).Sugar()

	CronLogger = zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(config),
		cronWriter,
		zap.InfoLevel,
	)).Sugar()

	GitLogger = zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(config),
		gitWriter,
		zap.InfoLevel,
	)).Sugar()
}

// LogGitCommand records a git command that was started by self-update.
func LogGitCommand(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	name := "git"
	if process, err := ps.FindProcess(cmd.Process.Pid); err == nil && process != nil {
		name = process.Executable()
	}
	GitLogger.Infow("ran git command",
		zap.String("name", name),
		zap.String("args", strings.Join(cmd.Args, " ")),
		zap.String("dir", cmd.Dir),
	)
}
