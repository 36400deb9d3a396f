// Package config provides configuration types and defaults for genesis.
// Settings live in ~/.config/genesis/config.toml; a default file is
// written on first run so users have something to edit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// GeneralConfig holds cross-cutting options.
type GeneralConfig struct {
	Language string `mapstructure:"language"`
}

// SystemConfig holds package management options.
type SystemConfig struct {
	// PackageManagerPriority decides which installed manager genesis
	// dispatches to; first hit wins.
	PackageManagerPriority []string `mapstructure:"package_manager_priority"`
	AutoConfirmUpdate      bool     `mapstructure:"auto_confirm_update"`
}

// HeroConfig supplies the defaults for the process governor.
type HeroConfig struct {
	CPUThreshold      float64 `mapstructure:"cpu_threshold"`
	MemThresholdMB    float64 `mapstructure:"mem_threshold_mb"`
	DefaultScope      string  `mapstructure:"default_scope"`
	Limit             int     `mapstructure:"limit"`
	WeightCPU         float64 `mapstructure:"weight_cpu"`
	WeightMem         float64 `mapstructure:"weight_mem"`
	SampleIntervalMS  int     `mapstructure:"sample_interval_ms"`
	GracefulTimeoutMS int     `mapstructure:"graceful_timeout_ms"`
}

// SampleInterval returns the CPU sampling window as a duration.
func (h HeroConfig) SampleInterval() time.Duration {
	return time.Duration(h.SampleIntervalMS) * time.Millisecond
}

// GracefulTimeout returns the graceful termination wait as a duration.
func (h HeroConfig) GracefulTimeout() time.Duration {
	return time.Duration(h.GracefulTimeoutMS) * time.Millisecond
}

// ProjectConfig holds scaffolding defaults.
type ProjectConfig struct {
	DefaultAuthor  string `mapstructure:"default_author"`
	DefaultLicense string `mapstructure:"default_license"`
	UseGitInit     bool   `mapstructure:"use_git_init"`
}

// MonitorConfig holds background monitor options.
type MonitorConfig struct {
	IntervalMinutes int     `mapstructure:"interval_minutes"`
	CPUWarnPercent  float64 `mapstructure:"cpu_warn_percent"`
	MemWarnPercent  float64 `mapstructure:"mem_warn_percent"`
	DiskWarnPercent float64 `mapstructure:"disk_warn_percent"`
}

// Config holds all configuration options for genesis.
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	System  SystemConfig  `mapstructure:"system"`
	Hero    HeroConfig    `mapstructure:"hero"`
	Project ProjectConfig `mapstructure:"project"`
	Monitor MonitorConfig `mapstructure:"monitor"`
}

// Defaults returns the stock configuration.
func Defaults() Config {
	return Config{
		General: GeneralConfig{Language: "en"},
		System: SystemConfig{
			PackageManagerPriority: []string{"pamac", "paru", "yay", "pacman", "apt", "dnf", "brew"},
			AutoConfirmUpdate:      false,
		},
		Hero: HeroConfig{
			CPUThreshold:      50.0,
			MemThresholdMB:    400.0,
			DefaultScope:      "user",
			Limit:             15,
			WeightCPU:         2.0,
			WeightMem:         0.5,
			SampleIntervalMS:  400,
			GracefulTimeoutMS: 2000,
		},
		Project: ProjectConfig{
			DefaultLicense: "MIT",
			UseGitInit:     true,
		},
		Monitor: MonitorConfig{
			IntervalMinutes: 30,
			CPUWarnPercent:  90,
			MemWarnPercent:  90,
			DiskWarnPercent: 90,
		},
	}
}

// Dir returns the configuration directory.
func Dir() string {
	if dir := os.Getenv("GENESIS_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".genesis"
	}
	return filepath.Join(home, ".config", "genesis")
}

// Path returns the configuration file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("general.language", d.General.Language)
	v.SetDefault("system.package_manager_priority", d.System.PackageManagerPriority)
	v.SetDefault("system.auto_confirm_update", d.System.AutoConfirmUpdate)
	v.SetDefault("hero.cpu_threshold", d.Hero.CPUThreshold)
	v.SetDefault("hero.mem_threshold_mb", d.Hero.MemThresholdMB)
	v.SetDefault("hero.default_scope", d.Hero.DefaultScope)
	v.SetDefault("hero.limit", d.Hero.Limit)
	v.SetDefault("hero.weight_cpu", d.Hero.WeightCPU)
	v.SetDefault("hero.weight_mem", d.Hero.WeightMem)
	v.SetDefault("hero.sample_interval_ms", d.Hero.SampleIntervalMS)
	v.SetDefault("hero.graceful_timeout_ms", d.Hero.GracefulTimeoutMS)
	v.SetDefault("project.default_author", d.Project.DefaultAuthor)
	v.SetDefault("project.default_license", d.Project.DefaultLicense)
	v.SetDefault("project.use_git_init", d.Project.UseGitInit)
	v.SetDefault("monitor.interval_minutes", d.Monitor.IntervalMinutes)
	v.SetDefault("monitor.cpu_warn_percent", d.Monitor.CPUWarnPercent)
	v.SetDefault("monitor.mem_warn_percent", d.Monitor.MemWarnPercent)
	v.SetDefault("monitor.disk_warn_percent", d.Monitor.DiskWarnPercent)
}

// Init loads the config file at path (or the default location when path
// is empty) into the shared viper instance, writing a default file when
// none exists.
func Init(path string) error {
	setDefaults(viper.GetViper())
	if path == "" {
		path = Path()
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("toml")

	if err := viper.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || errorsAsNotFound(err) {
			if writeErr := writeDefault(path); writeErr == nil {
				return viper.ReadInConfig()
			}
			// unwritable config dir: carry on with defaults
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func errorsAsNotFound(err error) bool {
	_, ok := err.(viper.ConfigFileNotFoundError)
	return ok
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return viper.WriteConfigAs(path)
}

// Load unmarshals the current viper state into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Defaults(), fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Set stores a dotted key and writes the file through.
func Set(key string, value any) error {
	viper.Set(key, value)
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return err
	}
	return viper.WriteConfigAs(Path())
}

// Get reads a dotted key from the store.
func Get(key string) any {
	return viper.Get(key)
}

// Reset rewrites the config file with the defaults.
func Reset() error {
	fresh := viper.New()
	setDefaults(fresh)
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return err
	}
	return fresh.WriteConfigAs(Path())
}
