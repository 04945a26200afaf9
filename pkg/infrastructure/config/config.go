package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds planner configuration. Everything has a default; a config
// file and SHOPSCHED_* environment variables override it.
type Config struct {
	Planner PlannerConfig
	Output  OutputConfig
	Log     LogConfig
}

// PlannerConfig bounds the scheduling run
type PlannerConfig struct {
	PlanStart      string // YYYY-MM-DD; empty = today UTC
	HorizonBuckets int
	BucketHours    int
}

// OutputConfig selects result emission
type OutputConfig struct {
	Format    string // text, json, csv
	GanttFile string // write an SVG Gantt here when non-empty
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the optional file path plus environment
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("planner.plan_start", "")
	v.SetDefault("planner.horizon_buckets", 365)
	v.SetDefault("planner.bucket_hours", 24)
	v.SetDefault("output.format", "text")
	v.SetDefault("output.gantt_file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix("SHOPSCHED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Planner: PlannerConfig{
			PlanStart:      v.GetString("planner.plan_start"),
			HorizonBuckets: v.GetInt("planner.horizon_buckets"),
			BucketHours:    v.GetInt("planner.bucket_hours"),
		},
		Output: OutputConfig{
			Format:    v.GetString("output.format"),
			GanttFile: v.GetString("output.gantt_file"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Planner.HorizonBuckets <= 0 {
		return fmt.Errorf("planner.horizon_buckets must be positive, got %d", c.Planner.HorizonBuckets)
	}
	if c.Planner.BucketHours <= 0 {
		return fmt.Errorf("planner.bucket_hours must be positive, got %d", c.Planner.BucketHours)
	}
	switch c.Output.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("output.format must be text, json or csv, got %q", c.Output.Format)
	}
	if _, err := c.ResolvePlanStart(); err != nil {
		return err
	}
	return nil
}

// ResolvePlanStart parses the configured plan start, defaulting to
// midnight UTC today
func (c *Config) ResolvePlanStart() (time.Time, error) {
	if c.Planner.PlanStart == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	start, err := time.Parse("2006-01-02", c.Planner.PlanStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("planner.plan_start must be YYYY-MM-DD, got %q", c.Planner.PlanStart)
	}
	return start, nil
}

// BucketLength returns the configured bucket span
func (c *Config) BucketLength() time.Duration {
	return time.Duration(c.Planner.BucketHours) * time.Hour
}
