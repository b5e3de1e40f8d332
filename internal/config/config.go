// Package config loads avprobe settings from an optional YAML file and
// AVPROBE_ prefixed environment variables using Viper.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/writer"
)

const (
	defaultJobs      = 2
	defaultFrameSize = 1024
	defaultProbeSize = 5000000
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Probe     ProbeConfig     `mapstructure:"probe" yaml:"probe"`
	Transcode TranscodeConfig `mapstructure:"transcode" yaml:"transcode"`
}

// OutputConfig holds report defaults. Command line flags override them.
type OutputConfig struct {
	Format             string `mapstructure:"format" yaml:"format"` // writer name with optional =options
	ShowOptionalFields string `mapstructure:"show_optional_fields" yaml:"show_optional_fields"`
	DataHash           string `mapstructure:"data_hash" yaml:"data_hash"`
	Pretty             bool   `mapstructure:"pretty" yaml:"pretty"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`   // quiet ... trace, or a numeric level
	Format     string `mapstructure:"format" yaml:"format"` // text, json
	AddSource  bool   `mapstructure:"add_source" yaml:"add_source"`
	TimeFormat string `mapstructure:"time_format" yaml:"time_format"`
}

type ProbeConfig struct {
	ProbeSize int64 `mapstructure:"probe_size" yaml:"probe_size"`
}

type TranscodeConfig struct {
	Jobs      int    `mapstructure:"jobs" yaml:"jobs"`
	FrameSize int    `mapstructure:"frame_size" yaml:"frame_size"`
	SampleFmt string `mapstructure:"sample_fmt" yaml:"sample_fmt"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// Load reads configuration from configPath, or from config.yaml in the
// working directory or the user config directory when configPath is empty.
// Environment variables take precedence, e.g. AVPROBE_OUTPUT_FORMAT=json.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "avprobe"))
		}
	}

	v.SetEnvPrefix("AVPROBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration built from defaults alone.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.format", "default")
	v.SetDefault("output.show_optional_fields", "auto")
	v.SetDefault("output.data_hash", "")
	v.SetDefault("output.pretty", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", "")

	v.SetDefault("probe.probe_size", defaultProbeSize)

	v.SetDefault("transcode.jobs", defaultJobs)
	v.SetDefault("transcode.frame_size", defaultFrameSize)
	v.SetDefault("transcode.sample_fmt", "s16")
	v.SetDefault("transcode.output_dir", ".")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	name, _, _ := strings.Cut(c.Output.Format, "=")
	known := false
	for _, n := range writer.Names() {
		if n == name {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("%w: output.format must be one of: %s", ErrInvalid, strings.Join(writer.Names(), ", "))
	}
	if _, err := writer.ParseShowOptional(c.Output.ShowOptionalFields); err != nil {
		return fmt.Errorf("%w: output.show_optional_fields: %w", ErrInvalid, err)
	}
	if c.Output.DataHash != "" {
		if _, _, err := writer.NewHash(c.Output.DataHash); err != nil {
			return fmt.Errorf("%w: output.data_hash: %w", ErrInvalid, err)
		}
	}

	if !ValidLevel(c.Logging.Level) {
		return fmt.Errorf("%w: logging.level must be one of: %s", ErrInvalid, strings.Join(LevelNames, ", "))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("%w: logging.format must be one of: json, text", ErrInvalid)
	}

	if c.Probe.ProbeSize < 32 {
		return fmt.Errorf("%w: probe.probe_size must be at least 32", ErrInvalid)
	}

	if c.Transcode.Jobs < 1 {
		return fmt.Errorf("%w: transcode.jobs must be at least 1", ErrInvalid)
	}
	if c.Transcode.FrameSize < 1 {
		return fmt.Errorf("%w: transcode.frame_size must be at least 1", ErrInvalid)
	}
	if _, err := audio.ParseSampleFormat(c.Transcode.SampleFmt); err != nil {
		return fmt.Errorf("%w: transcode.sample_fmt '%s'", ErrInvalid, c.Transcode.SampleFmt)
	}
	return nil
}

// Dump writes the effective configuration as YAML.
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
