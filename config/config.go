// Package config holds the settings of the lanternfish command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/lanternfish/population"
)

// ErrInvalidConfig is returned for settings that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix starts the names of the environment variables read by ApplyEnv.
const EnvPrefix = "LANTERNFISH_"

// Config holds all the settings.
type Config struct {
	Days       int    `yaml:"days"`
	InputPath  string `yaml:"input"`
	Method     string `yaml:"method"`
	RecordPath string `yaml:"record_path"`
	Record     bool   `yaml:"record"`
	Big        bool   `yaml:"big"`
	Verbose    bool   `yaml:"verbose"`
	CPUProfile string `yaml:"cpu_profile"`
}

// Default returns the settings used when nothing else is given.
func Default() *Config {
	return &Config{
		Days:      80,
		InputPath: "input06.txt",
		Method:    "histogram",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	return cfg, nil
}

// Save writes the settings as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ApplyEnv loads envFile, if it exists, into the environment and then
// overrides the settings with the LANTERNFISH_ variables. Variables already
// set in the environment win over the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if v, ok := lookup("DAYS"); ok {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sDAYS=%q", ErrInvalidConfig, EnvPrefix, v)
		}

		c.Days = days
	}

	if v, ok := lookup("INPUT"); ok {
		c.InputPath = v
	}

	if v, ok := lookup("METHOD"); ok {
		c.Method = v
	}

	if v, ok := lookup("RECORD_PATH"); ok {
		c.RecordPath = v
	}

	if v, ok := lookup("CPU_PROFILE"); ok {
		c.CPUProfile = v
	}

	for name, field := range map[string]*bool{
		"RECORD":  &c.Record,
		"BIG":     &c.Big,
		"VERBOSE": &c.Verbose,
	} {
		v, ok := lookup(name)
		if !ok {
			continue
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, EnvPrefix, name, v)
		}

		*field = b
	}

	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || v == "" {
		return "", false
	}

	return v, true
}

// Validate checks that the settings can be used.
func (c *Config) Validate() error {
	if c.Days < 0 {
		return fmt.Errorf("%w: negative days %d", ErrInvalidConfig, c.Days)
	}

	if !slices.Contains(population.CounterNames(), c.Method) {
		return fmt.Errorf("%w: unknown method %q (valid: %v)",
			ErrInvalidConfig, c.Method, population.CounterNames())
	}

	return nil
}
