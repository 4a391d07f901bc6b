package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the project-level configuration file, looked up in the
// review target directory.
const FileName = ".ktlens.yml"

// Config represents the ktlens configuration. FrameworkHints and
// TestDirectories are project metadata handed to role inference; the
// engine itself never reads build files.
type Config struct {
	Format          string   `yaml:"format"`
	FailOn          string   `yaml:"failOn"`
	MaxFindings     int      `yaml:"maxFindings"`
	MaxPairs        int      `yaml:"maxPairs"`
	Threads         int      `yaml:"threads"`
	ContextLines    int      `yaml:"contextLines"`
	DisabledRules   []string `yaml:"disabledRules,omitempty"`
	Excludes        []string `yaml:"excludes,omitempty"`
	FrameworkHints  []string `yaml:"frameworkHints,omitempty"`
	TestDirectories []string `yaml:"testDirectories,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Format:       "text",
		FailOn:       "none",
		MaxFindings:  200,
		MaxPairs:     100000,
		ContextLines: 1,
	}
}

// LoadFile reads the project config under dir. A missing file yields the
// zero Config and nil error.
func LoadFile(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to dir/.ktlens.yml.
func Save(dir string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, FileName), data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env
// <- overrides. The overrides map comes from CLI flags; only set values
// should be present.
func Load(dir string, overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile(dir)
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.FailOn != "" {
		dst.FailOn = src.FailOn
	}
	if src.MaxFindings > 0 {
		dst.MaxFindings = src.MaxFindings
	}
	if src.MaxPairs > 0 {
		dst.MaxPairs = src.MaxPairs
	}
	if src.Threads > 0 {
		dst.Threads = src.Threads
	}
	if src.ContextLines > 0 {
		dst.ContextLines = src.ContextLines
	}
	if len(src.DisabledRules) > 0 {
		dst.DisabledRules = src.DisabledRules
	}
	if len(src.Excludes) > 0 {
		dst.Excludes = src.Excludes
	}
	if len(src.FrameworkHints) > 0 {
		dst.FrameworkHints = src.FrameworkHints
	}
	if len(src.TestDirectories) > 0 {
		dst.TestDirectories = src.TestDirectories
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("KTLENS_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("KTLENS_FAIL_ON"); v != "" {
		cfg.FailOn = v
	}
	if v := os.Getenv("KTLENS_MAX_FINDINGS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFindings = n
		}
	}
	if v := os.Getenv("KTLENS_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Threads = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns an error if
// the key is unknown, so a typo in `config set` fails loudly.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "format":
		cfg.Format = value
	case "failOn":
		cfg.FailOn = value
	case "maxFindings":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxFindings must be an integer: %w", err)
		}
		cfg.MaxFindings = n
	case "maxPairs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxPairs must be an integer: %w", err)
		}
		cfg.MaxPairs = n
	case "threads":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("threads must be an integer: %w", err)
		}
		cfg.Threads = n
	case "contextLines":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("contextLines must be an integer: %w", err)
		}
		cfg.ContextLines = n
	case "disabledRules":
		cfg.DisabledRules = splitList(value)
	case "excludes":
		cfg.Excludes = splitList(value)
	case "frameworkHints":
		cfg.FrameworkHints = splitList(value)
	case "testDirectories":
		cfg.TestDirectories = splitList(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
