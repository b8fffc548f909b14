package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration for the application
type Config struct {
	// Root of the checkout to sweep
	Root string `koanf:"root"`

	// Discovery settings
	ManifestName string   `koanf:"manifest_name"`
	IgnoreDirs   []string `koanf:"ignore_dirs"`

	// Execution settings
	TestCommand []string      `koanf:"test_command"`
	Timeout     time.Duration `koanf:"timeout"`

	// Toolchain settings
	Toolchain ToolchainConfig `koanf:"toolchain"`

	// Trigger settings
	Trigger TriggerConfig `koanf:"trigger"`

	// Output settings
	OutputJSONFile string `koanf:"output_json_file"`
	OutputJSONDir  string `koanf:"output_json_dir"`

	// History settings
	History HistoryConfig `koanf:"history"`

	// Log settings
	LogLevel string `koanf:"log_level"`

	// Command flags
	Flags Flags `koanf:"-"`
}

// ToolchainConfig describes the pinned toolchain installed before a sweep
type ToolchainConfig struct {
	Channel  string `koanf:"channel"`
	Profile  string `koanf:"profile"`
	Override bool   `koanf:"override"`
}

// TriggerConfig describes the event filter gating a sweep
type TriggerConfig struct {
	TargetBranch string   `koanf:"target_branch"`
	PathGlobs    []string `koanf:"path_globs"`
}

// HistoryConfig describes where past sweep runs are recorded
type HistoryConfig struct {
	Driver string `koanf:"driver"` // sqlite or mysql
	DSN    string `koanf:"dsn"`    // mysql only; sqlite derives its path from the output dir
}

// Flags holds command-line flags
type Flags struct {
	Root             string
	NameFilter       string
	OnlyFailed       bool
	InstallToolchain bool
	Toolchain        string
	NoProgress       bool
	Packages         bool
	Verbose          bool
	Limit            int

	// Trigger evaluation (check command)
	Event        string
	TargetBranch string
	Branch       string
	ChangedPaths []string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		Root:           DefaultRoot,
		ManifestName:   DefaultManifestName,
		TestCommand:    append([]string(nil), DefaultTestCommand...),
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Toolchain: ToolchainConfig{
			Channel:  DefaultToolchainChannel,
			Profile:  DefaultToolchainProfile,
			Override: true,
		},
		Trigger: TriggerConfig{
			TargetBranch: DefaultTargetBranch,
			PathGlobs:    append([]string(nil), DefaultTriggerGlobs...),
		},
		History:  HistoryConfig{Driver: "sqlite"},
		LogLevel: "info",
	}
	cfg.IgnoreDirs = make([]string, len(DefaultIgnoreDirs))
	copy(cfg.IgnoreDirs, DefaultIgnoreDirs)
	return cfg
}

// Load builds the config from defaults, an optional csweep.yaml in the
// root, and CSWEEP_* environment variables, in that order of precedence.
// A .env file in the root is loaded first so DSNs and toolchain settings
// can live next to the tree.
func Load(root string) (*Config, error) {
	cfg := New()
	if root == "" {
		root = cfg.Root
	}

	// .env may not exist, that's fine
	_ = godotenv.Load(filepath.Join(root, ".env"))

	k := koanf.New(".")

	path := filepath.Join(root, DefaultConfigFile)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	// CSWEEP_TOOLCHAIN_CHANNEL -> toolchain.channel
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Root = root
	return cfg, nil
}

// ApplyFlags records parsed command flags and applies their overrides
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Root != "" {
		c.Root = flags.Root
	}
	if flags.Toolchain != "" {
		c.Toolchain.Channel = flags.Toolchain
	}
}

// GetRoot returns the sweep root, using the flag if provided
func (c *Config) GetRoot() string {
	if c.Flags.Root != "" {
		return c.Flags.Root
	}
	return c.Root
}

// GetOutputPath returns the full path to the output JSON file (under the root
// so run and failures use the same file). Resolves to an absolute path so
// every command reads/writes the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.GetRoot(), c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetHistoryDSN returns the driver and DSN for the history database.
// sqlite stores next to the output JSON; mysql requires an explicit DSN.
func (c *Config) GetHistoryDSN() (driver, dsn string, err error) {
	switch c.History.Driver {
	case "", "sqlite":
		p := filepath.Join(c.GetRoot(), c.OutputJSONDir, DefaultHistoryDBFile)
		if abs, aerr := filepath.Abs(p); aerr == nil {
			p = abs
		}
		return "sqlite", p, nil
	case "mysql":
		if c.History.DSN == "" {
			return "", "", fmt.Errorf("history driver mysql requires history.dsn")
		}
		return "mysql", c.History.DSN, nil
	default:
		return "", "", fmt.Errorf("unknown history driver: %s", c.History.Driver)
	}
}
