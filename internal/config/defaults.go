package config

const (
	// DefaultRoot is the default checkout root to sweep
	DefaultRoot = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "sweep-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultHistoryDBFile is the default sqlite history database file name
	DefaultHistoryDBFile = "sweep-history.db"
	// DefaultManifestName is the file that marks a directory as a project
	DefaultManifestName = "Cargo.toml"
	// DefaultToolchainChannel is the toolchain channel installed before a run
	DefaultToolchainChannel = "stable"
	// DefaultToolchainProfile is the rustup profile used for installs
	DefaultToolchainProfile = "minimal"
	// DefaultTargetBranch is the branch pull requests are gated against
	DefaultTargetBranch = "main"
	// DefaultConfigFile is the per-tree config file loaded when present
	DefaultConfigFile = "csweep.yaml"
	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "CSWEEP_"
)

// DefaultTestCommand is the test command run in each project directory
var DefaultTestCommand = []string{"cargo", "test"}

// DefaultIgnoreDirs are directories skipped while scanning for manifests
var DefaultIgnoreDirs = []string{
	"target",
	"vendor",
	"node_modules",
}

// DefaultTriggerGlobs are the path globs a push must touch to trigger a sweep
var DefaultTriggerGlobs = []string{
	"**/Cargo.toml",
	"**/src/**",
	"**/tests/**",
}
