package cli

import "csweep/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Root:             f.Root,
		NameFilter:       f.NameFilter,
		OnlyFailed:       f.OnlyFailed,
		InstallToolchain: f.InstallToolchain,
		Toolchain:        f.Toolchain,
		NoProgress:       f.NoProgress,
		Packages:         f.Packages,
		Verbose:          f.Verbose,
		Limit:            f.Limit,
		Event:            f.Event,
		TargetBranch:     f.TargetBranch,
		Branch:           f.Branch,
		ChangedPaths:     f.ChangedPaths,
	}
}
