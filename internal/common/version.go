package common

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	toml "github.com/pelletier/go-toml/v2"
)

// Build metadata, set with -ldflags "-X .../internal/common.Version=...".
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// VersionFile is read from the binary's directory by LoadVersionFromFile.
const VersionFile = ".version.toml"

// versionFile is the on-disk form of the build metadata.
type versionFile struct {
	Version string `toml:"version"`
	Build   string `toml:"build"`
	Commit  string `toml:"commit"`
}

func GetVersion() string   { return Version }
func GetBuild() string     { return Build }
func GetGitCommit() string { return GitCommit }

// GetFullVersion returns "version (build: b, commit: c)".
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// LoadVersionFromFile fills any metadata still at its default from
// VersionFile next to the executable, then from the module build info.
// Values injected by ldflags are never replaced.
func LoadVersionFromFile() {
	if exe, err := os.Executable(); err == nil {
		loadVersionFrom(filepath.Join(filepath.Dir(exe), VersionFile))
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(info)
	}
}

func loadVersionFrom(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var vf versionFile
	if toml.Unmarshal(data, &vf) != nil {
		return
	}
	fillDefault(&Version, "dev", vf.Version)
	fillDefault(&Build, "unknown", vf.Build)
	fillDefault(&GitCommit, "unknown", vf.Commit)
}

func applyBuildInfo(info *debug.BuildInfo) {
	if v := info.Main.Version; v != "" && v != "(devel)" {
		fillDefault(&Version, "dev", v)
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev := s.Value
			if len(rev) > 7 {
				rev = rev[:7]
			}
			fillDefault(&GitCommit, "unknown", rev)
		case "vcs.time":
			fillDefault(&Build, "unknown", s.Value)
		}
	}
}

func fillDefault(dst *string, def, val string) {
	if *dst == def && val != "" {
		*dst = val
	}
}
