// Package version exposes build metadata, set via -ldflags at release time
// and recovered from debug build info for plain `go build` binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Set at build time with:
//
//	-ldflags "-X .../internal/version.Version=v1.2.3 ..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	BuildUser = "unknown"
)

// BuildInfo bundles everything the version command reports.
type BuildInfo struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildTime time.Time `json:"build_time"`
	GoVersion string    `json:"go_version"`
	Platform  string    `json:"platform"`
	BuildUser string    `json:"build_user,omitempty"`
}

// Get collects the build metadata.
func Get() BuildInfo {
	return BuildInfo{
		Version:   Short(),
		GitCommit: commit(),
		BuildTime: buildTime(),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		BuildUser: BuildUser,
	}
}

// Short returns just the version string, falling back to module or VCS
// information when ldflags were not set.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
				return "dev-" + setting.Value[:7]
			}
		}
	}

	return "dev"
}

// String returns the one-line version form.
func (b BuildInfo) String() string {
	s := "scaff " + b.Version
	if b.GitCommit != "unknown" && len(b.GitCommit) >= 7 {
		s += " (" + b.GitCommit[:7] + ")"
	}

	return s
}

// Detailed returns the multi-line version form.
func (b BuildInfo) Detailed() string {
	built := "unknown"
	if !b.BuildTime.IsZero() {
		built = b.BuildTime.UTC().Format(time.RFC3339)
	}

	return fmt.Sprintf("scaff %s\n  commit:   %s\n  built:    %s\n  go:       %s\n  platform: %s",
		b.Version, b.GitCommit, built, b.GoVersion, b.Platform)
}

func commit() string {
	if GitCommit != "" && GitCommit != "unknown" {
		return GitCommit
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}

	return "unknown"
}

func buildTime() time.Time {
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		return t
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t
				}
			}
		}
	}

	return time.Time{}
}
