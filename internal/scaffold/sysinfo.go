package scaffold

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
)

// SystemInfo is a snapshot of the environment a scaffold was created in. It
// is captured once and stored with the document so prompts render the same
// way on later runs.
type SystemInfo struct {
	Platform string            `json:"platform" yaml:"platform"`
	Runtime  string            `json:"runtime_version" yaml:"runtime_version"`
	Packages map[string]string `json:"installed_packages" yaml:"installed_packages"`
}

// CaptureSystemInfo records the current platform, Go runtime, and the module
// dependencies baked into the binary.
func CaptureSystemInfo() SystemInfo {
	info := SystemInfo{
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Runtime:  runtime.Version(),
		Packages: make(map[string]string),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			info.Packages[dep.Path] = dep.Version
		}
	}

	return info
}

// Empty reports whether the snapshot carries no information, which is how an
// absent system_info section deserializes.
func (si SystemInfo) Empty() bool {
	return si.Platform == "" && si.Runtime == "" && len(si.Packages) == 0
}

// String renders the snapshot in a stable, prompt-friendly form with
// packages sorted by module path.
func (si SystemInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "platform: %s; runtime: %s", si.Platform, si.Runtime)

	if len(si.Packages) > 0 {
		names := make([]string, 0, len(si.Packages))
		for name := range si.Packages {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteString("; packages: ")
		for i, name := range names {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name)
			if v := si.Packages[name]; v != "" {
				b.WriteString(" " + v)
			}
		}
	}

	return b.String()
}
