// Package version exposes nullpick build metadata.
//
// Values are set with -ldflags, for example:
//
//	-X github.com/jmylchreest/nullpick/internal/version.Version=1.2.0
//
// When a binary is built with go install and no ldflags, the module version
// and VCS revision recorded by the toolchain are used instead.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the release version.
	Version = "dev"

	// Commit is the git revision of the build.
	Commit = "unknown"

	// Date is the build time in RFC3339.
	Date = "unknown"
)

// Info is the build metadata printed by `nullpick version`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo collects build metadata, falling back to the embedded build info
// for fields not set at link time.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		}
	}
}

// String returns the one-line version banner.
func (i Info) String() string {
	if i.Commit == "unknown" {
		return fmt.Sprintf("nullpick %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
	}
	commit := i.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("nullpick %s (commit %s, built %s, %s, %s)",
		i.Version, commit, i.Date, i.GoVersion, i.Platform)
}

// String returns the version banner for this binary.
func String() string {
	return GetInfo().String()
}
