package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "no commit",
			info: Info{Version: "dev", Commit: "unknown", Date: "unknown", GoVersion: "go1.25.1", Platform: "linux/amd64"},
			want: "nullpick dev (go1.25.1, linux/amd64)",
		},
		{
			name: "long commit is shortened",
			info: Info{Version: "1.0.0", Commit: "0123456789abcdef", Date: "2026-01-02T03:04:05Z", GoVersion: "go1.25.1", Platform: "linux/arm64"},
			want: "nullpick 1.0.0 (commit 01234567, built 2026-01-02T03:04:05Z, go1.25.1, linux/arm64)",
		},
		{
			name: "short commit kept",
			info: Info{Version: "1.0.0", Commit: "abc", Date: "d", GoVersion: "go", Platform: "p"},
			want: "nullpick 1.0.0 (commit abc, built d, go, p)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFillFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeefcafe"},
			{Key: "vcs.time", Value: "2026-05-01T00:00:00Z"},
		},
	}

	info := Info{Version: "dev", Commit: "unknown", Date: "unknown"}
	fillFromBuildInfo(&info, bi)
	if info.Version != "v0.3.0" || info.Commit != "deadbeefcafe" || info.Date != "2026-05-01T00:00:00Z" {
		t.Errorf("fillFromBuildInfo() = %+v", info)
	}

	// Link-time values win.
	info = Info{Version: "1.0.0", Commit: "feed", Date: "today"}
	fillFromBuildInfo(&info, bi)
	if info.Version != "1.0.0" || info.Commit != "feed" || info.Date != "today" {
		t.Errorf("fillFromBuildInfo() overwrote link-time values: %+v", info)
	}

	info = Info{Version: "dev"}
	fillFromBuildInfo(&info, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if info.Version != "dev" {
		t.Errorf("Version = %q, want dev for (devel) builds", info.Version)
	}
}

func TestStringPrefix(t *testing.T) {
	if !strings.HasPrefix(String(), "nullpick ") {
		t.Errorf("String() = %q, want nullpick prefix", String())
	}
}
