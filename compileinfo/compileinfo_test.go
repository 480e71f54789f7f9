package compileinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		GoVersion: "go1.18",
		Path:      "github.com/carbocation/phewasnet/cmd/phewas2gephi",
		Main:      debug.Module{Path: "github.com/carbocation/phewasnet", Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2022-04-01T00:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	got := fromBuildInfo(info)
	if got.Commit != "abc123" || !got.Dirty || got.Module != "github.com/carbocation/phewasnet" {
		t.Errorf("Unexpected build info %+v", got)
	}

	s := got.String()
	for _, want := range []string{"phewas2gephi", "go1.18", "abc123", "uncommitted"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in %q", want, s)
		}
	}
}

func TestFromBuildInfoMissing(t *testing.T) {
	got := fromBuildInfo(nil)
	if got.Commit != unknown || got.Dirty {
		t.Errorf("Unexpected build info %+v", got)
	}

	if got := fromBuildInfo(&debug.BuildInfo{}); got.GoVersion != unknown {
		t.Errorf("Expected unknown Go version, got %q", got.GoVersion)
	}
}
