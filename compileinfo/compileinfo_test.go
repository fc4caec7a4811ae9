package compileinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	info := fromBuildInfo(&debug.BuildInfo{
		GoVersion: "go1.21.0",
		Path:      "github.com/carbocation/lightcurve/cmd/lightcurve",
		Main:      debug.Module{Path: "github.com/carbocation/lightcurve", Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2024-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	if info.Commit != "abc123" || info.CommitTime != "2024-01-02T03:04:05Z" || !info.Modified {
		t.Fatalf("VCS settings not captured: %+v", info)
	}

	s := info.String()
	for _, want := range []string{
		"github.com/carbocation/lightcurve/cmd/lightcurve",
		"go1.21.0",
		"github.com/carbocation/lightcurve v0.3.0",
		"commit abc123",
		"uncommitted changes",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("Expected %q in %q", want, s)
		}
	}
}

func TestStringDevelBuild(t *testing.T) {
	s := CompileInfo{GoVersion: "go1.21.0", Module: "m", Version: "(devel)"}.String()
	if s != "lightcurve (go1.21.0)." {
		t.Fatalf("Unexpected description %q", s)
	}

	if s := (CompileInfo{}).String(); !strings.HasPrefix(s, "No build information") {
		t.Fatalf("Unexpected description %q", s)
	}
}
