// Package compileinfo reports how the running lightcurve binary was built, so
// that a composite light curve can be traced back to the code that made it.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
)

type CompileInfo struct {
	Binary     string
	Module     string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.GoVersion == "" {
		return fmt.Sprintf("No build information is available for %s.", c.name())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s", c.name(), c.GoVersion)
	if c.Version != "" && c.Version != "(devel)" {
		fmt.Fprintf(&b, ", %s %s", c.Module, c.Version)
	}
	b.WriteString(")")

	if c.Commit != "" {
		fmt.Fprintf(&b, " built at commit %s", c.Commit)
		if c.CommitTime != "" {
			fmt.Fprintf(&b, " from %s", c.CommitTime)
		}
	}
	b.WriteString(".")

	if c.Modified {
		b.WriteString(" The working tree had uncommitted changes.")
	}

	return b.String()
}

func (c CompileInfo) name() string {
	if c.Binary != "" {
		return c.Binary
	}
	return "lightcurve"
}

// Get reads the build information embedded by the Go toolchain. Fields that
// the toolchain did not record are left empty.
func Get() CompileInfo {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}

	return fromBuildInfo(z)
}

func fromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		Binary:    z.Path,
		Module:    z.Main.Path,
		Version:   z.Main.Version,
		GoVersion: z.GoVersion,
	}

	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintf(os.Stderr, "%s\n", Get())
}
