// Package compileinfo reports which build of a phewasnet binary produced a
// set of node and edge tables, so the provenance can be recorded next to them.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
)

const unknown = "(unknown)"

type BuildInfo struct {
	Binary     string
	Module     string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Dirty      bool
}

func (b BuildInfo) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s (%s %s) built with %s", b.Binary, b.Module, b.Version, b.GoVersion)
	fmt.Fprintf(&sb, " at commit %s (%s)", b.Commit, b.CommitTime)
	if b.Dirty {
		sb.WriteString(" with uncommitted changes")
	}

	return sb.String()
}

// Read returns the build info embedded in the running binary. Fields the
// toolchain did not record are reported as unknown.
func Read() BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fromBuildInfo(nil)
	}

	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) BuildInfo {
	out := BuildInfo{
		Binary:     unknown,
		Module:     unknown,
		Version:    unknown,
		GoVersion:  unknown,
		Commit:     unknown,
		CommitTime: unknown,
	}
	if info == nil {
		return out
	}

	if info.Path != "" {
		out.Binary = info.Path
	}
	if info.Main.Path != "" {
		out.Module = info.Main.Path
	}
	if info.Main.Version != "" {
		out.Version = info.Main.Version
	}
	if info.GoVersion != "" {
		out.GoVersion = info.GoVersion
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}

	return out
}

func Fprint(w io.Writer) {
	fmt.Fprintln(w, Read())
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}
