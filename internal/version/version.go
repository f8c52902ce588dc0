// Package version provides build information for the linq tools.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

const (
	unknownValue     = "unknown"
	commitHashLength = 7
)

// Build-time variables set by ldflags
var (
	Version   = "dev"
	BuildDate = unknownValue
	GitCommit = unknownValue
	GoVersion = runtime.Version()
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string    `json:"version"`
	BuildDate string    `json:"build_date"`
	GitCommit string    `json:"git_commit"`
	GoVersion string    `json:"go_version"`
	BuildTime time.Time `json:"build_time"`
	Dirty     bool      `json:"dirty"`
	Module    string    `json:"module,omitempty"`
	Deps      []Module  `json:"deps,omitempty"`
}

// Module is a dependency compiled into the binary.
type Module struct {
	Path    string `json:"path"`
	Version string `json:"version"`
}

// Info returns the build information of the running binary.
func Info() BuildInfo {
	buildTime, _ := time.Parse(time.RFC3339, BuildDate)

	info := BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: GoVersion,
		BuildTime: buildTime,
		Dirty:     strings.HasSuffix(GitCommit, "-dirty"),
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.Module = buildInfo.Main.Path
		for _, dep := range buildInfo.Deps {
			info.Deps = append(info.Deps, Module{Path: dep.Path, Version: dep.Version})
		}
	}

	return info
}

// String returns a formatted, multi-line version string.
func (b BuildInfo) String() string {
	var sb strings.Builder
	sb.WriteString("linq query engine\n")
	sb.WriteString(fmt.Sprintf("Version: %s", b.Version))
	if b.Dirty {
		sb.WriteString(" (dirty)")
	}
	sb.WriteString("\n")

	if b.BuildDate != "" && b.BuildDate != unknownValue {
		sb.WriteString(fmt.Sprintf("Build Date: %s\n", b.BuildDate))
	}

	if b.GitCommit != "" && b.GitCommit != unknownValue {
		commit := b.GitCommit
		if len(commit) > commitHashLength {
			commit = commit[:commitHashLength]
		}
		sb.WriteString(fmt.Sprintf("Git Commit: %s\n", commit))
	}

	sb.WriteString(fmt.Sprintf("Go Version: %s\n", b.GoVersion))

	if b.Module != "" {
		sb.WriteString(fmt.Sprintf("Module: %s\n", b.Module))
	}

	return sb.String()
}

// Short returns "linq <version>".
func Short() string {
	return "linq " + Version
}

// IsRelease returns true if this is a release version (not dev)
func IsRelease() bool {
	return Version != "dev" && !strings.Contains(Version, "-")
}
