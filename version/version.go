// Package version reports the build identity of the synapseiq binary.
// Values are injected with -ldflags and completed from the module's build
// info:
//
//	go build -ldflags "-X github.com/synapseiq/site/version.Version=v1.2.0"
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

const shortCommit = 7

// Info is the resolved build identity.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
	Dirty     bool   `json:"dirty"`
}

// Get returns the build identity, preferring ldflags values over VCS
// settings recorded by the toolchain.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// Short returns the version with an abbreviated commit, e.g. "v1.2.0-3f2a9c1".
func (i Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	commit := i.GitCommit
	if len(commit) > shortCommit {
		commit = commit[:shortCommit]
	}
	s := i.Version + "-" + commit
	if i.Dirty {
		s += "-dirty"
	}
	return s
}

// String returns a one-line description for the version command.
func (i Info) String() string {
	s := i.Short()
	if i.BuildTime != "" {
		s += fmt.Sprintf(" (built %s)", i.BuildTime)
	}
	if i.GoVersion != "" {
		s += " " + i.GoVersion
	}
	return s
}
