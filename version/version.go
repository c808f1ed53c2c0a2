// Package version holds build information set via ldflags:
//
//	go build -ldflags "-X github.com/jackzampolin/primer/version.GitRelease=v0.1.0 \
//	  -X github.com/jackzampolin/primer/version.GitCommit=$(git rev-parse HEAD) \
//	  -X github.com/jackzampolin/primer/version.GitCommitDate=$(git log -1 --format=%cI)"
package version

import (
	"fmt"
	"runtime"
)

var (
	// GitRelease is the tagged release, or "dev".
	GitRelease = "dev"
	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"
	// GitCommitDate is the commit date.
	GitCommitDate = "unknown"
	// GoInfo describes the toolchain and platform.
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)

// Info is the build information in structured form.
type Info struct {
	Release    string `json:"release" yaml:"release"`
	Commit     string `json:"commit" yaml:"commit"`
	CommitDate string `json:"commit_date" yaml:"commit_date"`
	Go         string `json:"go" yaml:"go"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Release:    GitRelease,
		Commit:     GitCommit,
		CommitDate: GitCommitDate,
		Go:         GoInfo,
	}
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.Commit) >= 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

func (i Info) String() string {
	return fmt.Sprintf("primer %s (commit %s, %s)", i.Release, i.Short(), i.Go)
}
