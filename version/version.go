package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/shapeshare/errors"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	if i.Version != "dev" {
		return fmt.Sprintf("shapeshare %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("shapeshare dev (commit %s, built %s)", i.CommitHash, i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// Header returns the version written into generated file headers.
func Header() string {
	return Version
}

// Satisfies reports whether the running version meets a semver constraint
// such as ">= 0.4, < 1.0". Development builds satisfy every constraint.
func Satisfies(constraint string) (bool, error) {
	return satisfies(Version, constraint)
}

func satisfies(current, constraint string) (bool, error) {
	if constraint == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "min_version %q: %s", constraint, err),
			"use a semver constraint like \">= 0.4.0\"",
		)
	}
	if current == "dev" {
		return true, nil
	}
	v, err := semver.NewVersion(current)
	if err != nil {
		return false, errors.Wrapf(err, "parse running version %q", current)
	}
	return c.Check(v), nil
}
