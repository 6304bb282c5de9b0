package updates

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/storage/memory"
	"golang.org/x/mod/semver"

	"github.com/mist/mist/internal/api"
	"github.com/mist/mist/internal/version"
)

// DefaultRepoURL is the upstream repository whose tags mark releases.
const DefaultRepoURL = "https://github.com/corecollectives/mist.git"

// Current returns the version of the running build.
func Current() api.VersionInfo {
	return api.VersionInfo{
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.Date,
		GoVersion: version.GoVersion,
	}
}

// TagSource lists release tag names.
type TagSource interface {
	Tags(ctx context.Context) ([]string, error)
}

// GitTagSource reads tags from a remote git repository without cloning it.
type GitTagSource struct {
	RepoURL string
}

// Tags lists refs/tags/* on the remote.
func (s *GitTagSource) Tags(ctx context.Context) ([]string, error) {
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{s.RepoURL},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{PeelingOption: git.IgnorePeeled})
	if err != nil {
		return nil, fmt.Errorf("failed to list remote refs: %w", err)
	}

	var tags []string
	for _, ref := range refs {
		if ref.Name().IsTag() {
			tags = append(tags, ref.Name().Short())
		}
	}
	return tags, nil
}

// Checker compares the running version against the newest release tag.
type Checker struct {
	Source  TagSource
	Current string
}

// NewChecker creates a checker for the running build.
func NewChecker(source TagSource) *Checker {
	return &Checker{Source: source, Current: version.Version}
}

// Check lists release tags and reports whether a newer one exists.
// Tags that are not valid semantic versions are ignored. A non-semver
// current version (e.g. "dev") never reports an update.
func (c *Checker) Check(ctx context.Context) (api.UpdateCheck, error) {
	result := api.UpdateCheck{Current: c.Current}

	tags, err := c.Source.Tags(ctx)
	if err != nil {
		return result, err
	}

	latest := Latest(tags)
	result.Latest = latest
	if latest == "" {
		return result, nil
	}

	current := canonical(c.Current)
	if current == "" {
		return result, nil
	}
	result.UpdateAvailable = semver.Compare(canonical(latest), current) > 0
	return result, nil
}

// Latest returns the highest semver tag, ignoring prereleases, or "" if none.
func Latest(tags []string) string {
	best := ""
	bestCanonical := ""
	for _, tag := range tags {
		v := canonical(tag)
		if v == "" || semver.Prerelease(v) != "" {
			continue
		}
		if bestCanonical == "" || semver.Compare(v, bestCanonical) > 0 {
			best = tag
			bestCanonical = v
		}
	}
	return best
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
