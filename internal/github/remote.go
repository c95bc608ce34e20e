// Package github resolves GitHub repository settings and builds "view
// source" links for documented symbols.
package github

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// RepoConfig is the resolved GitHub location used for source links. A zero
// URL means source linking is disabled.
type RepoConfig struct {
	URL    string // https://github.com/<org>/<repo>
	Branch string
}

// Enabled reports whether source links can be generated.
func (c RepoConfig) Enabled() bool {
	return c.URL != ""
}

// ResolveRepo determines the repository URL and branch for source links.
//
// repo may be an https URL (used as provided), a local checkout path (its
// origin remote and current branch are read via git), or empty, in which case
// the package directory itself is inspected. An explicit branch always wins
// over the detected one; when nothing supplies a branch, "main" is assumed.
func ResolveRepo(ctx context.Context, repo, explicitBranch, packageDir string) RepoConfig {
	cfg := RepoConfig{Branch: explicitBranch}

	checkout := ""
	switch {
	case repo == "":
		checkout = packageDir
	case isLocalPath(repo):
		checkout = repo
	default:
		cfg.URL = strings.TrimSuffix(repo, "/")
	}

	if checkout != "" {
		url, branch, err := detectRemote(ctx, checkout)
		if err == nil {
			cfg.URL = url
			if cfg.Branch == "" {
				cfg.Branch = branch
			}
		}
	}
	if cfg.Enabled() && cfg.Branch == "" {
		cfg.Branch = "main"
	}
	return cfg
}

func isLocalPath(repo string) bool {
	if strings.Contains(repo, "://") || strings.HasPrefix(repo, "git@") {
		return false
	}
	info, err := os.Stat(repo)
	return err == nil && info.IsDir()
}

// detectRemote reads the origin URL and current branch from the git checkout
// containing dir.
func detectRemote(ctx context.Context, dir string) (url, branch string, err error) {
	remote, err := gitOutput(ctx, dir, "config", "--get", "remote.origin.url")
	if err != nil {
		return "", "", err
	}
	url, err = normalizeRemoteURL(remote)
	if err != nil {
		return "", "", err
	}

	branch, err = gitOutput(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", "", err
	}
	return url, branch, nil
}

func gitOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("git %s failed: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return strings.TrimSpace(string(output)), nil
}

// normalizeRemoteURL rewrites a git remote to its https://github.com form.
// SSH remotes (git@github.com:org/repo.git) and https remotes are accepted;
// anything not pointing at github.com is rejected.
func normalizeRemoteURL(remote string) (string, error) {
	remote = strings.TrimSuffix(remote, ".git")

	if rest, ok := strings.CutPrefix(remote, "git@github.com:"); ok {
		return "https://github.com/" + rest, nil
	}
	if strings.HasPrefix(remote, "https://github.com/") || strings.HasPrefix(remote, "http://github.com/") {
		return remote, nil
	}
	if rest, ok := strings.CutPrefix(remote, "ssh://git@github.com/"); ok {
		return "https://github.com/" + rest, nil
	}
	return "", fmt.Errorf("remote %q is not a GitHub repository", remote)
}
