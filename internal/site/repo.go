package site

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// CloneError reports a failed repository clone. No partial directory is
// left behind.
type CloneError struct {
	URL   string
	Cause error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("clone %s: %v", e.URL, e.Cause)
}

func (e *CloneError) Unwrap() error { return e.Cause }

// Remediation returns a hint printed alongside the error.
func (e *CloneError) Remediation() string {
	return "check the repository URL, your network connection and repository access"
}

// Fetch clones remoteURL into a fresh ephemeral directory and returns
// the local path and the repository name. Ownership of the directory
// passes to the caller, who must remove it when the deploy finishes.
func Fetch(ctx context.Context, runner CommandRunner, remoteURL string) (string, string, error) {
	dir, err := os.MkdirTemp("", "shipsite-")
	if err != nil {
		return "", "", &CloneError{URL: remoteURL, Cause: err}
	}

	if err := runner.Run(ctx, "", "git", "clone", remoteURL, dir); err != nil {
		os.RemoveAll(dir)
		return "", "", &CloneError{URL: remoteURL, Cause: err}
	}

	return dir, RepoName(remoteURL), nil
}

// RepoName derives the repository name from the URL's final path
// segment, stripping trailing slashes and a .git suffix.
func RepoName(remoteURL string) string {
	name := strings.TrimRight(remoteURL, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".git")
}
