package site

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRunner records every invocation and delegates behavior to an
// optional hook, standing in for git and npm in tests.
type scriptedRunner struct {
	calls [][]string
	onRun func(dir, name string, args []string) error
}

func (r *scriptedRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	if r.onRun != nil {
		return r.onRun(dir, name, args)
	}
	return nil
}

func TestRepoName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/acme/my-site.git", "my-site"},
		{"https://github.com/acme/my-site", "my-site"},
		{"https://github.com/acme/my-site/", "my-site"},
		{"git@github.com:acme/my-site.git", "my-site"},
		{"my-site", "my-site"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RepoName(tt.url), tt.url)
	}
}

func TestFetch(t *testing.T) {
	runner := &scriptedRunner{}
	dir, name, err := Fetch(context.Background(), runner, "https://github.com/acme/landing.git")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	assert.Equal(t, "landing", name)
	assert.DirExists(t, dir)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"git", "clone", "https://github.com/acme/landing.git", dir}, runner.calls[0])
}

func TestFetch_CloneFailureRemovesDirectory(t *testing.T) {
	var dest string
	runner := &scriptedRunner{
		onRun: func(dir, name string, args []string) error {
			dest = args[2]
			return errors.New("remote not found")
		},
	}

	_, _, err := Fetch(context.Background(), runner, "https://github.com/acme/missing.git")
	require.Error(t, err)

	var cloneErr *CloneError
	require.ErrorAs(t, err, &cloneErr)
	assert.Equal(t, "https://github.com/acme/missing.git", cloneErr.URL)
	assert.NotEmpty(t, cloneErr.Remediation())

	require.NotEmpty(t, dest)
	assert.NoDirExists(t, dest)
}
