package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ReactExpectedDirectory(t *testing.T) {
	repo := t.TempDir()
	runner := &scriptedRunner{
		onRun: func(dir, name string, args []string) error {
			if name == "npm" && len(args) == 2 && args[0] == "run" && args[1] == "build" {
				writeRepoFile(t, dir, "build/index.html", "<html></html>")
			}
			return nil
		},
	}

	b := &Builder{Runner: runner}
	art, err := b.Build(context.Background(), repo, React)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(repo, "build"), art.Dir)
	assert.Equal(t, SourceExpected, art.Source)
	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"npm", "install"}, runner.calls[0])
	assert.Equal(t, []string{"npm", "run", "build"}, runner.calls[1])
}

func TestBuild_InstallFailureIsTolerated(t *testing.T) {
	repo := t.TempDir()
	runner := &scriptedRunner{
		onRun: func(dir, name string, args []string) error {
			if args[0] == "install" {
				return errors.New("npm WARN audit")
			}
			writeRepoFile(t, dir, "build/index.html", "<html></html>")
			return nil
		},
	}

	b := &Builder{Runner: runner}
	art, err := b.Build(context.Background(), repo, React)
	require.NoError(t, err)
	assert.Equal(t, SourceExpected, art.Source)
}

func TestBuild_BuildCommandFailureIsFatal(t *testing.T) {
	repo := t.TempDir()
	cause := errors.New("exit status 1")
	runner := &scriptedRunner{
		onRun: func(dir, name string, args []string) error {
			if args[0] == "run" {
				return cause
			}
			return nil
		},
	}

	b := &Builder{Runner: runner}
	_, err := b.Build(context.Background(), repo, React)
	require.Error(t, err)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, React, buildErr.Framework)
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, buildErr.Remediation())
}

func TestBuild_FallbackDirectoryWithIndex(t *testing.T) {
	repo := t.TempDir()
	runner := &scriptedRunner{
		onRun: func(dir, name string, args []string) error {
			if args[0] == "run" {
				writeRepoFile(t, dir, "dist/index.html", "<html></html>")
			}
			return nil
		},
	}

	b := &Builder{Runner: runner}
	art, err := b.Build(context.Background(), repo, React)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(repo, "dist"), art.Dir)
	assert.Equal(t, SourceFallback, art.Source)
}

func TestBuild_FallbackPrefersSubdirectoryWithIndex(t *testing.T) {
	repo := t.TempDir()
	runner := &scriptedRunner{
		onRun: func(dir, name string, args []string) error {
			if args[0] == "run" {
				writeRepoFile(t, dir, "dist/my-app/index.html", "<html></html>")
				writeRepoFile(t, dir, "dist/3rdpartylicenses.txt", "")
			}
			return nil
		},
	}

	b := &Builder{Runner: runner}
	art, err := b.Build(context.Background(), repo, React)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(repo, "dist", "my-app"), art.Dir)
	assert.Equal(t, SourceFallback, art.Source)
}

func TestBuild_RootIndexAsLastResort(t *testing.T) {
	repo := t.TempDir()
	writeRepoFile(t, repo, "index.html", "<html></html>")

	b := &Builder{Runner: &scriptedRunner{}}
	art, err := b.Build(context.Background(), repo, React)
	require.NoError(t, err)

	assert.Equal(t, repo, art.Dir)
	assert.Equal(t, SourceRoot, art.Source)
}

func TestBuild_NoOutputAnywhere(t *testing.T) {
	repo := t.TempDir()

	b := &Builder{Runner: &scriptedRunner{}}
	_, err := b.Build(context.Background(), repo, React)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Contains(t, buildErr.Error(), "no build output directory found")
}

func TestBuild_NextWithExportScript(t *testing.T) {
	repo := t.TempDir()
	writeRepoFile(t, repo, "package.json",
		`{"dependencies": {"next": "12.0.0"}, "scripts": {"build": "next build", "export": "next export"}}`)
	runner := &scriptedRunner{
		onRun: func(dir, name string, args []string) error {
			if len(args) == 2 && args[1] == "export" {
				writeRepoFile(t, dir, "out/index.html", "<html></html>")
			}
			return nil
		},
	}

	b := &Builder{Runner: runner}
	art, err := b.Build(context.Background(), repo, NextJS)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(repo, "out"), art.Dir)
	assert.Equal(t, SourceExpected, art.Source)
	require.Len(t, runner.calls, 3)
	assert.Equal(t, []string{"npm", "run", "build"}, runner.calls[1])
	assert.Equal(t, []string{"npm", "run", "export"}, runner.calls[2])
}

func TestBuild_NextPatchesConfigWhenNoExportScript(t *testing.T) {
	repo := t.TempDir()
	original := "module.exports = {\n  reactStrictMode: true,\n}\n"
	writeRepoFile(t, repo, "package.json",
		`{"dependencies": {"next": "13.4.0"}, "scripts": {"build": "next build"}}`)
	writeRepoFile(t, repo, "next.config.js", original)

	runner := &scriptedRunner{
		onRun: func(dir, name string, args []string) error {
			if args[0] == "run" {
				writeRepoFile(t, dir, "out/index.html", "<html></html>")
			}
			return nil
		},
	}

	b := &Builder{Runner: runner}
	art, err := b.Build(context.Background(), repo, NextJS)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(repo, "out"), art.Dir)

	patched, err := os.ReadFile(filepath.Join(repo, "next.config.js"))
	require.NoError(t, err)
	assert.Contains(t, string(patched), `output: "export"`)

	backup, err := os.ReadFile(filepath.Join(repo, "next.config.js.bak"))
	require.NoError(t, err)
	assert.Equal(t, original, string(backup))
}

func TestBuild_AngularUsesWorkspaceProject(t *testing.T) {
	repo := t.TempDir()
	writeRepoFile(t, repo, "angular.json", `{"defaultProject": "storefront", "projects": {"storefront": {}}}`)
	runner := &scriptedRunner{
		onRun: func(dir, name string, args []string) error {
			if args[0] == "run" {
				writeRepoFile(t, dir, "dist/storefront/index.html", "<html></html>")
			}
			return nil
		},
	}

	b := &Builder{Runner: runner}
	art, err := b.Build(context.Background(), repo, Angular)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(repo, "dist", "storefront"), art.Dir)
	assert.Equal(t, SourceExpected, art.Source)
	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"npm", "run", "build", "--", "--configuration=production"}, runner.calls[1])
}

func TestAngularProject(t *testing.T) {
	t.Run("default project wins", func(t *testing.T) {
		repo := t.TempDir()
		writeRepoFile(t, repo, "angular.json",
			`{"defaultProject": "web", "projects": {"admin": {}, "web": {}}}`)
		assert.Equal(t, "web", angularProject(repo))
	})

	t.Run("lexically first project without default", func(t *testing.T) {
		repo := t.TempDir()
		writeRepoFile(t, repo, "angular.json", `{"projects": {"zeta": {}, "alpha": {}}}`)
		assert.Equal(t, "alpha", angularProject(repo))
	})

	t.Run("missing workspace file", func(t *testing.T) {
		assert.Equal(t, "", angularProject(t.TempDir()))
	})
}

func TestPatchNextConfig(t *testing.T) {
	t.Run("inserts directive after exports declaration", func(t *testing.T) {
		patched, changed := patchNextConfig("module.exports = {\n  trailingSlash: true,\n}\n")
		assert.True(t, changed)
		assert.Equal(t, "module.exports = {\n  output: \"export\",\n  trailingSlash: true,\n}\n", patched)
	})

	t.Run("existing output mode is untouched", func(t *testing.T) {
		content := "module.exports = {\n  output: \"standalone\",\n}\n"
		patched, changed := patchNextConfig(content)
		assert.False(t, changed)
		assert.Equal(t, content, patched)
	})

	t.Run("no recognizable anchor", func(t *testing.T) {
		content := "export default { trailingSlash: true }\n"
		patched, changed := patchNextConfig(content)
		assert.False(t, changed)
		assert.Equal(t, content, patched)
	})
}

func TestEnsureStaticExport_MissingConfigIsNoOp(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, ensureStaticExport(repo))
	assert.NoFileExists(t, filepath.Join(repo, "next.config.js.bak"))
}
