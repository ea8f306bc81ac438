package site

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shipsite-io/shipsite/internal/logging"
)

// ArtifactSource records how the artifact directory was discovered.
type ArtifactSource int

const (
	// SourceExpected means the framework's standard output directory
	// existed after the build.
	SourceExpected ArtifactSource = iota
	// SourceFallback means the directory came from probing the common
	// output directory names.
	SourceFallback
	// SourceRoot means the repository root itself held an entry point.
	SourceRoot
)

func (s ArtifactSource) String() string {
	switch s {
	case SourceFallback:
		return "fallback"
	case SourceRoot:
		return "root"
	default:
		return "expected"
	}
}

// Artifact is the directory of deployable static files produced by one
// build, plus its discovery provenance. It lives only for the duration
// of a single deploy.
type Artifact struct {
	Dir    string
	Source ArtifactSource
}

// BuildError reports a build that produced no discoverable artifact
// directory, or a build command that failed outright.
type BuildError struct {
	Framework Framework
	Reason    string
	Cause     error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("build %s: %s: %v", e.Framework, e.Reason, e.Cause)
	}
	return fmt.Sprintf("build %s: %s", e.Framework, e.Reason)
}

func (e *BuildError) Unwrap() error { return e.Cause }

// Remediation returns a hint printed alongside the error.
func (e *BuildError) Remediation() string {
	return "run the framework build locally and check that it emits a static output directory"
}

// Ordered list of common output directory names probed when the
// framework's expected directory is absent.
var fallbackDirs = []string{"build", "dist", ".next", "public"}

// Builder invokes a framework's native build toolchain and locates the
// emitted static assets.
type Builder struct {
	Runner CommandRunner
}

// Build installs dependencies, runs the framework build command and
// resolves the artifact directory.
//
// The install step is deliberately forgiving: install tooling exits
// nonzero for audit warnings and peer-dependency noise, and a genuinely
// broken install surfaces below as a missing output directory. The build
// command itself is checked strictly.
func (b *Builder) Build(ctx context.Context, repoPath string, fw Framework) (*Artifact, error) {
	if fw == Unknown {
		return nil, &BuildError{Framework: fw, Reason: "unsupported framework"}
	}

	if err := b.Runner.Run(ctx, repoPath, "npm", "install"); err != nil {
		logging.Warn("npm install exited with an error, continuing", "error", err)
	}

	expected, err := b.runBuild(ctx, repoPath, fw)
	if err != nil {
		return nil, err
	}

	for _, dir := range expected {
		if isDir(dir) {
			return &Artifact{Dir: dir, Source: SourceExpected}, nil
		}
	}

	logging.Debug("expected build directory absent, probing fallbacks",
		"framework", fw.String(), "expected", expected)
	if art := probeFallback(repoPath); art != nil {
		return art, nil
	}

	return nil, &BuildError{Framework: fw, Reason: "no build output directory found"}
}

// runBuild executes the framework-specific build command and returns the
// expected output directories in preference order.
func (b *Builder) runBuild(ctx context.Context, repoPath string, fw Framework) ([]string, error) {
	switch fw {
	case NextJS:
		return b.buildNext(ctx, repoPath)
	case React:
		if err := b.npmRun(ctx, repoPath, fw, "build"); err != nil {
			return nil, err
		}
		return []string{filepath.Join(repoPath, "build")}, nil
	case Angular:
		return b.buildAngular(ctx, repoPath)
	default:
		return nil, &BuildError{Framework: fw, Reason: "unsupported framework"}
	}
}

// buildNext prefers a declared export script (older Next.js); otherwise
// it patches the config for built-in static export and runs the standard
// build.
func (b *Builder) buildNext(ctx context.Context, repoPath string) ([]string, error) {
	m, err := readManifest(repoPath)
	hasExportScript := err == nil && m.Scripts["export"] != ""

	if hasExportScript {
		if err := b.npmRun(ctx, repoPath, NextJS, "build"); err != nil {
			return nil, err
		}
		if err := b.npmRun(ctx, repoPath, NextJS, "export"); err != nil {
			return nil, err
		}
	} else {
		if err := ensureStaticExport(repoPath); err != nil {
			return nil, &BuildError{Framework: NextJS, Reason: "failed to configure static export", Cause: err}
		}
		if err := b.npmRun(ctx, repoPath, NextJS, "build"); err != nil {
			return nil, err
		}
	}

	return []string{
		filepath.Join(repoPath, "out"),
		filepath.Join(repoPath, ".next", "static"),
	}, nil
}

// buildAngular runs the production build and prefers the project's
// dedicated output directory when angular.json names one.
func (b *Builder) buildAngular(ctx context.Context, repoPath string) ([]string, error) {
	project := angularProject(repoPath)

	if err := b.Runner.Run(ctx, repoPath, "npm", "run", "build", "--", "--configuration=production"); err != nil {
		return nil, &BuildError{Framework: Angular, Reason: "build command failed", Cause: err}
	}

	dist := filepath.Join(repoPath, "dist")
	if project != "" {
		return []string{filepath.Join(dist, project), dist}, nil
	}
	return []string{dist}, nil
}

func (b *Builder) npmRun(ctx context.Context, repoPath string, fw Framework, script string) error {
	if err := b.Runner.Run(ctx, repoPath, "npm", "run", script); err != nil {
		return &BuildError{Framework: fw, Reason: fmt.Sprintf("'npm run %s' failed", script), Cause: err}
	}
	return nil
}

// angularWorkspace is the subset of angular.json needed to pick the
// output directory.
type angularWorkspace struct {
	DefaultProject string                     `json:"defaultProject"`
	Projects       map[string]json.RawMessage `json:"projects"`
}

// angularProject returns the workspace's project identifier, or "" when
// none can be read. With no defaultProject the first project name in
// lexical order is used so the choice is deterministic.
func angularProject(repoPath string) string {
	raw, err := os.ReadFile(filepath.Join(repoPath, "angular.json"))
	if err != nil {
		return ""
	}

	var ws angularWorkspace
	if err := json.Unmarshal(raw, &ws); err != nil {
		logging.Debug("could not parse angular.json", "error", err)
		return ""
	}

	if ws.DefaultProject != "" {
		return ws.DefaultProject
	}
	names := make([]string, 0, len(ws.Projects))
	for name := range ws.Projects {
		names = append(names, name)
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}

// probeFallback searches the fixed list of common output directories.
// A directory holding index.html wins outright; otherwise a one-level
// subdirectory holding one is preferred; failing both, the directory is
// used anyway. As a last resort the repository root itself counts when
// it directly contains index.html (plain static sites).
func probeFallback(repoPath string) *Artifact {
	for _, name := range fallbackDirs {
		dir := filepath.Join(repoPath, name)
		if !isDir(dir) {
			continue
		}

		if hasIndexHTML(dir) {
			return &Artifact{Dir: dir, Source: SourceFallback}
		}

		entries, err := os.ReadDir(dir)
		if err == nil {
			for _, e := range entries {
				if !e.IsDir() {
					continue
				}
				sub := filepath.Join(dir, e.Name())
				if hasIndexHTML(sub) {
					return &Artifact{Dir: sub, Source: SourceFallback}
				}
			}
		}

		return &Artifact{Dir: dir, Source: SourceFallback}
	}

	if hasIndexHTML(repoPath) {
		return &Artifact{Dir: repoPath, Source: SourceRoot}
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func hasIndexHTML(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "index.html"))
	return err == nil && !info.IsDir()
}
