package site

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shipsite-io/shipsite/internal/logging"
)

// Framework is the closed set of supported site frameworks. Derived once
// per repository, never mutated.
type Framework int

const (
	Unknown Framework = iota
	React
	NextJS
	Angular
)

func (f Framework) String() string {
	switch f {
	case React:
		return "react"
	case NextJS:
		return "nextjs"
	case Angular:
		return "angular"
	default:
		return "unknown"
	}
}

// manifest is the subset of package.json the pipeline cares about.
type manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

func readManifest(repoPath string) (*manifest, error) {
	raw, err := os.ReadFile(filepath.Join(repoPath, "package.json"))
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// mergedDeps folds runtime and development dependencies into one lookup
// set. A project can nominally declare a framework in either place.
func (m *manifest) mergedDeps() map[string]string {
	deps := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies))
	for k, v := range m.Dependencies {
		deps[k] = v
	}
	for k, v := range m.DevDependencies {
		deps[k] = v
	}
	return deps
}

// Detect classifies the repository by its manifest. A missing or
// malformed manifest is a legitimate Unknown, not an error: the deploy
// flow treats Unknown as its own terminal condition.
//
// Order matters: a Next.js project also declares react and react-dom,
// so the next marker wins.
func Detect(repoPath string) Framework {
	m, err := readManifest(repoPath)
	if err != nil {
		logging.Debug("framework detection: unreadable manifest", "path", repoPath, "error", err)
		return Unknown
	}

	deps := m.mergedDeps()
	switch {
	case hasDep(deps, "next"):
		return NextJS
	case hasDep(deps, "react") && hasDep(deps, "react-dom"):
		return React
	case hasDep(deps, "@angular/core"):
		return Angular
	default:
		return Unknown
	}
}

func hasDep(deps map[string]string, name string) bool {
	_, ok := deps[name]
	return ok
}
