package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	nextConfigName    = "next.config.js"
	moduleExportsDecl = "module.exports = {"
	outputDirective   = "\n  output: \"export\","
)

// patchNextConfig inserts an output: "export" directive into a Next.js
// config. It is a pure transform: the second return value reports
// whether the content needs rewriting. Configs that already declare any
// output mode are left alone.
func patchNextConfig(content string) (string, bool) {
	if strings.Contains(content, "output:") {
		return content, false
	}
	if !strings.Contains(content, moduleExportsDecl) {
		return content, false
	}
	return strings.Replace(content, moduleExportsDecl, moduleExportsDecl+outputDirective, 1), true
}

// ensureStaticExport patches next.config.js in the repository to request
// static-export output. The backup copy is written before the original
// is overwritten. A repository without the config file is left as is;
// newer Next.js projects may use other config names the build falls back
// from anyway.
func ensureStaticExport(repoPath string) error {
	path := filepath.Join(repoPath, nextConfigName)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", nextConfigName, err)
	}

	patched, changed := patchNextConfig(string(raw))
	if !changed {
		return nil
	}

	if err := os.WriteFile(path+".bak", raw, 0644); err != nil {
		return fmt.Errorf("failed to back up %s: %w", nextConfigName, err)
	}
	if err := os.WriteFile(path, []byte(patched), 0644); err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", nextConfigName, err)
	}
	return nil
}
