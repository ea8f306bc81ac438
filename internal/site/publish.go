package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shipsite-io/shipsite/internal/logging"
	"github.com/shipsite-io/shipsite/internal/provider"
)

// Cache directives. HTML is the mutable entry point of a site and must
// never be cached so routing updates propagate immediately; hashed
// static assets are immutable until the next deploy.
const (
	cacheNone    = "no-cache, no-store, must-revalidate"
	cacheStatic  = "max-age=31536000"
	cacheDefault = "max-age=86400"
)

// UploadError reports the first object that failed to upload. The
// publish aborts there: objects uploaded before the failure are left in
// place and the operation is not resumed silently.
type UploadError struct {
	Key   string
	Cause error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %q: %v", e.Key, e.Cause)
}

func (e *UploadError) Unwrap() error { return e.Cause }

// Remediation returns a hint printed alongside the error.
func (e *UploadError) Remediation() string {
	return "re-run the deploy once the cause is resolved; previously uploaded objects are overwritten"
}

// Publisher uploads a build artifact directory to a site bucket.
type Publisher struct {
	Store provider.ObjectStore
	Debug bool
}

// Publish walks artifactDir and uploads every file with its classified
// content type and cache directive, sequentially in walk order. It
// returns the number of objects uploaded.
func (p *Publisher) Publish(ctx context.Context, artifactDir, bucket string) (int, error) {
	if p.Debug {
		p.inspectArtifact(artifactDir)
	}

	count := 0
	err := filepath.WalkDir(artifactDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(artifactDir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		contentType := contentTypeFor(path)
		cacheControl := cacheControlFor(path)

		f, err := os.Open(path)
		if err != nil {
			return &UploadError{Key: key, Cause: err}
		}
		defer f.Close()

		if err := p.Store.PutObject(ctx, bucket, key, f, contentType, cacheControl); err != nil {
			return &UploadError{Key: key, Cause: err}
		}

		logging.Debug("uploaded object", "key", key, "content_type", contentType, "cache_control", cacheControl)
		count++
		return nil
	})
	if err != nil {
		return count, err
	}
	return count, nil
}

// contentTypeFor classifies a file by extension against the fixed
// extension table.
func contentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".html":
		return "text/html"
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".svg":
		return "image/svg+xml"
	case ".png", ".jpg", ".jpeg", ".gif":
		return "image/" + strings.TrimPrefix(ext, ".")
	case ".woff", ".woff2", ".eot", ".ttf", ".otf":
		return "font/" + strings.TrimPrefix(ext, ".")
	default:
		return "text/plain"
	}
}

func cacheControlFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".html":
		return cacheNone
	case ".css", ".js",
		".png", ".jpg", ".jpeg", ".gif",
		".woff", ".woff2", ".eot", ".ttf", ".otf":
		return cacheStatic
	default:
		return cacheDefault
	}
}

// inspectArtifact emits debug diagnostics about the artifact directory:
// the entry point's size and markers that indicate a properly built
// single-page app. Diagnostics only, never control flow.
func (p *Publisher) inspectArtifact(artifactDir string) {
	entries, err := os.ReadDir(artifactDir)
	if err == nil {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		logging.Debug("artifact directory contents", "dir", artifactDir, "entries", names)
	}

	indexPath := filepath.Join(artifactDir, "index.html")
	raw, err := os.ReadFile(indexPath)
	if err != nil {
		logging.Warn("no index.html found in artifact directory", "dir", artifactDir)
		return
	}

	content := string(raw)
	if len(content) < 100 {
		logging.Warn("index.html seems unusually small", "bytes", len(content))
	}
	logging.Debug("index.html entry point",
		"bytes", len(content),
		"has_root_div", strings.Contains(content, `<div id="root"`) || strings.Contains(content, `<div id="app"`),
		"has_js_imports", strings.Contains(content, `.js"`))
}
