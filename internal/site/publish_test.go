package site

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipsite-io/shipsite/providers/null"
)

func TestPublish_ClassifiesAndUploadsEverything(t *testing.T) {
	artifact := t.TempDir()
	writeRepoFile(t, artifact, "index.html", "<html><body>hi</body></html>")
	writeRepoFile(t, artifact, "static/js/main.ab12cd34.js", "console.log(1)")
	writeRepoFile(t, artifact, "manifest.json", "{}")

	store := null.New()
	require.NoError(t, store.CreateSiteBucket(context.Background(), "static-site-test"))

	p := &Publisher{Store: store}
	count, err := p.Publish(context.Background(), artifact, "static-site-test")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	objects := store.Objects("static-site-test")
	require.Len(t, objects, 3)

	html := objects["index.html"]
	assert.Equal(t, "text/html", html.ContentType)
	assert.Equal(t, "no-cache, no-store, must-revalidate", html.CacheControl)

	js := objects["static/js/main.ab12cd34.js"]
	assert.Equal(t, "application/javascript", js.ContentType)
	assert.Equal(t, "max-age=31536000", js.CacheControl)

	meta := objects["manifest.json"]
	assert.Equal(t, "application/json", meta.ContentType)
	assert.Equal(t, "max-age=86400", meta.CacheControl)
}

func TestPublish_AbortsOnFirstFailure(t *testing.T) {
	artifact := t.TempDir()
	writeRepoFile(t, artifact, "app.js", "x")
	writeRepoFile(t, artifact, "index.html", "<html></html>")
	writeRepoFile(t, artifact, "style.css", "body{}")

	store := null.New()
	require.NoError(t, store.CreateSiteBucket(context.Background(), "b"))
	store.FailPutKey = "index.html"

	p := &Publisher{Store: store}
	count, err := p.Publish(context.Background(), artifact, "b")

	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "index.html", upErr.Key)
	assert.NotEmpty(t, upErr.Remediation())

	// app.js went through, index.html was attempted, style.css never was.
	assert.Equal(t, 1, count)
	assert.Equal(t, 2, store.Puts)
	objects := store.Objects("b")
	assert.Contains(t, objects, "app.js")
	assert.NotContains(t, objects, "style.css")
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"index.HTML", "text/html"},
		{"app.css", "text/css"},
		{"logo.svg", "image/svg+xml"},
		{"photo.jpeg", "image/jpeg"},
		{"icon.png", "image/png"},
		{"body.woff2", "font/woff2"},
		{"robots.txt", "text/plain"},
		{"LICENSE", "text/plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, contentTypeFor(tt.name), tt.name)
	}
}

func TestCacheControlFor(t *testing.T) {
	assert.Equal(t, cacheNone, cacheControlFor("index.html"))
	assert.Equal(t, cacheStatic, cacheControlFor("main.js"))
	assert.Equal(t, cacheStatic, cacheControlFor("font.ttf"))
	assert.Equal(t, cacheDefault, cacheControlFor("data.json"))
	assert.Equal(t, cacheDefault, cacheControlFor("sitemap.xml"))
}
