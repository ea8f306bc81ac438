package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRepoFile(t *testing.T, repoPath, name, content string) {
	t.Helper()
	path := filepath.Join(repoPath, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     Framework
	}{
		{
			name:     "react",
			manifest: `{"dependencies": {"react": "^18.2.0", "react-dom": "^18.2.0"}}`,
			want:     React,
		},
		{
			name:     "react without react-dom is not react",
			manifest: `{"dependencies": {"react": "^18.2.0"}}`,
			want:     Unknown,
		},
		{
			name:     "next wins over react",
			manifest: `{"dependencies": {"next": "13.4.0", "react": "^18.2.0", "react-dom": "^18.2.0"}}`,
			want:     NextJS,
		},
		{
			name:     "angular",
			manifest: `{"dependencies": {"@angular/core": "^16.0.0"}}`,
			want:     Angular,
		},
		{
			name:     "dev dependencies count",
			manifest: `{"devDependencies": {"next": "13.4.0"}}`,
			want:     NextJS,
		},
		{
			name:     "no framework markers",
			manifest: `{"dependencies": {"lodash": "^4.17.21"}}`,
			want:     Unknown,
		},
		{
			name:     "malformed manifest",
			manifest: `{"dependencies": `,
			want:     Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := t.TempDir()
			writeRepoFile(t, repo, "package.json", tt.manifest)
			assert.Equal(t, tt.want, Detect(repo))
		})
	}
}

func TestDetect_MissingManifest(t *testing.T) {
	assert.Equal(t, Unknown, Detect(t.TempDir()))
}

func TestFrameworkString(t *testing.T) {
	assert.Equal(t, "react", React.String())
	assert.Equal(t, "nextjs", NextJS.String())
	assert.Equal(t, "angular", Angular.String())
	assert.Equal(t, "unknown", Unknown.String())
}
