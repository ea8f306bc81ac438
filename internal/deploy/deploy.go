// Package deploy sequences the deployment pipeline: clone, detect,
// build, publish, record. It owns the cleanup of the ephemeral clone
// directory on every exit path.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/shipsite-io/shipsite/internal/logging"
	"github.com/shipsite-io/shipsite/internal/provider"
	"github.com/shipsite-io/shipsite/internal/site"
	"github.com/shipsite-io/shipsite/internal/state"
)

// ErrUnknownFramework is the terminal condition for a repository whose
// manifest matches none of the supported frameworks. Detection itself
// never fails; the deploy does.
var ErrUnknownFramework = errors.New("could not detect a supported framework (react, nextjs, angular)")

// Pipeline wires the deployment components around one provider and one
// state manager, both supplied per command invocation.
type Pipeline struct {
	Store  provider.ObjectStore
	State  *state.Manager
	Runner site.CommandRunner
	Debug  bool
}

// Result describes a completed deploy.
type Result struct {
	RepoName      string
	Framework     site.Framework
	Artifact      *site.Artifact
	Bucket        string
	BucketCreated bool
	URL           string
	Uploaded      int
}

// Deploy runs the full pipeline for one repository URL.
//
// A failure anywhere short-circuits before the state tracker is touched;
// the only state mutation is recording a bucket this deploy provisioned,
// and that happens only after every object is uploaded. The clone
// directory is removed on every path out, and a cleanup failure is a
// warning, never an operation failure.
func (p *Pipeline) Deploy(ctx context.Context, repoURL string) (*Result, error) {
	repoPath, repoName, err := site.Fetch(ctx, p.Runner, repoURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.RemoveAll(repoPath); err != nil {
			logging.Warn("could not fully clean up clone directory", "path", repoPath, "error", err)
		}
	}()

	fw := site.Detect(repoPath)
	if fw == site.Unknown {
		return nil, ErrUnknownFramework
	}
	logging.Info("detected framework", "framework", fw.String(), "repo", repoName)

	builder := &site.Builder{Runner: p.Runner}
	artifact, err := builder.Build(ctx, repoPath, fw)
	if err != nil {
		return nil, err
	}
	logging.Debug("resolved build artifact", "dir", artifact.Dir, "source", artifact.Source.String())

	bucket, created, err := p.targetBucket(ctx)
	if err != nil {
		return nil, err
	}

	publisher := &site.Publisher{Store: p.Store, Debug: p.Debug}
	uploaded, err := publisher.Publish(ctx, artifact.Dir, bucket)
	if err != nil {
		return nil, err
	}

	if created {
		// A persistence failure here is surfaced but the bucket is not
		// torn down: it already exists in the provider.
		if err := p.State.Record(state.Resource{Type: state.ResourceBucket, Name: bucket}); err != nil {
			return nil, err
		}
	}

	return &Result{
		RepoName:      repoName,
		Framework:     fw,
		Artifact:      artifact,
		Bucket:        bucket,
		BucketCreated: created,
		URL:           p.Store.WebsiteURL(bucket),
		Uploaded:      uploaded,
	}, nil
}

// targetBucket returns the first recorded site bucket, provisioning a
// fresh one when nothing is tracked yet.
func (p *Pipeline) targetBucket(ctx context.Context) (string, bool, error) {
	s, err := p.State.Load()
	if err != nil {
		return "", false, err
	}
	if buckets := s.Buckets(); len(buckets) > 0 {
		return buckets[0], false, nil
	}

	name := GenerateBucketName()
	logging.Info("no site bucket tracked, provisioning one", "bucket", name)
	if err := p.Store.CreateSiteBucket(ctx, name); err != nil {
		return "", false, fmt.Errorf("failed to provision bucket %s: %w", name, err)
	}
	return name, true, nil
}

// GenerateBucketName returns a unique site bucket name.
func GenerateBucketName() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "static-site-" + suffix
}
