// Package null provides an in-memory ObjectStore used in tests and as a
// reference implementation of the capability contract.
package null

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// Object is one stored object with its classification metadata.
type Object struct {
	Body         []byte
	ContentType  string
	CacheControl string
}

// Provider implements provider.ObjectStore over process memory. It
// records call counts and supports fault injection for abort-path tests.
type Provider struct {
	mu      sync.Mutex
	buckets map[string]map[string]Object

	// AccountID is returned by VerifyIdentity.
	AccountID string
	// VerifyErr, when set, makes VerifyIdentity fail.
	VerifyErr error
	// FailPutKey makes PutObject fail for a specific key.
	FailPutKey string
	// FailDeleteBucket makes DeleteBucket fail for a specific bucket.
	FailDeleteBucket string

	// Call counters.
	Verifies int
	Creates  int
	Puts     int
	Deletes  int
	Heads    int
}

func New() *Provider {
	return &Provider{
		buckets:   make(map[string]map[string]Object),
		AccountID: "000000000000",
	}
}

func (p *Provider) VerifyIdentity(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Verifies++
	if p.VerifyErr != nil {
		return "", p.VerifyErr
	}
	return p.AccountID, nil
}

func (p *Provider) CreateSiteBucket(ctx context.Context, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Creates++
	// Re-creating an owned bucket is not an error, matching the real
	// provider contract.
	if _, ok := p.buckets[name]; !ok {
		p.buckets[name] = make(map[string]Object)
	}
	return nil
}

func (p *Provider) BucketExists(ctx context.Context, name string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Heads++
	_, ok := p.buckets[name]
	return ok, nil
}

func (p *Provider) PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType, cacheControl string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Puts++

	if key == p.FailPutKey {
		return fmt.Errorf("injected put failure for %q", key)
	}

	objects, ok := p.buckets[bucket]
	if !ok {
		return fmt.Errorf("bucket %q does not exist", bucket)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read object body: %w", err)
	}
	objects[key] = Object{Body: data, ContentType: contentType, CacheControl: cacheControl}
	return nil
}

func (p *Provider) DeleteBucket(ctx context.Context, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Deletes++

	if name == p.FailDeleteBucket {
		return fmt.Errorf("injected delete failure for %q", name)
	}
	if _, ok := p.buckets[name]; !ok {
		return fmt.Errorf("bucket %q does not exist", name)
	}
	delete(p.buckets, name)
	return nil
}

func (p *Provider) WebsiteURL(name string) string {
	return fmt.Sprintf("http://%s.null.localhost/", name)
}

// Objects returns a copy of a bucket's contents, for assertions.
func (p *Provider) Objects(bucket string) map[string]Object {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]Object, len(p.buckets[bucket]))
	for k, v := range p.buckets[bucket] {
		out[k] = v
	}
	return out
}

// BucketNames returns the existing bucket names in lexical order.
func (p *Provider) BucketNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, 0, len(p.buckets))
	for name := range p.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
