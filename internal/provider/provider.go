// Package provider defines the capability interface the deployment
// pipeline needs from a cloud object-storage provider. Implementations
// live under providers/.
package provider

import (
	"context"
	"io"
)

// ObjectStore is the object-storage capability: bucket lifecycle,
// static-website configuration and object upload. It is constructed once
// per command invocation from an explicit credential record and passed
// down to the components that need it.
type ObjectStore interface {
	// VerifyIdentity checks the credentials against the provider's
	// identity endpoint and returns the account identifier.
	VerifyIdentity(ctx context.Context) (string, error)

	// CreateSiteBucket creates a bucket configured for public
	// static-website hosting. Creating a bucket that already exists and
	// is owned by the caller is not an error.
	CreateSiteBucket(ctx context.Context, name string) error

	// BucketExists reports whether the bucket is still present in the
	// provider. Tracked state may drift; this is the lazy check.
	BucketExists(ctx context.Context, name string) (bool, error)

	// PutObject uploads one object with its content type and cache
	// directive.
	PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType, cacheControl string) error

	// DeleteBucket empties the bucket and deletes it.
	DeleteBucket(ctx context.Context, name string) error

	// WebsiteURL returns the public website URL for a bucket.
	WebsiteURL(name string) string
}
