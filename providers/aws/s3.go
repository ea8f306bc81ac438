package aws

import (
	"context"
	"errors"
	"fmt"
	"io"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// publicReadPolicy grants anonymous GetObject on every object in the
// bucket, which is what static-website hosting needs.
const publicReadPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Sid": "PublicReadGetObject",
    "Effect": "Allow",
    "Principal": "*",
    "Action": ["s3:GetObject"],
    "Resource": "arn:aws:s3:::%s/*"
  }]
}`

// CreateSiteBucket creates the bucket, enables static-website hosting
// with index.html as both index and error document (single-page app
// routing), and attaches a public-read policy.
func (p *Provider) CreateSiteBucket(ctx context.Context, name string) error {
	input := &s3.CreateBucketInput{Bucket: awssdk.String(name)}
	// us-east-1 rejects an explicit location constraint.
	if p.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(p.region),
		}
	}

	if _, err := p.s3Client.CreateBucket(ctx, input); err != nil {
		var ae smithy.APIError
		// If already exists and owned by us, it's fine (idempotent for Create).
		if !errors.As(err, &ae) || ae.ErrorCode() != "BucketAlreadyOwnedByYou" {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	if _, err := p.s3Client.PutBucketWebsite(ctx, &s3.PutBucketWebsiteInput{
		Bucket: awssdk.String(name),
		WebsiteConfiguration: &s3types.WebsiteConfiguration{
			IndexDocument: &s3types.IndexDocument{Suffix: awssdk.String("index.html")},
			ErrorDocument: &s3types.ErrorDocument{Key: awssdk.String("index.html")},
		},
	}); err != nil {
		return fmt.Errorf("failed to configure website hosting: %w", err)
	}

	// Public bucket policies are rejected while the public access block
	// is in force; lift it for this bucket first.
	if _, err := p.s3Client.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: awssdk.String(name),
		PublicAccessBlockConfiguration: &s3types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       awssdk.Bool(false),
			BlockPublicPolicy:     awssdk.Bool(false),
			IgnorePublicAcls:      awssdk.Bool(false),
			RestrictPublicBuckets: awssdk.Bool(false),
		},
	}); err != nil {
		return fmt.Errorf("failed to lift public access block: %w", err)
	}

	if _, err := p.s3Client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: awssdk.String(name),
		Policy: awssdk.String(fmt.Sprintf(publicReadPolicy, name)),
	}); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

// BucketExists probes the bucket with a HEAD request.
func (p *Provider) BucketExists(ctx context.Context, name string) (bool, error) {
	_, err := p.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: awssdk.String(name),
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "NotFound" {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	return true, nil
}

// PutObject uploads one object with its content type and cache directive.
func (p *Provider) PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType, cacheControl string) error {
	_, err := p.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       awssdk.String(bucket),
		Key:          awssdk.String(key),
		Body:         body,
		ContentType:  awssdk.String(contentType),
		CacheControl: awssdk.String(cacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

// DeleteBucket empties the bucket and then deletes it. S3 refuses to
// delete a non-empty bucket.
func (p *Provider) DeleteBucket(ctx context.Context, name string) error {
	paginator := s3.NewListObjectsV2Paginator(p.s3Client, &s3.ListObjectsV2Input{
		Bucket: awssdk.String(name),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list bucket objects: %w", err)
		}
		if len(page.Contents) == 0 {
			continue
		}

		objects := make([]s3types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, s3types.ObjectIdentifier{Key: obj.Key})
		}

		if _, err := p.s3Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: awssdk.String(name),
			Delete: &s3types.Delete{Objects: objects, Quiet: awssdk.Bool(true)},
		}); err != nil {
			return fmt.Errorf("failed to delete bucket objects: %w", err)
		}
	}

	if _, err := p.s3Client.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: awssdk.String(name),
	}); err != nil {
		return fmt.Errorf("failed to delete bucket: %w", err)
	}
	return nil
}
