// Package aws implements the object-storage capability on Amazon S3.
package aws

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/shipsite-io/shipsite/internal/config"
	"github.com/shipsite-io/shipsite/internal/provider"
)

// Provider talks to S3 and STS with a fixed credential record.
type Provider struct {
	region    string
	s3Client  *s3.Client
	stsClient *sts.Client
}

var _ provider.ObjectStore = (*Provider)(nil)

// New builds a provider from an explicit credential record. Clients are
// constructed once per command invocation and passed down; nothing is
// cached process-wide.
func New(ctx context.Context, creds config.Credentials) (*Provider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(creds.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &Provider{
		region:    creds.Region,
		s3Client:  s3.NewFromConfig(cfg),
		stsClient: sts.NewFromConfig(cfg),
	}, nil
}
