package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// VerifyIdentity checks the credentials against the identity endpoint
// and returns the account ID they belong to.
func (p *Provider) VerifyIdentity(ctx context.Context) (string, error) {
	out, err := p.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to verify credentials: %w", err)
	}
	return awssdk.ToString(out.Account), nil
}
