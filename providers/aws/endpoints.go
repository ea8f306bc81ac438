package aws

import "fmt"

// Regions that predate the dot-style website endpoint keep the legacy
// dash form.
var legacyWebsiteRegions = map[string]bool{
	"us-east-1":      true,
	"us-west-1":      true,
	"us-west-2":      true,
	"ap-southeast-1": true,
	"ap-southeast-2": true,
	"ap-northeast-1": true,
	"eu-west-1":      true,
	"sa-east-1":      true,
}

func websiteEndpoint(region string) string {
	if legacyWebsiteRegions[region] {
		return fmt.Sprintf("s3-website-%s.amazonaws.com", region)
	}
	return fmt.Sprintf("s3-website.%s.amazonaws.com", region)
}

// WebsiteURL returns the public website URL for a bucket in the
// provider's region.
func (p *Provider) WebsiteURL(name string) string {
	return fmt.Sprintf("http://%s.%s/", name, websiteEndpoint(p.region))
}
