// Package awsapi holds the thin aws-sdk-go-v2 glue feeding both monitors.
package awsapi

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// LoadConfig builds an AWS client config from a region and a shared
// credentials file path.
func LoadConfig(ctx context.Context, region, credentialsFile string) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithSharedCredentialsFiles([]string{credentialsFile}),
	)
}
