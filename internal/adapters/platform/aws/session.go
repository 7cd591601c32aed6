package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/olusolaa/lambda-deployer/internal/errors"
)

const defaultMaxRetryAttempts = 5

// LoadConfig builds the shared AWS session. Transport-level retries with
// adaptive backoff belong to the SDK client; the deployment core never
// retries on its own and only classifies whatever finally propagates.
func LoadConfig(ctx context.Context, region string, maxRetryAttempts int) (aws.Config, error) {
	if maxRetryAttempts <= 0 {
		maxRetryAttempts = defaultMaxRetryAttempts
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewAdaptiveMode(), maxRetryAttempts)
		}),
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, errors.CodeConfigValidation, "failed to load default AWS config")
	}
	return cfg, nil
}
