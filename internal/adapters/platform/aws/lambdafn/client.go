package lambdafn

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/olusolaa/lambda-deployer/internal/adapters/platform/aws/classify"
	"github.com/olusolaa/lambda-deployer/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/lambda-deployer/internal/core/domain"
	"github.com/olusolaa/lambda-deployer/internal/core/ports"
)

// Client adapts the Lambda management API to ports.FunctionService. Every
// error leaving this type is already classified; the engine only decides what
// to do with the category.
type Client struct {
	api     LambdaAPI
	limiter *limiter.Limiter
	logger  ports.Logger
}

type ClientOption func(*Client)

// WithAPI overrides the underlying Lambda client, primarily for tests.
func WithAPI(api LambdaAPI) ClientOption {
	return func(c *Client) {
		if api != nil {
			c.api = api
		}
	}
}

func NewClient(cfg aws.Config, rps int, logger ports.Logger, opts ...ClientOption) *Client {
	c := &Client{
		api:     lambda.NewFromConfig(cfg),
		limiter: limiter.New(rps, logger),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetConfiguration(ctx context.Context, name string) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	out, err := c.api.GetFunctionConfiguration(ctx, &lambda.GetFunctionConfigurationInput{
		FunctionName: aws.String(name),
	})
	if err != nil {
		return nil, classify.ToAppError(err)
	}
	return liveConfigMap(out)
}

func (c *Client) Create(ctx context.Context, name string, cfg domain.FunctionConfig, code domain.CodeLocation) (domain.DeployOutput, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.DeployOutput{}, err
	}
	c.logger.Infof(ctx, "Creating function %s", name)
	out, err := c.api.CreateFunction(ctx, buildCreateInput(name, cfg, code))
	if err != nil {
		return domain.DeployOutput{}, classify.ToAppError(err)
	}
	return domain.DeployOutput{
		FunctionARN: aws.ToString(out.FunctionArn),
		Version:     aws.ToString(out.Version),
	}, nil
}

func (c *Client) UpdateConfiguration(ctx context.Context, name string, cfg domain.FunctionConfig) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	c.logger.Infof(ctx, "Updating configuration for function %s", name)
	_, err := c.api.UpdateFunctionConfiguration(ctx, buildUpdateConfigInput(name, cfg))
	if err != nil {
		return classify.ToAppError(err)
	}
	return nil
}

func (c *Client) UpdateCode(ctx context.Context, name string, code domain.CodeLocation, dryRun bool) (domain.DeployOutput, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.DeployOutput{}, err
	}

	in := &lambda.UpdateFunctionCodeInput{
		FunctionName: aws.String(name),
		DryRun:       dryRun,
	}
	if len(code.ZipFile) > 0 {
		in.ZipFile = code.ZipFile
	} else {
		in.S3Bucket = aws.String(code.S3Bucket)
		in.S3Key = aws.String(code.S3Key)
	}

	if dryRun {
		c.logger.Infof(ctx, "Updating code for function %s (dry run, validated but not persisted)", name)
	} else {
		c.logger.Infof(ctx, "Updating code for function %s", name)
	}

	out, err := c.api.UpdateFunctionCode(ctx, in)
	if err != nil {
		return domain.DeployOutput{}, classify.ToAppError(err)
	}
	return domain.DeployOutput{
		FunctionARN: aws.ToString(out.FunctionArn),
		Version:     aws.ToString(out.Version),
	}, nil
}
