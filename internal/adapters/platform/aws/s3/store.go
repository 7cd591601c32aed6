// Package s3 stores packaged deployment artifacts in an S3 bucket, creating
// the account-scoped default bucket when none is supplied.
package s3

import (
	"context"
	stderrs "errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/olusolaa/lambda-deployer/internal/adapters/platform/aws/classify"
	"github.com/olusolaa/lambda-deployer/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/lambda-deployer/internal/core/ports"
	apperrors "github.com/olusolaa/lambda-deployer/internal/errors"
)

const defaultBucketPrefix = "lambda-deploy-artifacts"

type S3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type UploaderAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Store implements ports.ArtifactStore.
type Store struct {
	s3Client  S3API
	stsClient STSAPI
	uploader  UploaderAPI
	region    string
	limiter   *limiter.Limiter
	logger    ports.Logger
}

type StoreOption func(*Store)

func WithS3Client(client S3API) StoreOption {
	return func(s *Store) {
		if client != nil {
			s.s3Client = client
		}
	}
}

func WithSTSClient(client STSAPI) StoreOption {
	return func(s *Store) {
		if client != nil {
			s.stsClient = client
		}
	}
}

func WithUploader(uploader UploaderAPI) StoreOption {
	return func(s *Store) {
		if uploader != nil {
			s.uploader = uploader
		}
	}
}

func NewStore(cfg aws.Config, rps int, logger ports.Logger, opts ...StoreOption) *Store {
	client := s3.NewFromConfig(cfg)
	s := &Store{
		s3Client:  client,
		stsClient: sts.NewFromConfig(cfg),
		uploader:  manager.NewUploader(client),
		region:    cfg.Region,
		limiter:   limiter.New(rps, logger),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultBucket derives the artifact bucket name from the caller's account so
// repeated deployments in one account share a bucket.
func (s *Store) DefaultBucket(ctx context.Context) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	out, err := s.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", classify.ToAppError(err)
	}
	return DefaultBucketName(aws.ToString(out.Account), s.region), nil
}

func DefaultBucketName(accountID, region string) string {
	return fmt.Sprintf("%s-%s-%s", defaultBucketPrefix, accountID, region)
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context, bucket string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := s.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}

	var notFound *s3types.NotFound
	if !stderrs.As(err, &notFound) && classify.Classify(err).Category != classify.CategoryResourceMissing {
		return classify.ToAppError(err)
	}

	s.logger.Infof(ctx, "Artifact bucket %s does not exist, creating it", bucket)
	in := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	// us-east-1 rejects an explicit location constraint.
	if s.region != "" && s.region != "us-east-1" {
		in.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(s.region),
		}
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := s.s3Client.CreateBucket(ctx, in); err != nil {
		return classify.ToAppError(err)
	}
	return nil
}

// Upload streams the packaged artifact to the bucket. Read failures on the
// local archive surface with operator guidance distinct from transport errors.
func (s *Store) Upload(ctx context.Context, path, bucket, key string) error {
	f, err := os.Open(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return apperrors.WrapUserFacing(err, apperrors.CodeArtifactNotFound,
				fmt.Sprintf("Deployment package not found at %s", path),
				"Ensure the packaging step ran and produced an archive at this path.")
		case os.IsPermission(err):
			return apperrors.WrapUserFacing(err, apperrors.CodeArtifactIOError,
				fmt.Sprintf("Permission denied reading deployment package at %s", path),
				"Check file permissions on the packaged archive.")
		default:
			return apperrors.Wrap(err, apperrors.CodeArtifactIOError, "failed to open deployment package")
		}
	}
	defer f.Close()

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	s.logger.Infof(ctx, "Uploading deployment package to s3://%s/%s", bucket, key)
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		if classify.Classify(err).Category != classify.CategoryUnknown {
			return classify.ToAppError(err)
		}
		return apperrors.WrapUserFacing(err, apperrors.CodeUploadError,
			fmt.Sprintf("Failed to upload deployment package to s3://%s/%s", bucket, key),
			"Check network connectivity and write access to the bucket.")
	}
	return nil
}
