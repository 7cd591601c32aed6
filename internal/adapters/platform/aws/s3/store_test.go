package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/lambda-deployer/internal/core/ports"
	apperrors "github.com/olusolaa/lambda-deployer/internal/errors"
)

type nopLogger struct{}

func (nopLogger) Debugf(ctx context.Context, format string, args ...any)            {}
func (nopLogger) Infof(ctx context.Context, format string, args ...any)             {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...any)             {}
func (nopLogger) Errorf(ctx context.Context, err error, format string, args ...any) {}
func (l nopLogger) WithFields(fields map[string]any) ports.Logger                   { return l }

type fakeS3 struct {
	headErr     error
	createCalls int
	createIn    *s3.CreateBucketInput
	createErr   error
}

func (f *fakeS3) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.createCalls++
	f.createIn = params
	return &s3.CreateBucketOutput{}, f.createErr
}

type fakeSTS struct {
	account string
	err     error
}

func (f *fakeSTS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String(f.account)}, nil
}

type fakeUploader struct {
	calls int
	in    *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.calls++
	f.in = input
	if input.Body != nil {
		f.body, _ = io.ReadAll(input.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &manager.UploadOutput{}, nil
}

func newTestStore(s3c S3API, stsc STSAPI, up UploaderAPI) *Store {
	return NewStore(aws.Config{Region: "eu-west-1"}, 20, nopLogger{},
		WithS3Client(s3c), WithSTSClient(stsc), WithUploader(up))
}

func TestDefaultBucketName(t *testing.T) {
	assert.Equal(t, "lambda-deploy-artifacts-123456789012-eu-west-1",
		DefaultBucketName("123456789012", "eu-west-1"))
}

func TestDefaultBucketUsesCallerAccount(t *testing.T) {
	store := newTestStore(&fakeS3{}, &fakeSTS{account: "123456789012"}, &fakeUploader{})

	bucket, err := store.DefaultBucket(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lambda-deploy-artifacts-123456789012-eu-west-1", bucket)
}

func TestEnsureBucketExistingBucketIsNoOp(t *testing.T) {
	s3c := &fakeS3{}
	store := newTestStore(s3c, &fakeSTS{}, &fakeUploader{})

	require.NoError(t, store.EnsureBucket(context.Background(), "artifacts"))
	assert.Equal(t, 0, s3c.createCalls)
}

func TestEnsureBucketCreatesMissingBucket(t *testing.T) {
	s3c := &fakeS3{headErr: &s3types.NotFound{}}
	store := newTestStore(s3c, &fakeSTS{}, &fakeUploader{})

	require.NoError(t, store.EnsureBucket(context.Background(), "artifacts"))
	require.Equal(t, 1, s3c.createCalls)
	assert.Equal(t, "artifacts", aws.ToString(s3c.createIn.Bucket))
	require.NotNil(t, s3c.createIn.CreateBucketConfiguration)
	assert.Equal(t, s3types.BucketLocationConstraint("eu-west-1"),
		s3c.createIn.CreateBucketConfiguration.LocationConstraint)
}

func TestEnsureBucketOmitsConstraintInUSEast1(t *testing.T) {
	s3c := &fakeS3{headErr: &s3types.NotFound{}}
	store := NewStore(aws.Config{Region: "us-east-1"}, 20, nopLogger{},
		WithS3Client(s3c), WithSTSClient(&fakeSTS{}), WithUploader(&fakeUploader{}))

	require.NoError(t, store.EnsureBucket(context.Background(), "artifacts"))
	require.Equal(t, 1, s3c.createCalls)
	assert.Nil(t, s3c.createIn.CreateBucketConfiguration)
}

func TestEnsureBucketPropagatesUnexpectedHeadFailure(t *testing.T) {
	s3c := &fakeS3{headErr: fmt.Errorf("connection reset")}
	store := newTestStore(s3c, &fakeSTS{}, &fakeUploader{})

	err := store.EnsureBucket(context.Background(), "artifacts")
	require.Error(t, err)
	assert.Equal(t, 0, s3c.createCalls)
}

func TestUploadStreamsArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "function.zip")
	require.NoError(t, os.WriteFile(path, []byte("zip-bytes"), 0o644))

	up := &fakeUploader{}
	store := newTestStore(&fakeS3{}, &fakeSTS{}, up)

	require.NoError(t, store.Upload(context.Background(), path, "artifacts", "fn/1.zip"))
	require.Equal(t, 1, up.calls)
	assert.Equal(t, "artifacts", aws.ToString(up.in.Bucket))
	assert.Equal(t, "fn/1.zip", aws.ToString(up.in.Key))
	assert.Equal(t, []byte("zip-bytes"), up.body)
}

func TestUploadTransportFailureGetsUploadCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "function.zip")
	require.NoError(t, os.WriteFile(path, []byte("zip"), 0o644))

	up := &fakeUploader{err: fmt.Errorf("connection reset")}
	store := newTestStore(&fakeS3{}, &fakeSTS{}, up)

	err := store.Upload(context.Background(), path, "artifacts", "k")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeUploadError))
}

func TestUploadMissingArtifactGivesGuidance(t *testing.T) {
	up := &fakeUploader{}
	store := newTestStore(&fakeS3{}, &fakeSTS{}, up)

	err := store.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.zip"), "artifacts", "k")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeArtifactNotFound))
	assert.Equal(t, 0, up.calls)
}
