package lambdafn

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/lambda-deployer/internal/core/domain"
)

func TestLiveConfigMapNil(t *testing.T) {
	m, err := liveConfigMap(nil)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestLiveConfigMapStripsNullsAndMetadata(t *testing.T) {
	out := &lambda.GetFunctionConfigurationOutput{
		FunctionName: aws.String("fn"),
		MemorySize:   aws.Int32(256),
		// Runtime, Handler, etc. left unset and must not appear as nulls.
	}

	live, err := liveConfigMap(out)
	require.NoError(t, err)

	assert.Equal(t, "fn", live["FunctionName"])
	assert.Equal(t, float64(256), live[domain.KeyMemorySize])
	assert.NotContains(t, live, "ResultMetadata")
	for key, value := range live {
		assert.NotNil(t, value, "live field %s must not be null", key)
	}
}

func TestLiveConfigMapFlattensLayersToARNs(t *testing.T) {
	out := &lambda.GetFunctionConfigurationOutput{
		FunctionName: aws.String("fn"),
		Layers: []lambdatypes.Layer{
			{Arn: aws.String("arn:aws:lambda:us-east-1:123:layer:a:1"), CodeSize: 100},
			{Arn: aws.String("arn:aws:lambda:us-east-1:123:layer:b:2"), CodeSize: 200},
		},
	}

	live, err := liveConfigMap(out)
	require.NoError(t, err)

	assert.Equal(t, []any{
		"arn:aws:lambda:us-east-1:123:layer:a:1",
		"arn:aws:lambda:us-east-1:123:layer:b:2",
	}, live[domain.KeyLayers])
}

func TestLiveConfigMapKeepsExplicitEmptyValues(t *testing.T) {
	out := &lambda.GetFunctionConfigurationOutput{
		FunctionName: aws.String("fn"),
		Description:  aws.String(""),
	}

	live, err := liveConfigMap(out)
	require.NoError(t, err)
	assert.Equal(t, "", live[domain.KeyDescription])
}

func TestBuildUpdateConfigInputSkipsUnsuppliedFields(t *testing.T) {
	in := buildUpdateConfigInput("fn", domain.FunctionConfig{})

	assert.Equal(t, "fn", aws.ToString(in.FunctionName))
	assert.Empty(t, in.Runtime)
	assert.Nil(t, in.Handler)
	assert.Nil(t, in.Role)
	assert.Nil(t, in.MemorySize)
	assert.Nil(t, in.Environment)
	assert.Nil(t, in.VpcConfig)
	assert.Nil(t, in.Layers)
	assert.Nil(t, in.LoggingConfig)
}

func TestBuildUpdateConfigInputCarriesSuppliedFields(t *testing.T) {
	cfg := domain.FunctionConfig{
		Runtime:    aws.String("python3.12"),
		Handler:    aws.String("app.handler"),
		MemorySize: aws.Int32(512),
		Timeout:    aws.Int32(30),
		Environment: &domain.Environment{
			Variables: map[string]string{"ENV": "prod"},
		},
		TracingConfig: &domain.TracingConfig{Mode: aws.String("Active")},
		Layers:        []string{"arn:aws:lambda:us-east-1:123:layer:a:1"},
	}

	in := buildUpdateConfigInput("fn", cfg)

	assert.Equal(t, lambdatypes.Runtime("python3.12"), in.Runtime)
	assert.Equal(t, "app.handler", aws.ToString(in.Handler))
	assert.Equal(t, int32(512), aws.ToInt32(in.MemorySize))
	assert.Equal(t, int32(30), aws.ToInt32(in.Timeout))
	require.NotNil(t, in.Environment)
	assert.Equal(t, map[string]string{"ENV": "prod"}, in.Environment.Variables)
	require.NotNil(t, in.TracingConfig)
	assert.Equal(t, lambdatypes.TracingModeActive, in.TracingConfig.Mode)
	assert.Equal(t, cfg.Layers, in.Layers)
}

func TestBuildUpdateConfigInputBackfillsVpcLists(t *testing.T) {
	in := buildUpdateConfigInput("fn", domain.FunctionConfig{
		VpcConfig: &domain.VpcConfig{SubnetIds: []string{"subnet-1"}},
	})

	require.NotNil(t, in.VpcConfig)
	assert.Equal(t, []string{"subnet-1"}, in.VpcConfig.SubnetIds)
	// A supplied VpcConfig always sends both lists; an absent list means
	// "detach" to the service, not "leave as is".
	assert.NotNil(t, in.VpcConfig.SecurityGroupIds)
	assert.Empty(t, in.VpcConfig.SecurityGroupIds)
}

func TestBuildCreateInputZipCode(t *testing.T) {
	in := buildCreateInput("fn", domain.FunctionConfig{
		Role:          aws.String("arn:aws:iam::123:role/deploy"),
		Architectures: []string{"arm64"},
	}, domain.CodeLocation{ZipFile: []byte("zip-bytes")})

	assert.Equal(t, "fn", aws.ToString(in.FunctionName))
	assert.Equal(t, "arn:aws:iam::123:role/deploy", aws.ToString(in.Role))
	assert.Equal(t, []lambdatypes.Architecture{lambdatypes.ArchitectureArm64}, in.Architectures)
	require.NotNil(t, in.Code)
	assert.Equal(t, []byte("zip-bytes"), in.Code.ZipFile)
	assert.Nil(t, in.Code.S3Bucket)
}

func TestBuildCreateInputS3Code(t *testing.T) {
	in := buildCreateInput("fn", domain.FunctionConfig{}, domain.CodeLocation{
		S3Bucket: "artifacts",
		S3Key:    "fn/1.zip",
	})

	require.NotNil(t, in.Code)
	assert.Nil(t, in.Code.ZipFile)
	assert.Equal(t, "artifacts", aws.ToString(in.Code.S3Bucket))
	assert.Equal(t, "fn/1.zip", aws.ToString(in.Code.S3Key))
}
