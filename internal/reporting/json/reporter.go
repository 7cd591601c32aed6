package json

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/lambda-deployer/internal/core/domain"
	"github.com/olusolaa/lambda-deployer/internal/core/ports"
)

const ReporterTypeJSON = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct{}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

type jsonReport struct {
	FunctionName  string `json:"function_name"`
	FunctionARN   string `json:"function_arn,omitempty"`
	Version       string `json:"version,omitempty"`
	Created       bool   `json:"created"`
	ConfigChanged bool   `json:"config_changed"`
	CodeUpdated   bool   `json:"code_updated"`
	DryRun        bool   `json:"dry_run"`
	ArtifactPath  string `json:"artifact_path,omitempty"`
	S3Bucket      string `json:"s3_bucket,omitempty"`
	S3Key         string `json:"s3_key,omitempty"`
}

func (r *Reporter) Report(ctx context.Context, result domain.DeployResult) error {
	report := jsonReport(result)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode deployment report: %w", err)
	}
	_, err = fmt.Fprintln(r.writer, string(data))
	return err
}
