package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/olusolaa/lambda-deployer/internal/core/domain"
	"github.com/olusolaa/lambda-deployer/internal/core/ports"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color" yaml:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}
	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, _ := f.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, result domain.DeployResult) error {
	header := color.New(color.Bold)
	if result.DryRun {
		header.Fprintln(r.writer, "Deployment summary (DRY RUN)")
	} else {
		header.Fprintln(r.writer, "Deployment summary")
	}

	w := tabwriter.NewWriter(r.writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Function:\t%s\n", result.FunctionName)
	if result.FunctionARN != "" {
		fmt.Fprintf(w, "ARN:\t%s\n", result.FunctionARN)
	}
	if result.Version != "" {
		fmt.Fprintf(w, "Version:\t%s\n", result.Version)
	}
	fmt.Fprintf(w, "Action:\t%s\n", actionLabel(result))
	fmt.Fprintf(w, "Configuration changed:\t%v\n", result.ConfigChanged)
	if result.ArtifactPath != "" {
		fmt.Fprintf(w, "Package:\t%s\n", result.ArtifactPath)
	}
	if result.S3Bucket != "" {
		fmt.Fprintf(w, "Uploaded to:\ts3://%s/%s\n", result.S3Bucket, result.S3Key)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	switch {
	case result.DryRun:
		color.Yellow("No changes were applied.")
	case result.Created:
		color.Green("Function created.")
	case result.CodeUpdated:
		color.Green("Function updated.")
	}
	return nil
}

func actionLabel(result domain.DeployResult) string {
	switch {
	case result.Created:
		return "created"
	case result.CodeUpdated && result.ConfigChanged:
		return "configuration and code updated"
	case result.CodeUpdated:
		return "code updated"
	default:
		return "no update issued"
	}
}
