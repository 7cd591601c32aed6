package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/olusolaa/lambda-deployer/internal/adapters/platform/aws"
	"github.com/olusolaa/lambda-deployer/internal/adapters/platform/aws/lambdafn"
	awss3 "github.com/olusolaa/lambda-deployer/internal/adapters/platform/aws/s3"
	"github.com/olusolaa/lambda-deployer/internal/config"
	"github.com/olusolaa/lambda-deployer/internal/core/ports"
	"github.com/olusolaa/lambda-deployer/internal/core/service"
	"github.com/olusolaa/lambda-deployer/internal/errors"
	"github.com/olusolaa/lambda-deployer/internal/log"
	"github.com/olusolaa/lambda-deployer/internal/packaging"
	jsonreport "github.com/olusolaa/lambda-deployer/internal/reporting/json"
	"github.com/olusolaa/lambda-deployer/internal/reporting/text"
)

// BuildApplicationFromViper assembles the deployment pipeline: configuration,
// logger, AWS session, adapters, engine, reporter.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg := config.DefaultConfig()
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logCfg := log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Infof(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(ctx, cfg); err != nil {
		var details strings.Builder
		details.WriteString("Configuration validation failed:")
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range validationErrors {
				details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
			}
		} else {
			details.WriteString(fmt.Sprintf("\n - %v", err))
		}
		wrappedErr := errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file or flags.")
		logger.Errorf(ctx, wrappedErr, "Configuration validation failed")
		return nil, wrappedErr
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	awsCfg, err := aws.LoadConfig(ctx, cfg.Deploy.Region, cfg.Settings.MaxRetries)
	if err != nil {
		return nil, err
	}

	functions := lambdafn.NewClient(awsCfg, cfg.Settings.APIRateRPS, logger)
	store := awss3.NewStore(awsCfg, cfg.Settings.APIRateRPS, logger)
	packager := packaging.NewZipPackager("", logger)

	engine, err := service.NewDeployEngine(functions, store, packager, cfg, logger)
	if err != nil {
		return nil, err
	}

	var reporter ports.Reporter
	switch cfg.Settings.ReporterType {
	case jsonreport.ReporterTypeJSON:
		reporter, err = jsonreport.NewReporter(jsonreport.Config{}, logger)
	case text.ReporterTypeText, "":
		reporter, err = text.NewReporter(text.Config{}, logger)
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unknown reporter type '%s'", cfg.Settings.ReporterType),
			"Use 'text' or 'json'.")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "reporter initialization failed")
	}

	return NewApplication(engine, reporter, logger), nil
}
