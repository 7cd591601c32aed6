package config

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/lambda-deployer/internal/core/domain"
	"github.com/olusolaa/lambda-deployer/internal/errors"
	"github.com/olusolaa/lambda-deployer/internal/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	Settings SettingsConfig `mapstructure:"settings" yaml:"settings"`
	Deploy   DeployConfig   `mapstructure:"deploy" yaml:"deploy" validate:"required"`
}

type SettingsConfig struct {
	LogLevel     log.Level  `mapstructure:"log_level" yaml:"log_level"`
	LogFormat    log.Format `mapstructure:"log_format" yaml:"log_format"`
	APIRateRPS   int        `mapstructure:"api_rate_rps" yaml:"api_rate_rps"`
	MaxRetries   int        `mapstructure:"max_retries" yaml:"max_retries"`
	ReporterType string     `mapstructure:"reporter" yaml:"reporter"`
}

// DeployConfig is the validated record of caller-supplied inputs for one
// deployment. Empty strings and zero numbers mean "not supplied"; only
// supplied fields flow into the desired configuration.
type DeployConfig struct {
	FunctionName     string `mapstructure:"function_name" yaml:"function_name" validate:"required"`
	Region           string `mapstructure:"region" yaml:"region"`
	CodeArtifactsDir string `mapstructure:"code_artifacts_dir" yaml:"code_artifacts_dir" validate:"required"`

	Handler          string `mapstructure:"handler" yaml:"handler"`
	Runtime          string `mapstructure:"runtime" yaml:"runtime"`
	Role             string `mapstructure:"role" yaml:"role"`
	Description      string `mapstructure:"description" yaml:"description"`
	MemorySize       int32  `mapstructure:"memory_size" yaml:"memory_size" validate:"omitempty,min=128,max=10240"`
	Timeout          int32  `mapstructure:"timeout" yaml:"timeout" validate:"omitempty,min=1,max=900"`
	KMSKeyArn        string `mapstructure:"kms_key_arn" yaml:"kms_key_arn"`
	EphemeralStorage int32  `mapstructure:"ephemeral_storage" yaml:"ephemeral_storage" validate:"omitempty,min=512,max=10240"`

	Architectures []string `mapstructure:"architectures" yaml:"architectures" validate:"omitempty,dive,oneof=x86_64 arm64"`

	// EnvironmentJSON is a JSON object of environment variables, matching the
	// wire shape of the service's Variables map.
	EnvironmentJSON string `mapstructure:"environment" yaml:"environment"`

	SubnetIds        []string `mapstructure:"subnet_ids" yaml:"subnet_ids"`
	SecurityGroupIds []string `mapstructure:"security_group_ids" yaml:"security_group_ids"`

	DeadLetterTargetArn string   `mapstructure:"dead_letter_target_arn" yaml:"dead_letter_target_arn"`
	TracingMode         string   `mapstructure:"tracing_mode" yaml:"tracing_mode" validate:"omitempty,oneof=Active PassThrough"`
	Layers              []string `mapstructure:"layers" yaml:"layers"`

	FileSystemArn       string `mapstructure:"file_system_arn" yaml:"file_system_arn"`
	FileSystemMountPath string `mapstructure:"file_system_mount_path" yaml:"file_system_mount_path"`

	ImageEntryPoint       []string `mapstructure:"image_entry_point" yaml:"image_entry_point"`
	ImageCommand          []string `mapstructure:"image_command" yaml:"image_command"`
	ImageWorkingDirectory string   `mapstructure:"image_working_directory" yaml:"image_working_directory"`

	SnapStartApplyOn string `mapstructure:"snap_start_apply_on" yaml:"snap_start_apply_on" validate:"omitempty,oneof=PublishedVersions None"`

	LogFormat           string `mapstructure:"log_format" yaml:"log_format" validate:"omitempty,oneof=Text JSON"`
	ApplicationLogLevel string `mapstructure:"application_log_level" yaml:"application_log_level"`
	SystemLogLevel      string `mapstructure:"system_log_level" yaml:"system_log_level"`
	LogGroup            string `mapstructure:"log_group" yaml:"log_group"`

	S3Bucket string `mapstructure:"s3_bucket" yaml:"s3_bucket"`
	S3Key    string `mapstructure:"s3_key" yaml:"s3_key"`
	UseS3    bool   `mapstructure:"use_s3" yaml:"use_s3"`

	DryRun         bool  `mapstructure:"dry_run" yaml:"dry_run"`
	MaxWaitMinutes int32 `mapstructure:"max_wait_minutes" yaml:"max_wait_minutes"`
}

// FunctionConfig builds the desired configuration from the supplied fields
// only. Unsupplied inputs stay nil so they never participate in the diff.
func (d *DeployConfig) FunctionConfig() (domain.FunctionConfig, error) {
	cfg := domain.FunctionConfig{}

	cfg.Handler = optionalString(d.Handler)
	cfg.Runtime = optionalString(d.Runtime)
	cfg.Role = optionalString(d.Role)
	cfg.Description = optionalString(d.Description)
	cfg.KMSKeyArn = optionalString(d.KMSKeyArn)
	cfg.MemorySize = optionalInt32(d.MemorySize)
	cfg.Timeout = optionalInt32(d.Timeout)

	if d.EphemeralStorage > 0 {
		cfg.EphemeralStorage = &domain.EphemeralStorage{Size: optionalInt32(d.EphemeralStorage)}
	}
	if len(d.Architectures) > 0 {
		cfg.Architectures = d.Architectures
	}

	if d.EnvironmentJSON != "" {
		vars := map[string]string{}
		if err := json.Unmarshal([]byte(d.EnvironmentJSON), &vars); err != nil {
			return domain.FunctionConfig{}, errors.NewUserFacing(errors.CodeConfigValidation,
				"environment must be a JSON object of string values",
				`Pass environment variables as a JSON object, for example {"ENV":"prod"}.`)
		}
		cfg.Environment = &domain.Environment{Variables: vars}
	}

	if len(d.SubnetIds) > 0 || len(d.SecurityGroupIds) > 0 {
		cfg.VpcConfig = &domain.VpcConfig{
			SubnetIds:        emptyIfNil(d.SubnetIds),
			SecurityGroupIds: emptyIfNil(d.SecurityGroupIds),
		}
	}

	if d.DeadLetterTargetArn != "" {
		cfg.DeadLetterConfig = &domain.DeadLetterConfig{TargetArn: optionalString(d.DeadLetterTargetArn)}
	}
	if d.TracingMode != "" {
		cfg.TracingConfig = &domain.TracingConfig{Mode: optionalString(d.TracingMode)}
	}
	if len(d.Layers) > 0 {
		cfg.Layers = d.Layers
	}
	if d.FileSystemArn != "" && d.FileSystemMountPath != "" {
		cfg.FileSystemConfigs = []domain.FileSystemConfig{{
			Arn:            optionalString(d.FileSystemArn),
			LocalMountPath: optionalString(d.FileSystemMountPath),
		}}
	}
	if len(d.ImageEntryPoint) > 0 || len(d.ImageCommand) > 0 || d.ImageWorkingDirectory != "" {
		cfg.ImageConfig = &domain.ImageConfig{
			EntryPoint:       d.ImageEntryPoint,
			Command:          d.ImageCommand,
			WorkingDirectory: optionalString(d.ImageWorkingDirectory),
		}
	}
	if d.SnapStartApplyOn != "" {
		cfg.SnapStart = &domain.SnapStart{ApplyOn: optionalString(d.SnapStartApplyOn)}
	}
	if d.LogFormat != "" || d.ApplicationLogLevel != "" || d.SystemLogLevel != "" || d.LogGroup != "" {
		cfg.LoggingConfig = &domain.LoggingConfig{
			LogFormat:           optionalString(d.LogFormat),
			ApplicationLogLevel: optionalString(d.ApplicationLogLevel),
			SystemLogLevel:      optionalString(d.SystemLogLevel),
			LogGroup:            optionalString(d.LogGroup),
		}
	}

	return cfg, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt32(v int32) *int32 {
	if v == 0 {
		return nil
	}
	return &v
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			APIRateRPS:   20,
			MaxRetries:   5,
			ReporterType: "text",
		},
		Deploy: DeployConfig{
			MaxWaitMinutes: 5,
		},
	}
}
