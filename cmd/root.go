package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/lambda-deployer/internal/app"
	apperrors "github.com/olusolaa/lambda-deployer/internal/errors"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lambda-deployer",
	Short: "Packages and deploys code to an AWS Lambda function.",
	Long: `lambda-deployer packages a source directory into a deployment archive,
uploads it when bucket storage is requested, and creates or updates the target
Lambda function. Configuration updates are only issued when the supplied
settings differ from the live configuration, and dry-run mode validates the
code update without persisting anything.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		application, buildErr := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper())
		if buildErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Application initialization failed: %v\n", buildErr)
			if msg, suggestion, ok := apperrors.GetUserFacingMessage(buildErr); ok {
				fmt.Fprintf(os.Stderr, "Error Details: %s\n", msg)
				if suggestion != "" {
					fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
				}
			}
			return buildErr
		}

		runErr := application.Run(cmd.Context())
		if runErr != nil {
			msg, suggestion, _ := apperrors.GetUserFacingMessage(runErr)
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", msg)
			if suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
			}
			return runErr
		}
		return nil
	},
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .lambda-deployer.yaml)")
	flags.String("log-level", "", "Override log level (debug, info, warn, error)")
	flags.String("log-format", "", "Override log format (text, json)")
	flags.String("reporter", "", "Report format (text, json)")

	flags.String("function-name", "", "Name of the Lambda function to deploy")
	flags.String("region", "", "AWS region of the function")
	flags.String("code-artifacts-dir", "", "Directory containing the built function code")
	flags.String("handler", "", "Function handler path")
	flags.String("runtime", "", "Function runtime identifier")
	flags.String("role", "", "Execution role ARN (required when creating)")
	flags.String("description", "", "Function description")
	flags.Int32("memory-size", 0, "Memory size in MB")
	flags.Int32("timeout", 0, "Timeout in seconds")
	flags.String("kms-key-arn", "", "KMS key ARN for environment encryption")
	flags.Int32("ephemeral-storage", 0, "Ephemeral storage size in MB")
	flags.StringSlice("architectures", nil, "Instruction set architectures (x86_64, arm64)")
	flags.String("environment", "", "Environment variables as a JSON object")
	flags.StringSlice("subnet-ids", nil, "VPC subnet IDs")
	flags.StringSlice("security-group-ids", nil, "VPC security group IDs")
	flags.String("dead-letter-target-arn", "", "Dead-letter queue or topic ARN")
	flags.String("tracing-mode", "", "Tracing mode (Active, PassThrough)")
	flags.StringSlice("layers", nil, "Layer version ARNs")
	flags.String("snap-start-apply-on", "", "Startup snapshot policy (PublishedVersions, None)")
	flags.String("s3-bucket", "", "Artifact bucket (enables S3-based code updates)")
	flags.String("s3-key", "", "Artifact object key")
	flags.Bool("use-s3", false, "Upload the package to S3 instead of sending inline bytes")
	flags.Bool("dry-run", false, "Validate the code update without persisting changes")
	flags.Int32("max-wait-minutes", 0, "Maximum minutes to wait for the function update to complete")

	viper.BindPFlag("settings.log_level", flags.Lookup("log-level"))
	viper.BindPFlag("settings.log_format", flags.Lookup("log-format"))
	viper.BindPFlag("settings.reporter", flags.Lookup("reporter"))
	viper.BindPFlag("deploy.function_name", flags.Lookup("function-name"))
	viper.BindPFlag("deploy.region", flags.Lookup("region"))
	viper.BindPFlag("deploy.code_artifacts_dir", flags.Lookup("code-artifacts-dir"))
	viper.BindPFlag("deploy.handler", flags.Lookup("handler"))
	viper.BindPFlag("deploy.runtime", flags.Lookup("runtime"))
	viper.BindPFlag("deploy.role", flags.Lookup("role"))
	viper.BindPFlag("deploy.description", flags.Lookup("description"))
	viper.BindPFlag("deploy.memory_size", flags.Lookup("memory-size"))
	viper.BindPFlag("deploy.timeout", flags.Lookup("timeout"))
	viper.BindPFlag("deploy.kms_key_arn", flags.Lookup("kms-key-arn"))
	viper.BindPFlag("deploy.ephemeral_storage", flags.Lookup("ephemeral-storage"))
	viper.BindPFlag("deploy.architectures", flags.Lookup("architectures"))
	viper.BindPFlag("deploy.environment", flags.Lookup("environment"))
	viper.BindPFlag("deploy.subnet_ids", flags.Lookup("subnet-ids"))
	viper.BindPFlag("deploy.security_group_ids", flags.Lookup("security-group-ids"))
	viper.BindPFlag("deploy.dead_letter_target_arn", flags.Lookup("dead-letter-target-arn"))
	viper.BindPFlag("deploy.tracing_mode", flags.Lookup("tracing-mode"))
	viper.BindPFlag("deploy.layers", flags.Lookup("layers"))
	viper.BindPFlag("deploy.snap_start_apply_on", flags.Lookup("snap-start-apply-on"))
	viper.BindPFlag("deploy.s3_bucket", flags.Lookup("s3-bucket"))
	viper.BindPFlag("deploy.s3_key", flags.Lookup("s3-key"))
	viper.BindPFlag("deploy.use_s3", flags.Lookup("use-s3"))
	viper.BindPFlag("deploy.dry_run", flags.Lookup("dry-run"))
	viper.BindPFlag("deploy.max_wait_minutes", flags.Lookup("max-wait-minutes"))

	viper.SetEnvPrefix("LAMBDA_DEPLOY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".lambda-deployer")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using configuration file:", viper.ConfigFileUsed())
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Fprintln(os.Stderr, "Config file not found, using defaults and environment variables.")
		} else {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}
	return nil
}
