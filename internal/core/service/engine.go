package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olusolaa/lambda-deployer/internal/config"
	"github.com/olusolaa/lambda-deployer/internal/core/domain"
	"github.com/olusolaa/lambda-deployer/internal/core/ports"
	"github.com/olusolaa/lambda-deployer/internal/errors"
	"github.com/olusolaa/lambda-deployer/internal/resources/function"
)

const (
	dryRunCreateMessage = "dry-run can only update existing resources"

	placeholderVersion = "dry-run"
)

// DeployEngine drives one deployment pass:
// package -> check exists -> create | (diff, update config, wait) -> update code.
// It is strictly sequential; every remote call is a suspend point and no state
// is shared across invocations.
type DeployEngine struct {
	functions ports.FunctionService
	store     ports.ArtifactStore
	packager  ports.Packager
	appConfig *config.Config
	logger    ports.Logger
	now       func() time.Time
}

func NewDeployEngine(
	functions ports.FunctionService,
	store ports.ArtifactStore,
	packager ports.Packager,
	appConfig *config.Config,
	logger ports.Logger,
) (*DeployEngine, error) {
	if functions == nil {
		return nil, errors.New(errors.CodeConfigValidation, "function service cannot be nil")
	}
	if packager == nil {
		return nil, errors.New(errors.CodeConfigValidation, "packager cannot be nil")
	}
	if appConfig == nil {
		return nil, errors.New(errors.CodeConfigValidation, "configuration cannot be nil")
	}
	return &DeployEngine{
		functions: functions,
		store:     store,
		packager:  packager,
		appConfig: appConfig,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Run executes the pass and always returns the result alongside any error, so
// outputs published before a failure stay visible to the reporter.
func (e *DeployEngine) Run(ctx context.Context) (domain.DeployResult, error) {
	deploy := &e.appConfig.Deploy
	result := domain.DeployResult{
		FunctionName: deploy.FunctionName,
		DryRun:       deploy.DryRun,
	}

	desired, err := deploy.FunctionConfig()
	if err != nil {
		return result, err
	}

	artifactPath, err := e.packager.Package(ctx, deploy.CodeArtifactsDir)
	if err != nil {
		return result, err
	}
	result.ArtifactPath = artifactPath

	e.logger.Infof(ctx, "Checking whether function %s exists", deploy.FunctionName)
	live, err := e.functions.GetConfiguration(ctx, deploy.FunctionName)
	exists := true
	if err != nil {
		// Absence is an answer here, not a failure.
		if errors.Is(err, errors.CodeResourceMissing) {
			exists = false
		} else {
			return result, err
		}
	}

	if !exists {
		return e.create(ctx, result, desired, artifactPath)
	}
	return e.update(ctx, result, live, desired, artifactPath)
}

func (e *DeployEngine) create(ctx context.Context, result domain.DeployResult, desired domain.FunctionConfig, artifactPath string) (domain.DeployResult, error) {
	deploy := &e.appConfig.Deploy

	if deploy.DryRun {
		return result, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("Function %s does not exist: %s", deploy.FunctionName, dryRunCreateMessage),
			"Create the function before running a dry-run deployment.")
	}
	if deploy.Role == "" {
		return result, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("Function %s does not exist and no role was provided to create it", deploy.FunctionName),
			"Supply a role ARN so the function can be created.")
	}

	code, err := e.resolveCode(ctx, &result, artifactPath)
	if err != nil {
		return result, err
	}

	out, err := e.functions.Create(ctx, deploy.FunctionName, desired, code)
	if err != nil {
		return result, err
	}

	result.Created = true
	result.CodeUpdated = true
	result.FunctionARN = out.FunctionARN
	result.Version = out.Version
	e.logger.Infof(ctx, "Created function %s (version %s)", deploy.FunctionName, out.Version)
	return result, nil
}

func (e *DeployEngine) update(ctx context.Context, result domain.DeployResult, live map[string]any, desired domain.FunctionConfig, artifactPath string) (domain.DeployResult, error) {
	deploy := &e.appConfig.Deploy

	desiredMap, err := function.DesiredMap(desired)
	if err != nil {
		return result, err
	}

	changed := function.HasChanged(ctx, live, desiredMap, e.logger)
	result.ConfigChanged = changed

	switch {
	case !changed:
		e.logger.Infof(ctx, "Configuration unchanged for %s, skipping configuration update", deploy.FunctionName)
	case deploy.DryRun:
		// Configuration changes are never simulated; only the code phase
		// carries a provider-side dry-run flag.
		e.logger.Infof(ctx, "[DRY RUN] Configuration change detected for %s, configuration updates are not applied in dry-run mode", deploy.FunctionName)
	default:
		if err := e.functions.UpdateConfiguration(ctx, deploy.FunctionName, desired); err != nil {
			return result, err
		}
		if err := e.functions.WaitUntilReady(ctx, deploy.FunctionName, deploy.MaxWaitMinutes); err != nil {
			return result, err
		}
	}

	code, err := e.resolveCode(ctx, &result, artifactPath)
	if err != nil {
		return result, err
	}

	out, err := e.functions.UpdateCode(ctx, deploy.FunctionName, code, deploy.DryRun)
	if err != nil {
		return result, err
	}
	if deploy.DryRun {
		// The validate-only call may omit outputs; synthesize placeholders so
		// downstream consumers still see both.
		if out.FunctionARN == "" {
			out.FunctionARN = fmt.Sprintf("dry-run:%s", deploy.FunctionName)
		}
		if out.Version == "" {
			out.Version = placeholderVersion
		}
	}

	result.CodeUpdated = true
	result.FunctionARN = out.FunctionARN
	result.Version = out.Version
	return result, nil
}

// resolveCode decides how UpdateCode addresses the artifact: inline zip bytes
// by default, or an S3 object when the caller opted into bucket storage.
func (e *DeployEngine) resolveCode(ctx context.Context, result *domain.DeployResult, artifactPath string) (domain.CodeLocation, error) {
	deploy := &e.appConfig.Deploy

	if !deploy.UseS3 && deploy.S3Bucket == "" {
		data, err := os.ReadFile(artifactPath)
		if err != nil {
			switch {
			case os.IsNotExist(err):
				return domain.CodeLocation{}, errors.WrapUserFacing(err, errors.CodeArtifactNotFound,
					fmt.Sprintf("Deployment package not found at %s", artifactPath),
					"Ensure the packaging step ran and produced an archive at this path.")
			case os.IsPermission(err):
				return domain.CodeLocation{}, errors.WrapUserFacing(err, errors.CodeArtifactIOError,
					fmt.Sprintf("Permission denied reading deployment package at %s", artifactPath),
					"Check file permissions on the packaged archive.")
			default:
				return domain.CodeLocation{}, errors.Wrap(err, errors.CodeArtifactIOError, "failed to read deployment package")
			}
		}
		return domain.CodeLocation{ZipFile: data}, nil
	}

	if e.store == nil {
		return domain.CodeLocation{}, errors.New(errors.CodeConfigValidation, "artifact store required for S3 uploads")
	}

	bucket := deploy.S3Bucket
	if bucket == "" {
		var err error
		bucket, err = e.store.DefaultBucket(ctx)
		if err != nil {
			return domain.CodeLocation{}, err
		}
		e.logger.Infof(ctx, "No artifact bucket supplied, using %s", bucket)
	}
	if err := e.store.EnsureBucket(ctx, bucket); err != nil {
		return domain.CodeLocation{}, err
	}

	key := deploy.S3Key
	if key == "" {
		key = fmt.Sprintf("%s/%d.zip", deploy.FunctionName, e.now().Unix())
	}
	if err := e.store.Upload(ctx, artifactPath, bucket, key); err != nil {
		return domain.CodeLocation{}, err
	}

	result.S3Bucket = bucket
	result.S3Key = key
	return domain.CodeLocation{S3Bucket: bucket, S3Key: key}, nil
}
