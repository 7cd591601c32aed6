package app

import (
	"context"
	"fmt"

	"github.com/olusolaa/lambda-deployer/internal/core/ports"
	"github.com/olusolaa/lambda-deployer/internal/errors"
)

// Application runs one deployment pass and reports its outcome.
type Application struct {
	Engine   ports.DeployEngine
	Reporter ports.Reporter
	Logger   ports.Logger
}

func NewApplication(engine ports.DeployEngine, reporter ports.Reporter, logger ports.Logger) *Application {
	return &Application{
		Engine:   engine,
		Reporter: reporter,
		Logger:   logger,
	}
}

// Run executes the deployment. The report is rendered even on failure so any
// outputs published before the error stay visible, and the terminal error
// message carries the top-level wrapper around the operation-level text.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting deployment...")

	result, runErr := a.Engine.Run(ctx)

	if reportErr := a.Reporter.Report(ctx, result); reportErr != nil {
		a.Logger.Warnf(ctx, "Failed to render deployment report: %v", reportErr)
	}

	if runErr != nil {
		a.Logger.Errorf(ctx, runErr, "Deployment failed")
		msg, suggestion, _ := errors.GetUserFacingMessage(runErr)
		return errors.WrapUserFacing(runErr, errors.GetCode(runErr),
			fmt.Sprintf("Action failed with error: %s", msg), suggestion)
	}

	a.Logger.Infof(ctx, "Deployment completed successfully")
	return nil
}
