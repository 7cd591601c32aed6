package lambdafn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/olusolaa/lambda-deployer/internal/adapters/platform/aws/classify"
	"github.com/olusolaa/lambda-deployer/internal/core/ports"
	apperrors "github.com/olusolaa/lambda-deployer/internal/errors"
)

const (
	// DefaultWaitMinutes is used when the caller supplies no wait budget.
	DefaultWaitMinutes int32 = 5
	// MaxWaitMinutes is the hard cap; larger requests are clamped, not rejected.
	MaxWaitMinutes int32 = 30
)

func clampWaitMinutes(ctx context.Context, requested int32, logger ports.Logger) int32 {
	if requested <= 0 {
		return DefaultWaitMinutes
	}
	if requested > MaxWaitMinutes {
		logger.Infof(ctx, "Requested wait of %d minutes exceeds the maximum, clamping to %d minutes", requested, MaxWaitMinutes)
		return MaxWaitMinutes
	}
	return requested
}

// WaitUntilReady blocks on the service's own waiter until the function's last
// update reaches a terminal state. Timeout, disappearance, and permission
// failures each get their own operator message rather than the generic
// category text, because the remedy differs for a wait that failed mid-flight.
func (c *Client) WaitUntilReady(ctx context.Context, name string, maxWaitMinutes int32) error {
	minutes := clampWaitMinutes(ctx, maxWaitMinutes, c.logger)
	c.logger.Debugf(ctx, "Waiting up to %d minutes for function %s to finish updating", minutes, name)

	waiter := lambda.NewFunctionUpdatedV2Waiter(c.api)
	err := waiter.Wait(ctx, &lambda.GetFunctionInput{FunctionName: aws.String(name)}, time.Duration(minutes)*time.Minute)
	if err == nil {
		return nil
	}
	return wrapWaitError(err, name, minutes)
}

func wrapWaitError(err error, name string, minutes int32) error {
	switch {
	case strings.Contains(err.Error(), "exceeded max wait time"):
		return apperrors.WrapUserFacing(err, apperrors.CodeTimeout,
			fmt.Sprintf("Function %s did not finish updating within %d minutes", name, minutes),
			"Increase the wait budget or inspect the function's last update status in the console.")
	case classify.Classify(err).Category == classify.CategoryResourceMissing:
		return apperrors.WrapUserFacing(err, apperrors.CodeResourceMissing,
			fmt.Sprintf("Function %s disappeared while waiting for its update to complete", name),
			"Check whether another process deleted the function mid-deployment.")
	case classify.Classify(err).Category == classify.CategoryAccessDenied:
		return apperrors.WrapUserFacing(err, apperrors.CodeAccessDenied,
			fmt.Sprintf("Permission denied while polling function %s for readiness", name),
			"The credentials need lambda:GetFunction to observe update completion.")
	default:
		return classify.ToAppError(err)
	}
}
