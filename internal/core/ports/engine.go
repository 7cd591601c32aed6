package ports

import (
	"context"

	"github.com/olusolaa/lambda-deployer/internal/core/domain"
)

type DeployEngine interface {
	Run(ctx context.Context) (domain.DeployResult, error)
}
