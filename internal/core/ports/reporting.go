package ports

import (
	"context"

	"github.com/olusolaa/lambda-deployer/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, result domain.DeployResult) error
}
