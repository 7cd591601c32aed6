package ports

import (
	"context"

	"github.com/olusolaa/lambda-deployer/internal/core/domain"
)

// FunctionService is the remote compute-function management API. Errors it
// returns are already classified AppErrors; absence of the function surfaces
// as CodeResourceMissing.
type FunctionService interface {
	// GetConfiguration fetches the live configuration as a generic field map
	// in the same representation the diff engine consumes.
	GetConfiguration(ctx context.Context, name string) (map[string]any, error)
	Create(ctx context.Context, name string, cfg domain.FunctionConfig, code domain.CodeLocation) (domain.DeployOutput, error)
	UpdateConfiguration(ctx context.Context, name string, cfg domain.FunctionConfig) error
	UpdateCode(ctx context.Context, name string, code domain.CodeLocation, dryRun bool) (domain.DeployOutput, error)
	// WaitUntilReady blocks until the function's last update completes.
	// maxWaitMinutes above the hard cap is clamped, not rejected.
	WaitUntilReady(ctx context.Context, name string, maxWaitMinutes int32) error
}

// ArtifactStore is the remote object-storage collaborator for deployment
// packages.
type ArtifactStore interface {
	// DefaultBucket derives the account-scoped artifact bucket name used when
	// the caller supplies none.
	DefaultBucket(ctx context.Context) (string, error)
	EnsureBucket(ctx context.Context, bucket string) error
	Upload(ctx context.Context, path, bucket, key string) error
}

// Packager turns a source directory into a byte-addressable deployment
// package and returns its path.
type Packager interface {
	Package(ctx context.Context, sourceDir string) (string, error)
}
