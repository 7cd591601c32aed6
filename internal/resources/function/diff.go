package function

import (
	"context"
	"reflect"
	"sort"

	"github.com/olusolaa/lambda-deployer/internal/core/ports"
	"github.com/olusolaa/lambda-deployer/pkg/compare"
	"github.com/olusolaa/lambda-deployer/pkg/normalize"
)

// HasChanged reports whether any field the caller supplied differs from the
// live configuration, logging one line per differing top-level field. Fields
// absent from desired are never inspected, so an unsupplied field can never
// trigger an update. The scan covers every supplied field rather than
// stopping at the first difference, so a single pass logs the full set.
//
// A nil or empty live configuration is treated as "no known live state" and
// always reports changed.
func HasChanged(ctx context.Context, live, desired map[string]any, logger ports.Logger) bool {
	if len(live) == 0 {
		logger.Infof(ctx, "No live configuration available, treating as changed")
		return true
	}

	normalized, present := normalize.Normalize(desired, APIStructuralRules)
	if !present {
		return false
	}
	supplied, ok := normalized.(map[string]any)
	if !ok {
		return false
	}

	fields := make([]string, 0, len(supplied))
	for field := range supplied {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	changed := false
	for _, field := range fields {
		desiredVal := supplied[field]
		liveVal, exists := live[field]

		if !exists {
			logger.Infof(ctx, "Configuration difference detected in %s", field)
			changed = true
			continue
		}

		if isComposite(desiredVal) {
			if liveVal == nil {
				liveVal = map[string]any{}
			}
			if !compare.Equal(desiredVal, liveVal) {
				logger.Infof(ctx, "Configuration difference detected in %s", field)
				changed = true
			}
			continue
		}

		if !compare.Equal(desiredVal, liveVal) {
			logger.Infof(ctx, "Configuration difference detected in %s: %v -> %v", field, liveVal, desiredVal)
			changed = true
		}
	}
	return changed
}

func isComposite(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}
