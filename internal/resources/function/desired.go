package function

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/lambda-deployer/internal/core/domain"
	"github.com/olusolaa/lambda-deployer/internal/errors"
	"github.com/olusolaa/lambda-deployer/pkg/normalize"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIStructuralRules lists the composite fields the service distinguishes by
// "present but empty" versus "omitted". Network placement's two list fields
// must be transmitted as empty lists rather than dropped. New exceptions get
// an entry here, not a special case in the normalizer.
var APIStructuralRules = normalize.Rules{
	domain.KeySubnetIds:        normalize.RuleKeepEmptyList,
	domain.KeySecurityGroupIds: normalize.RuleKeepEmptyList,
}

// DesiredMap converts the caller-supplied configuration into a map keyed by the
// service's field names, in the same generic representation GetConfiguration
// produces for live state, so both sides of the diff carry identical scalar
// types.
func DesiredMap(cfg domain.FunctionConfig) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to serialize desired configuration")
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to decode desired configuration")
	}
	return m, nil
}
