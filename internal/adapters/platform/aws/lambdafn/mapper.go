package lambdafn

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/lambda-deployer/internal/core/domain"
	"github.com/olusolaa/lambda-deployer/internal/errors"
	"github.com/olusolaa/lambda-deployer/internal/resources/function"
	"github.com/olusolaa/lambda-deployer/pkg/normalize"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// liveConfigMap converts the service's configuration response into the
// generic field map the diff engine consumes. Null fields are stripped to
// match the wire form the service actually emits (the JSON protocol omits
// unset members), and the layer list is flattened to its ARNs so it lines up
// with the caller-supplied shape.
func liveConfigMap(out *lambda.GetFunctionConfigurationOutput) (map[string]any, error) {
	if out == nil {
		return nil, nil
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to serialize live configuration")
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to decode live configuration")
	}

	stripped, _ := stripNulls(m)
	live, ok := stripped.(map[string]any)
	if !ok {
		live = map[string]any{}
	}
	delete(live, "ResultMetadata")

	if len(out.Layers) > 0 {
		arns := make([]any, 0, len(out.Layers))
		for _, layer := range out.Layers {
			arns = append(arns, aws.ToString(layer.Arn))
		}
		live[domain.KeyLayers] = arns
	}
	return live, nil
}

// stripNulls removes nil map entries and nil sequence elements recursively.
// Unlike normalization it keeps empty strings and empty collections: a live
// value that is explicitly empty is still a value.
func stripNulls(v any) (any, bool) {
	switch tv := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, val := range tv {
			if sv, keep := stripNulls(val); keep {
				out[k] = sv
			}
		}
		return out, true
	case []any:
		out := make([]any, 0, len(tv))
		for _, val := range tv {
			if sv, keep := stripNulls(val); keep {
				out = append(out, sv)
			}
		}
		return out, true
	default:
		return v, true
	}
}

// present reports whether a desired value is meaningfully supplied, using the
// same emptiness definition the diff engine applies. Request construction and
// diffing must never disagree about what "absent" means.
func present(v any) bool {
	return !normalize.IsEmpty(v, function.APIStructuralRules)
}

func buildUpdateConfigInput(name string, cfg domain.FunctionConfig) *lambda.UpdateFunctionConfigurationInput {
	in := &lambda.UpdateFunctionConfigurationInput{
		FunctionName: aws.String(name),
	}
	if cfg.Runtime != nil && present(*cfg.Runtime) {
		in.Runtime = lambdatypes.Runtime(*cfg.Runtime)
	}
	if cfg.Handler != nil && present(*cfg.Handler) {
		in.Handler = cfg.Handler
	}
	if cfg.Role != nil && present(*cfg.Role) {
		in.Role = cfg.Role
	}
	if cfg.Description != nil && present(*cfg.Description) {
		in.Description = cfg.Description
	}
	if cfg.MemorySize != nil {
		in.MemorySize = cfg.MemorySize
	}
	if cfg.Timeout != nil {
		in.Timeout = cfg.Timeout
	}
	if cfg.KMSKeyArn != nil && present(*cfg.KMSKeyArn) {
		in.KMSKeyArn = cfg.KMSKeyArn
	}
	if cfg.EphemeralStorage != nil && cfg.EphemeralStorage.Size != nil {
		in.EphemeralStorage = &lambdatypes.EphemeralStorage{Size: cfg.EphemeralStorage.Size}
	}
	if cfg.Environment != nil && present(cfg.Environment.Variables) {
		in.Environment = &lambdatypes.Environment{Variables: cfg.Environment.Variables}
	}
	if cfg.VpcConfig != nil {
		in.VpcConfig = &lambdatypes.VpcConfig{
			SubnetIds:               cfg.VpcConfig.SubnetIds,
			SecurityGroupIds:        cfg.VpcConfig.SecurityGroupIds,
			Ipv6AllowedForDualStack: cfg.VpcConfig.Ipv6AllowedForDualStack,
		}
		// Structural exception: the service reads absent lists as "detach",
		// so they are sent as empty rather than omitted.
		if in.VpcConfig.SubnetIds == nil {
			in.VpcConfig.SubnetIds = []string{}
		}
		if in.VpcConfig.SecurityGroupIds == nil {
			in.VpcConfig.SecurityGroupIds = []string{}
		}
	}
	if cfg.DeadLetterConfig != nil && cfg.DeadLetterConfig.TargetArn != nil && present(*cfg.DeadLetterConfig.TargetArn) {
		in.DeadLetterConfig = &lambdatypes.DeadLetterConfig{TargetArn: cfg.DeadLetterConfig.TargetArn}
	}
	if cfg.TracingConfig != nil && cfg.TracingConfig.Mode != nil && present(*cfg.TracingConfig.Mode) {
		in.TracingConfig = &lambdatypes.TracingConfig{Mode: lambdatypes.TracingMode(*cfg.TracingConfig.Mode)}
	}
	if present(cfg.Layers) {
		in.Layers = cfg.Layers
	}
	if present(cfg.FileSystemConfigs) {
		fsConfigs := make([]lambdatypes.FileSystemConfig, 0, len(cfg.FileSystemConfigs))
		for _, fs := range cfg.FileSystemConfigs {
			fsConfigs = append(fsConfigs, lambdatypes.FileSystemConfig{
				Arn:            fs.Arn,
				LocalMountPath: fs.LocalMountPath,
			})
		}
		in.FileSystemConfigs = fsConfigs
	}
	if cfg.ImageConfig != nil && (present(cfg.ImageConfig.EntryPoint) || present(cfg.ImageConfig.Command) || (cfg.ImageConfig.WorkingDirectory != nil && present(*cfg.ImageConfig.WorkingDirectory))) {
		in.ImageConfig = &lambdatypes.ImageConfig{
			EntryPoint:       cfg.ImageConfig.EntryPoint,
			Command:          cfg.ImageConfig.Command,
			WorkingDirectory: cfg.ImageConfig.WorkingDirectory,
		}
	}
	if cfg.SnapStart != nil && cfg.SnapStart.ApplyOn != nil && present(*cfg.SnapStart.ApplyOn) {
		in.SnapStart = &lambdatypes.SnapStart{ApplyOn: lambdatypes.SnapStartApplyOn(*cfg.SnapStart.ApplyOn)}
	}
	if cfg.LoggingConfig != nil {
		lc := &lambdatypes.LoggingConfig{}
		populated := false
		if cfg.LoggingConfig.LogFormat != nil && present(*cfg.LoggingConfig.LogFormat) {
			lc.LogFormat = lambdatypes.LogFormat(*cfg.LoggingConfig.LogFormat)
			populated = true
		}
		if cfg.LoggingConfig.ApplicationLogLevel != nil && present(*cfg.LoggingConfig.ApplicationLogLevel) {
			lc.ApplicationLogLevel = lambdatypes.ApplicationLogLevel(*cfg.LoggingConfig.ApplicationLogLevel)
			populated = true
		}
		if cfg.LoggingConfig.SystemLogLevel != nil && present(*cfg.LoggingConfig.SystemLogLevel) {
			lc.SystemLogLevel = lambdatypes.SystemLogLevel(*cfg.LoggingConfig.SystemLogLevel)
			populated = true
		}
		if cfg.LoggingConfig.LogGroup != nil && present(*cfg.LoggingConfig.LogGroup) {
			lc.LogGroup = cfg.LoggingConfig.LogGroup
			populated = true
		}
		if populated {
			in.LoggingConfig = lc
		}
	}
	return in
}

func buildCreateInput(name string, cfg domain.FunctionConfig, code domain.CodeLocation) *lambda.CreateFunctionInput {
	updateIn := buildUpdateConfigInput(name, cfg)

	in := &lambda.CreateFunctionInput{
		FunctionName:      aws.String(name),
		Role:              updateIn.Role,
		Runtime:           updateIn.Runtime,
		Handler:           updateIn.Handler,
		Description:       updateIn.Description,
		MemorySize:        updateIn.MemorySize,
		Timeout:           updateIn.Timeout,
		KMSKeyArn:         updateIn.KMSKeyArn,
		EphemeralStorage:  updateIn.EphemeralStorage,
		Environment:       updateIn.Environment,
		VpcConfig:         updateIn.VpcConfig,
		DeadLetterConfig:  updateIn.DeadLetterConfig,
		TracingConfig:     updateIn.TracingConfig,
		Layers:            updateIn.Layers,
		FileSystemConfigs: updateIn.FileSystemConfigs,
		ImageConfig:       updateIn.ImageConfig,
		SnapStart:         updateIn.SnapStart,
		LoggingConfig:     updateIn.LoggingConfig,
	}
	if present(cfg.Architectures) {
		archs := make([]lambdatypes.Architecture, 0, len(cfg.Architectures))
		for _, a := range cfg.Architectures {
			archs = append(archs, lambdatypes.Architecture(a))
		}
		in.Architectures = archs
	}

	fnCode := &lambdatypes.FunctionCode{}
	if len(code.ZipFile) > 0 {
		fnCode.ZipFile = code.ZipFile
	} else {
		fnCode.S3Bucket = aws.String(code.S3Bucket)
		fnCode.S3Key = aws.String(code.S3Key)
	}
	in.Code = fnCode
	return in
}
