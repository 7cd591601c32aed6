package domain

// FunctionConfig is the caller-supplied partial target state for one Lambda
// function. Pointer fields distinguish "not supplied" from an explicit value;
// only supplied fields participate in the configuration diff. JSON tags match
// the service's field vocabulary so the marshalled form lines up with the
// live configuration fetched from the API.
type FunctionConfig struct {
	Runtime           *string            `json:"Runtime,omitempty"`
	Handler           *string            `json:"Handler,omitempty"`
	Role              *string            `json:"Role,omitempty"`
	Description       *string            `json:"Description,omitempty"`
	MemorySize        *int32             `json:"MemorySize,omitempty"`
	Timeout           *int32             `json:"Timeout,omitempty"`
	KMSKeyArn         *string            `json:"KMSKeyArn,omitempty"`
	Architectures     []string           `json:"Architectures,omitempty"`
	EphemeralStorage  *EphemeralStorage  `json:"EphemeralStorage,omitempty"`
	Environment       *Environment       `json:"Environment,omitempty"`
	VpcConfig         *VpcConfig         `json:"VpcConfig,omitempty"`
	DeadLetterConfig  *DeadLetterConfig  `json:"DeadLetterConfig,omitempty"`
	TracingConfig     *TracingConfig     `json:"TracingConfig,omitempty"`
	Layers            []string           `json:"Layers,omitempty"`
	FileSystemConfigs []FileSystemConfig `json:"FileSystemConfigs,omitempty"`
	ImageConfig       *ImageConfig       `json:"ImageConfig,omitempty"`
	SnapStart         *SnapStart         `json:"SnapStart,omitempty"`
	LoggingConfig     *LoggingConfig     `json:"LoggingConfig,omitempty"`
}

type EphemeralStorage struct {
	Size *int32 `json:"Size,omitempty"`
}

type Environment struct {
	Variables map[string]string `json:"Variables,omitempty"`
}

// VpcConfig keeps its list fields non-omitempty: the service distinguishes
// "list present but empty" from "list omitted" for network placement, so an
// empty list must survive serialization (see pkg/normalize exception rules).
type VpcConfig struct {
	SubnetIds               []string `json:"SubnetIds"`
	SecurityGroupIds        []string `json:"SecurityGroupIds"`
	Ipv6AllowedForDualStack *bool    `json:"Ipv6AllowedForDualStack,omitempty"`
}

type DeadLetterConfig struct {
	TargetArn *string `json:"TargetArn,omitempty"`
}

type TracingConfig struct {
	Mode *string `json:"Mode,omitempty"`
}

type FileSystemConfig struct {
	Arn            *string `json:"Arn,omitempty"`
	LocalMountPath *string `json:"LocalMountPath,omitempty"`
}

type ImageConfig struct {
	EntryPoint       []string `json:"EntryPoint,omitempty"`
	Command          []string `json:"Command,omitempty"`
	WorkingDirectory *string  `json:"WorkingDirectory,omitempty"`
}

type SnapStart struct {
	ApplyOn *string `json:"ApplyOn,omitempty"`
}

type LoggingConfig struct {
	LogFormat           *string `json:"LogFormat,omitempty"`
	ApplicationLogLevel *string `json:"ApplicationLogLevel,omitempty"`
	SystemLogLevel      *string `json:"SystemLogLevel,omitempty"`
	LogGroup            *string `json:"LogGroup,omitempty"`
}

// CodeLocation identifies where the packaged deployment artifact lives for a
// code update: either inline zip bytes or an object already uploaded to S3.
type CodeLocation struct {
	ZipFile  []byte
	S3Bucket string
	S3Key    string
}

// DeployOutput carries the two public outputs of a code create/update call.
type DeployOutput struct {
	FunctionARN string
	Version     string
}

// DeployResult is the terminal state of one deployment pass.
type DeployResult struct {
	FunctionName  string
	FunctionARN   string
	Version       string
	Created       bool
	ConfigChanged bool
	CodeUpdated   bool
	DryRun        bool
	ArtifactPath  string
	S3Bucket      string
	S3Key         string
}
