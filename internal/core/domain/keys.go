package domain

// Top-level configuration field names as emitted by the service API. The diff
// engine logs these names; the normalizer's exception table keys off them.
const (
	KeyRuntime           = "Runtime"
	KeyHandler           = "Handler"
	KeyRole              = "Role"
	KeyDescription       = "Description"
	KeyMemorySize        = "MemorySize"
	KeyTimeout           = "Timeout"
	KeyKMSKeyArn         = "KMSKeyArn"
	KeyArchitectures     = "Architectures"
	KeyEphemeralStorage  = "EphemeralStorage"
	KeyEnvironment       = "Environment"
	KeyVpcConfig         = "VpcConfig"
	KeyDeadLetterConfig  = "DeadLetterConfig"
	KeyTracingConfig     = "TracingConfig"
	KeyLayers            = "Layers"
	KeyFileSystemConfigs = "FileSystemConfigs"
	KeyImageConfig       = "ImageConfig"
	KeySnapStart         = "SnapStart"
	KeyLoggingConfig     = "LoggingConfig"

	// VpcConfig sub-fields with "present but empty" API semantics
	KeySubnetIds        = "SubnetIds"
	KeySecurityGroupIds = "SecurityGroupIds"
)
