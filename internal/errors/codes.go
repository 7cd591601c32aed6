package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"

	// Deployment pipeline codes
	CodeThrottled        Code = "THROTTLED"
	CodeServerError      Code = "SERVER_ERROR"
	CodeAccessDenied     Code = "ACCESS_DENIED"
	CodeResourceMissing  Code = "RESOURCE_MISSING"
	CodeTimeout          Code = "TIMEOUT_ERROR"
	CodePackagingError   Code = "PACKAGING_ERROR"
	CodeArtifactNotFound Code = "ARTIFACT_NOT_FOUND"
	CodeArtifactIOError  Code = "ARTIFACT_IO_ERROR"
	CodeUploadError      Code = "UPLOAD_ERROR"
	CodePlatformAPIError Code = "PLATFORM_API_ERROR"
)

func (c Code) String() string {
	return string(c)
}
