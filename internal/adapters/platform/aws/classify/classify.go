// Package classify maps heterogeneous upstream errors onto a closed category
// set with operator-facing messages. It never performs retries: the SDK
// client runs its own backoff policy, and classification happens only once an
// error finally propagates with retries exhausted.
package classify

import (
	stderrs "errors"
	"fmt"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"

	apperrors "github.com/olusolaa/lambda-deployer/internal/errors"
)

type Category string

const (
	CategoryThrottled       Category = "throttled"
	CategoryServerError     Category = "server_error"
	CategoryAccessDenied    Category = "access_denied"
	CategoryResourceMissing Category = "resource_missing"
	CategoryUnknown         Category = "unknown"
)

// categoryByErrorName is the data-driven mapping from upstream error names to
// categories. New upstream names get an entry here, not new control flow.
var categoryByErrorName = map[string]Category{
	"ThrottlingException":       CategoryThrottled,
	"TooManyRequestsException":  CategoryThrottled,
	"AccessDeniedException":     CategoryAccessDenied,
	"ResourceNotFoundException": CategoryResourceMissing,
}

var codeByCategory = map[Category]apperrors.Code{
	CategoryThrottled:       apperrors.CodeThrottled,
	CategoryServerError:     apperrors.CodeServerError,
	CategoryAccessDenied:    apperrors.CodeAccessDenied,
	CategoryResourceMissing: apperrors.CodeResourceMissing,
	CategoryUnknown:         apperrors.CodePlatformAPIError,
}

var suggestionByCategory = map[Category]string{
	CategoryThrottled:       "Retry the deployment later or request a service quota increase.",
	CategoryServerError:     "Retry the deployment once the service recovers.",
	CategoryAccessDenied:    "Verify the credentials' IAM policies cover this operation.",
	CategoryResourceMissing: "Verify the function name and region.",
	CategoryUnknown:         "Check logs for more details.",
}

const rateLimitStatus = 429

// Classification is the result of inspecting one raised error.
type Classification struct {
	Category Category
	Message  string
}

// Classify inspects err's name and transport status metadata and derives its
// category and operator message. It is a pure function, total over any error
// including nil.
func Classify(err error) Classification {
	if err == nil {
		return Classification{Category: CategoryUnknown, Message: "unknown error"}
	}

	name := errorName(err)
	status, hasStatus := statusCode(err)
	msg := errorMessage(err)

	switch {
	case categoryByErrorName[name] == CategoryThrottled || (hasStatus && status == rateLimitStatus):
		return Classification{
			Category: CategoryThrottled,
			Message:  fmt.Sprintf("Rate limit exceeded and maximum retries reached: %s", msg),
		}
	case hasStatus && status >= 500 && status <= 599:
		return Classification{
			Category: CategoryServerError,
			Message:  fmt.Sprintf("Server error (%d): %s. All retry attempts failed.", status, msg),
		}
	case categoryByErrorName[name] == CategoryAccessDenied:
		return Classification{
			Category: CategoryAccessDenied,
			Message:  fmt.Sprintf("Permissions error: %s. Check IAM roles.", msg),
		}
	case categoryByErrorName[name] == CategoryResourceMissing:
		return Classification{
			Category: CategoryResourceMissing,
			Message:  fmt.Sprintf("Resource not found: %s", msg),
		}
	default:
		return Classification{
			Category: CategoryUnknown,
			Message:  fmt.Sprintf("Unexpected error: %s", msg),
		}
	}
}

// Code returns the application error code for the classification's category.
func (c Classification) Code() apperrors.Code {
	return codeByCategory[c.Category]
}

// ToAppError wraps err as a user-facing AppError carrying the classified
// message. This is the bare, operation-level message shape; the top-level
// handler adds its own "Action failed with error: " wrapper.
func ToAppError(err error) *apperrors.AppError {
	c := Classify(err)
	return apperrors.WrapUserFacing(err, c.Code(), c.Message, suggestionByCategory[c.Category])
}

func errorName(err error) string {
	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	if coded, ok := err.(interface{ ErrorCode() string }); ok {
		return coded.ErrorCode()
	}
	return ""
}

func errorMessage(err error) string {
	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	return err.Error()
}

func statusCode(err error) (int, bool) {
	var respErr *awshttp.ResponseError
	if stderrs.As(err, &respErr) {
		return respErr.HTTPStatusCode(), true
	}
	if coded, ok := err.(interface{ HTTPStatusCode() int }); ok {
		return coded.HTTPStatusCode(), true
	}
	return 0, false
}
