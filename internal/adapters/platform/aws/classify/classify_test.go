package classify

import (
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/olusolaa/lambda-deployer/internal/errors"
)

type mockAPIError struct {
	code   string
	msg    string
	status int
}

func (m *mockAPIError) Error() string                 { return m.msg }
func (m *mockAPIError) ErrorCode() string             { return m.code }
func (m *mockAPIError) ErrorMessage() string          { return m.msg }
func (m *mockAPIError) ErrorFault() smithy.ErrorFault { return smithy.FaultUnknown }
func (m *mockAPIError) HTTPStatusCode() int           { return m.status }

type statusOnlyError struct {
	status int
	msg    string
}

func (s *statusOnlyError) Error() string       { return s.msg }
func (s *statusOnlyError) HTTPStatusCode() int { return s.status }

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCat     Category
		wantMsgPart string
	}{
		{
			name:        "throttling name with rate limit status",
			err:         &mockAPIError{code: "ThrottlingException", msg: "Rate exceeded", status: 429},
			wantCat:     CategoryThrottled,
			wantMsgPart: "Rate limit exceeded and maximum retries reached: Rate exceeded",
		},
		{
			name:        "throttling alias without status",
			err:         &mockAPIError{code: "TooManyRequestsException", msg: "slow down"},
			wantCat:     CategoryThrottled,
			wantMsgPart: "Rate limit exceeded and maximum retries reached",
		},
		{
			name:        "rate limit status without known name",
			err:         &statusOnlyError{status: 429, msg: "try later"},
			wantCat:     CategoryThrottled,
			wantMsgPart: "Rate limit exceeded",
		},
		{
			name:        "server fault range",
			err:         &statusOnlyError{status: 503, msg: "service unavailable"},
			wantCat:     CategoryServerError,
			wantMsgPart: "Server error (503): service unavailable. All retry attempts failed.",
		},
		{
			name:        "access denied",
			err:         &mockAPIError{code: "AccessDeniedException", msg: "not authorized", status: 403},
			wantCat:     CategoryAccessDenied,
			wantMsgPart: "Permissions error: not authorized. Check IAM roles.",
		},
		{
			name:        "resource missing",
			err:         &mockAPIError{code: "ResourceNotFoundException", msg: "Function not found", status: 404},
			wantCat:     CategoryResourceMissing,
			wantMsgPart: "Resource not found: Function not found",
		},
		{
			name:        "unknown",
			err:         fmt.Errorf("something odd"),
			wantCat:     CategoryUnknown,
			wantMsgPart: "Unexpected error: something odd",
		},
		{
			name:        "nil error",
			err:         nil,
			wantCat:     CategoryUnknown,
			wantMsgPart: "unknown error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err)
			assert.Equal(t, tc.wantCat, got.Category)
			assert.Contains(t, got.Message, tc.wantMsgPart)
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	err := &mockAPIError{code: "ThrottlingException", msg: "Rate exceeded", status: 429}
	first := Classify(err)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(err))
	}
}

func TestThrottlingNameWinsOverServerStatus(t *testing.T) {
	// Name-based throttling is inspected before the status range.
	err := &mockAPIError{code: "ThrottlingException", msg: "Rate exceeded", status: 500}
	assert.Equal(t, CategoryThrottled, Classify(err).Category)
}

func TestToAppErrorCarriesCodeAndMessage(t *testing.T) {
	err := &mockAPIError{code: "AccessDeniedException", msg: "not authorized"}
	appErr := ToAppError(err)
	assert.Equal(t, apperrors.CodeAccessDenied, appErr.Code)
	assert.True(t, appErr.IsUserFacing)
	assert.Contains(t, appErr.Message, "Permissions error: not authorized")
	assert.NotEmpty(t, appErr.SuggestedAction)
}
