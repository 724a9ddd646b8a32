package xr

import (
	"errors"
	"fmt"
)

// Result is a runtime return code; negative values are failures.
type Result int32

const (
	Success                           Result = 0
	TimeoutExpired                    Result = 1
	SessionLossPending                Result = 3
	EventUnavailable                  Result = 4
	SpaceBoundsUnavailable            Result = 7
	SessionNotFocused                 Result = 8
	FrameDiscarded                    Result = 9
	ErrorValidationFailure            Result = -1
	ErrorRuntimeFailure               Result = -2
	ErrorOutOfMemory                  Result = -3
	ErrorAPIVersionUnsupported        Result = -4
	ErrorInitializationFailed         Result = -6
	ErrorFunctionUnsupported          Result = -7
	ErrorFeatureUnsupported           Result = -8
	ErrorExtensionNotPresent          Result = -9
	ErrorLimitReached                 Result = -10
	ErrorSizeInsufficient             Result = -11
	ErrorHandleInvalid                Result = -12
	ErrorInstanceLost                 Result = -13
	ErrorSessionRunning               Result = -14
	ErrorSessionNotRunning            Result = -16
	ErrorSessionLost                  Result = -17
	ErrorSystemInvalid                Result = -18
	ErrorPathInvalid                  Result = -19
	ErrorFormFactorUnavailable        Result = -35
	ErrorCallOrderInvalid             Result = -37
	ErrorGraphicsDeviceInvalid        Result = -38
	ErrorPoseInvalid                  Result = -39
	ErrorIndexOutOfRange              Result = -40
	ErrorViewConfigurationUnsupported Result = -41
	ErrorSessionNotReady              Result = -28
	ErrorSessionNotStopping           Result = -29
	ErrorSwapchainFormatUnsupported   Result = -26
	ErrorTimeInvalid                  Result = -30
	ErrorBlendModeUnsupported         Result = -42
	ErrorActionSetsAlreadyAttached    Result = -46
	ErrorActionSetNotAttached         Result = -47
	ErrorRuntimeUnavailable           Result = -51
)

var resultNames = map[Result]string{
	Success:                           "XR_SUCCESS",
	TimeoutExpired:                    "XR_TIMEOUT_EXPIRED",
	SessionLossPending:                "XR_SESSION_LOSS_PENDING",
	EventUnavailable:                  "XR_EVENT_UNAVAILABLE",
	SpaceBoundsUnavailable:            "XR_SPACE_BOUNDS_UNAVAILABLE",
	SessionNotFocused:                 "XR_SESSION_NOT_FOCUSED",
	FrameDiscarded:                    "XR_FRAME_DISCARDED",
	ErrorValidationFailure:            "XR_ERROR_VALIDATION_FAILURE",
	ErrorRuntimeFailure:               "XR_ERROR_RUNTIME_FAILURE",
	ErrorOutOfMemory:                  "XR_ERROR_OUT_OF_MEMORY",
	ErrorAPIVersionUnsupported:        "XR_ERROR_API_VERSION_UNSUPPORTED",
	ErrorInitializationFailed:         "XR_ERROR_INITIALIZATION_FAILED",
	ErrorFunctionUnsupported:          "XR_ERROR_FUNCTION_UNSUPPORTED",
	ErrorFeatureUnsupported:           "XR_ERROR_FEATURE_UNSUPPORTED",
	ErrorExtensionNotPresent:          "XR_ERROR_EXTENSION_NOT_PRESENT",
	ErrorLimitReached:                 "XR_ERROR_LIMIT_REACHED",
	ErrorSizeInsufficient:             "XR_ERROR_SIZE_INSUFFICIENT",
	ErrorHandleInvalid:                "XR_ERROR_HANDLE_INVALID",
	ErrorInstanceLost:                 "XR_ERROR_INSTANCE_LOST",
	ErrorSessionRunning:               "XR_ERROR_SESSION_RUNNING",
	ErrorSessionNotRunning:            "XR_ERROR_SESSION_NOT_RUNNING",
	ErrorSessionLost:                  "XR_ERROR_SESSION_LOST",
	ErrorSystemInvalid:                "XR_ERROR_SYSTEM_INVALID",
	ErrorPathInvalid:                  "XR_ERROR_PATH_INVALID",
	ErrorFormFactorUnavailable:        "XR_ERROR_FORM_FACTOR_UNAVAILABLE",
	ErrorCallOrderInvalid:             "XR_ERROR_CALL_ORDER_INVALID",
	ErrorGraphicsDeviceInvalid:        "XR_ERROR_GRAPHICS_DEVICE_INVALID",
	ErrorPoseInvalid:                  "XR_ERROR_POSE_INVALID",
	ErrorIndexOutOfRange:              "XR_ERROR_INDEX_OUT_OF_RANGE",
	ErrorViewConfigurationUnsupported: "XR_ERROR_VIEW_CONFIGURATION_TYPE_UNSUPPORTED",
	ErrorSessionNotReady:              "XR_ERROR_SESSION_NOT_READY",
	ErrorSessionNotStopping:           "XR_ERROR_SESSION_NOT_STOPPING",
	ErrorSwapchainFormatUnsupported:   "XR_ERROR_SWAPCHAIN_FORMAT_UNSUPPORTED",
	ErrorTimeInvalid:                  "XR_ERROR_TIME_INVALID",
	ErrorBlendModeUnsupported:         "XR_ERROR_ENVIRONMENT_BLEND_MODE_UNSUPPORTED",
	ErrorActionSetsAlreadyAttached:    "XR_ERROR_ACTIONSETS_ALREADY_ATTACHED",
	ErrorActionSetNotAttached:         "XR_ERROR_ACTIONSET_NOT_ATTACHED",
	ErrorRuntimeUnavailable:           "XR_ERROR_RUNTIME_UNAVAILABLE",
}

func (r Result) String() string {
	if s, ok := resultNames[r]; ok {
		return s
	}
	if r < 0 {
		return fmt.Sprintf("XR_UNKNOWN_FAILURE_%d", int32(r))
	}
	return fmt.Sprintf("XR_UNKNOWN_SUCCESS_%d", int32(r))
}

// Succeeded reports whether r is not a failure.
func (r Result) Succeeded() bool { return r >= 0 }

// Unqualified reports whether r is exactly Success.
func (r Result) Unqualified() bool { return r == Success }

// ResultError is a failed runtime call.
type ResultError struct {
	Call   string
	Result Result
}

func (e *ResultError) Error() string { return fmt.Sprintf("%s failed [%s]", e.Call, e.Result) }

// Check returns nil if r succeeded, otherwise a *ResultError naming call.
func Check(call string, r Result) error {
	if r.Succeeded() {
		return nil
	}
	return &ResultError{Call: call, Result: r}
}

// ResultOf returns the Result carried by err, or Success and false if err
// did not come from a runtime call.
func ResultOf(err error) (Result, bool) {
	var re *ResultError
	if errors.As(err, &re) {
		return re.Result, true
	}
	return Success, false
}

var (
	// ErrExtensionMissing reports a runtime without a required extension.
	ErrExtensionMissing = errors.New("xr: required extension not supported")

	// ErrNoViews reports a system with no views for the requested configuration.
	ErrNoViews = errors.New("xr: no view configurations")

	// ErrGraphicsVersion reports a graphics context older than the runtime accepts.
	ErrGraphicsVersion = errors.New("xr: runtime does not support graphics API version")
)
