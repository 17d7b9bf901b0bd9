package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrAlreadyRunning  ErrorCode = "already_running"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidInterval ErrorCode = "invalid_interval"

	// Session errors
	ErrEmptyTaskName  ErrorCode = "empty_task_name"
	ErrSessionActive  ErrorCode = "session_active"
	ErrNoSession      ErrorCode = "no_session"
	ErrNotReady       ErrorCode = "not_ready"
	ErrEmptyRecording ErrorCode = "empty_recording"

	// Writer errors
	ErrDirectoryUnresolved ErrorCode = "directory_unresolved"
	ErrFileCreateFailed    ErrorCode = "file_create_failed"

	// Device errors
	ErrDeviceRead ErrorCode = "device_read_failed"

	// Server errors
	ErrServerStart    ErrorCode = "server_start_failed"
	ErrServerShutdown ErrorCode = "server_shutdown_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:            "Internal error occurred",
	ErrInvalidArgument:     "Invalid argument provided",
	ErrAlreadyRunning:      "Another instance is already running",
	ErrInvalidConfig:       "Invalid configuration",
	ErrReadConfig:          "Failed to read configuration",
	ErrInvalidInterval:     "Invalid interval value",
	ErrEmptyTaskName:       "Task name must not be empty",
	ErrSessionActive:       "A session is already active",
	ErrNoSession:           "No active session",
	ErrNotReady:            "Please wait for timer to complete.",
	ErrEmptyRecording:      "No activity data recorded.",
	ErrDirectoryUnresolved: "Could not find Downloads directory.",
	ErrFileCreateFailed:    "Failed to create output file.",
	ErrDeviceRead:          "Failed to read input device",
	ErrServerStart:         "Failed to start HTTP server",
	ErrServerShutdown:      "Failed to shut down HTTP server",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
