package device

import (
	"os"
	"runtime"
	"strings"
)

// PermissionStatus enumerates coarse input-monitoring permission results.
type PermissionStatus string

const (
	PermissionUnknown        PermissionStatus = "unknown"
	PermissionGranted        PermissionStatus = "granted"
	PermissionDenied         PermissionStatus = "denied"
	PermissionPromptRequired PermissionStatus = "prompt"
	PermissionNotApplicable  PermissionStatus = "not_applicable"
)

// PermissionProbe reports the input-monitoring permission state resolved
// once at startup. It is injected into the session controller rather than
// re-checked per sample.
type PermissionProbe struct {
	Status  PermissionStatus
	Message string
}

// LookupEnvFunc exposes environment probing for testability.
type LookupEnvFunc func(string) (string, bool)

const permissionEnvKey = "ACTIVITY_TRACKER_INPUT_MONITORING"

// ProbeInputMonitoring resolves the platform input-monitoring permission
// state. An explicit env override wins; otherwise macOS is assumed to prompt
// at first device read and other platforms need no grant.
func ProbeInputMonitoring(lookup LookupEnvFunc) PermissionProbe {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if value, ok := lookup(permissionEnvKey); ok {
		return interpretPermissionFlag(value)
	}

	if runtime.GOOS == "darwin" {
		return PermissionProbe{
			Status: PermissionPromptRequired,
			Message: "Note: On macOS, you may need to grant permission for input monitoring in " +
				"System Preferences → Security & Privacy → Privacy → Input Monitoring",
		}
	}

	return PermissionProbe{Status: PermissionNotApplicable}
}

func interpretPermissionFlag(value string) PermissionProbe {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "granted", "allow", "allowed", "yes", "true":
		return PermissionProbe{Status: PermissionGranted}
	case "denied", "deny", "no", "false":
		return PermissionProbe{
			Status:  PermissionDenied,
			Message: "Input monitoring permission denied; samples may be empty",
		}
	default:
		return PermissionProbe{Status: PermissionUnknown}
	}
}
