package bootstrap

import (
	"fmt"
	"time"
)

// unsupportedPlatformError signals a host OS outside the four supported families.
type unsupportedPlatformError struct{ goos string }

func (e unsupportedPlatformError) Error() string {
	return "unsupported platform: " + e.goos + " (supported: mac, linux, wsl, windows)"
}

// ErrUnsupportedPlatform constructs an unsupportedPlatformError.
func ErrUnsupportedPlatform(goos string) error { return unsupportedPlatformError{goos: goos} }

// IsUnsupportedPlatform reports whether err indicates an unclassifiable host OS.
func IsUnsupportedPlatform(err error) bool {
	_, ok := err.(unsupportedPlatformError)
	return ok
}

// missingPrerequisiteError signals a prerequisite with no automated install
// strategy on this platform. Hint carries the manual remediation.
type missingPrerequisiteError struct{ name, hint string }

func (e missingPrerequisiteError) Error() string {
	return fmt.Sprintf("prerequisite %s is not installed and has no automated installer on this platform; %s", e.name, e.hint)
}

func ErrMissingPrerequisite(name, hint string) error {
	return missingPrerequisiteError{name: name, hint: hint}
}

// IsMissingPrerequisite reports whether err indicates a prerequisite that
// must be installed manually.
func IsMissingPrerequisite(err error) bool {
	_, ok := err.(missingPrerequisiteError)
	return ok
}

// installFailureError signals that an automated install ran but the
// prerequisite still failed detection afterwards.
type installFailureError struct {
	name  string
	cause error
}

func (e installFailureError) Error() string {
	return fmt.Sprintf("installing %s failed: %v; install it manually and re-run", e.name, e.cause)
}

func (e installFailureError) Unwrap() error { return e.cause }

func ErrInstallFailure(name string, cause error) error {
	return installFailureError{name: name, cause: cause}
}

func IsInstallFailure(err error) bool {
	_, ok := err.(installFailureError)
	return ok
}

// serviceStartTimeoutError signals the daemon never became healthy within
// the polling budget.
type serviceStartTimeoutError struct {
	url  string
	wait time.Duration
}

func (e serviceStartTimeoutError) Error() string {
	return fmt.Sprintf("model daemon at %s did not become healthy within %s; start it manually (ollama serve) and re-run", e.url, e.wait)
}

func ErrServiceStartTimeout(url string, wait time.Duration) error {
	return serviceStartTimeoutError{url: url, wait: wait}
}

func IsServiceStartTimeout(err error) bool {
	_, ok := err.(serviceStartTimeoutError)
	return ok
}

// artifactPullError signals a failed model pull. Remaining pulls are
// aborted; completed ones are left in place.
type artifactPullError struct {
	name  string
	cause error
}

func (e artifactPullError) Error() string {
	return fmt.Sprintf("pulling model %s failed: %v; re-run to retry the models still missing", e.name, e.cause)
}

func (e artifactPullError) Unwrap() error { return e.cause }

func ErrArtifactPull(name string, cause error) error {
	return artifactPullError{name: name, cause: cause}
}

func IsArtifactPull(err error) bool {
	_, ok := err.(artifactPullError)
	return ok
}

// provisioningError signals a failed sandbox creation or manifest install.
type provisioningError struct {
	step  string
	cause error
}

func (e provisioningError) Error() string {
	return fmt.Sprintf("provisioning sandbox (%s): %v", e.step, e.cause)
}

func (e provisioningError) Unwrap() error { return e.cause }

func ErrProvisioning(step string, cause error) error {
	return provisioningError{step: step, cause: cause}
}

func IsProvisioning(err error) bool {
	_, ok := err.(provisioningError)
	return ok
}
