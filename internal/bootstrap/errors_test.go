package bootstrap

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestErrorPredicatesAreDisjoint(t *testing.T) {
	cause := errors.New("boom")
	all := []error{
		ErrUnsupportedPlatform("plan9"),
		ErrMissingPrerequisite("ollama", "download it"),
		ErrInstallFailure("python3", cause),
		ErrServiceStartTimeout("http://127.0.0.1:11434", 15*time.Second),
		ErrArtifactPull("gemma3:4b-it-qat", cause),
		ErrProvisioning("creating venv", cause),
	}
	preds := []func(error) bool{
		IsUnsupportedPlatform,
		IsMissingPrerequisite,
		IsInstallFailure,
		IsServiceStartTimeout,
		IsArtifactPull,
		IsProvisioning,
	}
	for i, err := range all {
		for j, pred := range preds {
			if got := pred(err); got != (i == j) {
				t.Fatalf("predicate %d on error %d: got %v", j, i, got)
			}
		}
	}
}

func TestErrorsCarryRemediation(t *testing.T) {
	if msg := ErrMissingPrerequisite("ollama", "download the installer from https://ollama.com/download and re-run").Error(); !strings.Contains(msg, "re-run") {
		t.Fatalf("missing remediation: %q", msg)
	}
	if msg := ErrServiceStartTimeout("http://127.0.0.1:11434", 15*time.Second).Error(); !strings.Contains(msg, "manually") {
		t.Fatalf("missing remediation: %q", msg)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("pip exploded")
	if !errors.Is(ErrProvisioning("installing requirements", cause), cause) {
		t.Fatalf("provisioning error must unwrap to its cause")
	}
	if !errors.Is(ErrArtifactPull("m", cause), cause) {
		t.Fatalf("pull error must unwrap to its cause")
	}
	if !errors.Is(ErrInstallFailure("x", cause), cause) {
		t.Fatalf("install failure must unwrap to its cause")
	}
}
