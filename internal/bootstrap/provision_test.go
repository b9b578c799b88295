package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestProvisionSandboxCreatesVenvOnce(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultSettings()
	cfg.AppRoot = root
	rec := &cmdRecorder{}
	p := newTestPipeline(cfg, &fakeDaemon{}, rec)
	if err := p.provisionSandbox(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.count("python3 -m venv") != 1 {
		t.Fatalf("expected one venv creation, cmds: %v", rec.cmds)
	}
	if rec.count(filepath.Join(cfg.VenvDir(), "bin", "pip")+" install -r") != 1 {
		t.Fatalf("expected pip install, cmds: %v", rec.cmds)
	}

	// second run with the venv dir on disk skips creation, re-runs install
	if err := os.MkdirAll(cfg.VenvDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	rec2 := &cmdRecorder{}
	p.run = rec2.run
	if err := p.provisionSandbox(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec2.count("python3 -m venv") != 0 {
		t.Fatalf("existing venv must not be recreated, cmds: %v", rec2.cmds)
	}
	if rec2.count(filepath.Join(cfg.VenvDir(), "bin", "pip")) != 1 {
		t.Fatalf("manifest install must re-run, cmds: %v", rec2.cmds)
	}
}

func TestProvisionSandboxVenvCreationFails(t *testing.T) {
	cfg := DefaultSettings()
	cfg.AppRoot = t.TempDir()
	rec := &cmdRecorder{errs: map[string]error{"python3 -m venv": errors.New("no venv module")}}
	p := newTestPipeline(cfg, &fakeDaemon{}, rec)
	err := p.provisionSandbox(context.Background())
	if !IsProvisioning(err) {
		t.Fatalf("expected provisioning error, got %v", err)
	}
	// install must not run after creation failed
	if rec.count(filepath.Join(cfg.VenvDir(), "bin", "pip")) != 0 {
		t.Fatalf("pip ran after failed creation: %v", rec.cmds)
	}
}

func TestProvisionSandboxInstallFails(t *testing.T) {
	cfg := DefaultSettings()
	cfg.AppRoot = t.TempDir()
	rec := &cmdRecorder{errs: map[string]error{filepath.Join(cfg.VenvDir(), "bin", "pip"): errors.New("resolver error")}}
	p := newTestPipeline(cfg, &fakeDaemon{}, rec)
	if err := p.provisionSandbox(context.Background()); !IsProvisioning(err) {
		t.Fatalf("expected provisioning error, got %v", err)
	}
}
