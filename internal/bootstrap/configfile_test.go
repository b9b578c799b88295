package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
)

func configTestPipeline(t *testing.T) (*Pipeline, Settings) {
	t.Helper()
	cfg := DefaultSettings()
	cfg.AppRoot = t.TempDir()
	if err := os.MkdirAll(filepath.Join(cfg.AppRoot, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	return newTestPipeline(cfg, &fakeDaemon{}, &cmdRecorder{}), cfg
}

func TestMaterializeConfigCopiesTemplateVerbatim(t *testing.T) {
	p, cfg := configTestPipeline(t)
	content := []byte(`{"deceased_name":"Arvel Chappell Jr.","dimension":"heaven"}`)
	if err := os.WriteFile(cfg.TemplateConfigPath(), content, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := p.materializeConfig(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, err := os.ReadFile(cfg.ActiveConfigPath())
	if err != nil {
		t.Fatalf("active config not created: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("active config differs from template: %q", got)
	}
}

func TestMaterializeConfigNeverOverwritesActive(t *testing.T) {
	p, cfg := configTestPipeline(t)
	active := []byte(`{"user_name":"ac3"}`)
	if err := os.WriteFile(cfg.ActiveConfigPath(), active, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.TemplateConfigPath(), []byte(`{"changed":"later"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := p.materializeConfig(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, _ := os.ReadFile(cfg.ActiveConfigPath())
	if string(got) != string(active) {
		t.Fatalf("active config was modified: %q", got)
	}
}

func TestMaterializeConfigBothAbsentIsNonFatal(t *testing.T) {
	p, cfg := configTestPipeline(t)
	if err := p.materializeConfig(); err != nil {
		t.Fatalf("missing config must be a warning, got %v", err)
	}
	if _, err := os.Stat(cfg.ActiveConfigPath()); !os.IsNotExist(err) {
		t.Fatalf("no active config should have been created")
	}
}
