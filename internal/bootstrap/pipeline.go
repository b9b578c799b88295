// Package bootstrap brings a developer machine from an unknown state to a
// running persona backend: platform detection, prerequisite installs,
// daemon health, model sync, sandbox provisioning, config materialization
// and the final launch handoff. Stages run strictly in order; every stage
// is idempotent so an interrupted run can simply be re-run.
package bootstrap

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"neuroctl/internal/ollama"
)

// daemonClient is the slice of the daemon API the pipeline needs.
type daemonClient interface {
	Healthy(ctx context.Context) bool
	List(ctx context.Context) ([]string, error)
	Pull(ctx context.Context, name string) error
}

// Pipeline runs the bootstrap stages. Collaborators are fields so tests
// can substitute fakes; zero-config callers get real implementations
// from New.
type Pipeline struct {
	cfg Settings
	log zerolog.Logger
	env HostEnvironment

	detect  func() (HostEnvironment, error)
	daemon  daemonClient
	run     func(ctx context.Context, name string, args ...string) error
	runOut  func(ctx context.Context, name string, args ...string) (string, error)
	spawn   func(name string, args ...string) error
	sleep   func(time.Duration)
	open    func(url string) error
	handoff func(ctx context.Context) error
	prereqs []Prerequisite // nil means defaultPrerequisites
}

func New(cfg Settings, log zerolog.Logger) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		log:    log,
		detect: DetectHost,
		daemon: ollama.New(cfg.DaemonURL),
		run:    runCmdVerbose,
		runOut: runCmdOutput,
		spawn:  spawnDetached,
		sleep:  time.Sleep,
	}
	p.open = func(url string) error { return openBrowser(p.env.OS, url) }
	p.handoff = p.launch
	return p
}

// detectStage computes the immutable host environment every later stage reads.
func (p *Pipeline) detectStage() error {
	env, err := p.detect()
	if err != nil {
		return err
	}
	p.env = env
	p.log.Info().Str("os", string(env.OS)).Str("arch", env.Arch).Msg("host detected")
	return nil
}

// Up runs the full pipeline and hands off to the backend. On success it
// only returns when the backend exits; the returned error then carries the
// backend's exit status.
func (p *Pipeline) Up(ctx context.Context) error {
	if err := p.detectStage(); err != nil {
		return err
	}
	if err := p.ensurePrerequisites(ctx); err != nil {
		return err
	}
	if err := p.ensureDaemon(ctx); err != nil {
		return err
	}
	if err := p.syncArtifacts(ctx); err != nil {
		return err
	}
	if err := p.provisionSandbox(ctx); err != nil {
		return err
	}
	if err := p.materializeConfig(); err != nil {
		return err
	}
	return p.handoff(ctx)
}

// Doctor runs detection and prerequisite resolution only.
func (p *Pipeline) Doctor(ctx context.Context) error {
	if err := p.detectStage(); err != nil {
		return err
	}
	return p.ensurePrerequisites(ctx)
}

// SyncModels makes the daemon healthy and pulls missing models, without
// touching the sandbox or launching anything.
func (p *Pipeline) SyncModels(ctx context.Context) error {
	if err := p.detectStage(); err != nil {
		return err
	}
	if err := p.ensureDaemon(ctx); err != nil {
		return err
	}
	return p.syncArtifacts(ctx)
}

// InitConfig materializes the persona configuration only.
func (p *Pipeline) InitConfig(ctx context.Context) error {
	if err := p.detectStage(); err != nil {
		return err
	}
	return p.materializeConfig()
}
