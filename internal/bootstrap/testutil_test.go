package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// fakeDaemon implements daemonClient with scriptable behavior.
type fakeDaemon struct {
	healthyAfter int // Healthy returns true from this probe count on; 0 = never
	probes       int
	models       []string
	listErr      error
	pulled       []string
	pullErr      error
	pullErrFor   map[string]error
}

func (d *fakeDaemon) Healthy(ctx context.Context) bool {
	d.probes++
	return d.healthyAfter > 0 && d.probes >= d.healthyAfter
}

func (d *fakeDaemon) List(ctx context.Context) ([]string, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	return d.models, nil
}

func (d *fakeDaemon) Pull(ctx context.Context, name string) error {
	if d.pullErr != nil {
		return d.pullErr
	}
	if err, ok := d.pullErrFor[name]; ok {
		return err
	}
	d.pulled = append(d.pulled, name)
	d.models = append(d.models, name+":latest")
	return nil
}

// cmdRecorder captures every command the pipeline would run.
type cmdRecorder struct {
	cmds []string
	errs map[string]error // matched by prefix of the joined command line
}

func (r *cmdRecorder) run(ctx context.Context, name string, args ...string) error {
	line := strings.Join(append([]string{name}, args...), " ")
	r.cmds = append(r.cmds, line)
	for prefix, err := range r.errs {
		if strings.HasPrefix(line, prefix) {
			return err
		}
	}
	return nil
}

func (r *cmdRecorder) count(prefix string) int {
	n := 0
	for _, c := range r.cmds {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func newTestPipeline(cfg Settings, daemon *fakeDaemon, rec *cmdRecorder) *Pipeline {
	p := New(cfg, zerolog.Nop())
	p.env = HostEnvironment{OS: OSLinux, Arch: "amd64"}
	p.detect = func() (HostEnvironment, error) { return p.env, nil }
	p.daemon = daemon
	p.run = rec.run
	p.runOut = func(ctx context.Context, name string, args ...string) (string, error) {
		return "", fmt.Errorf("no probe configured for %s", name)
	}
	p.spawn = func(name string, args ...string) error { return nil }
	p.sleep = func(time.Duration) {}
	p.open = func(url string) error { return nil }
	return p
}
