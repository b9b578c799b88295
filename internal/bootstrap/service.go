package bootstrap

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// ensureDaemon makes the model daemon reachable: probe once, start it
// detached if down, then poll until healthy or the wait budget runs out.
func (p *Pipeline) ensureDaemon(ctx context.Context) error {
	if p.daemon.Healthy(ctx) {
		p.log.Info().Str("url", p.cfg.DaemonURL).Msg("model daemon already running")
		return nil
	}
	// Known race: a second invocation probing at the same moment will also
	// decide to start the daemon. The loser's process exits when the port
	// bind fails; no cross-process lock is taken.
	p.log.Info().Msg("model daemon not reachable, starting it")
	if err := p.spawn("ollama", "serve"); err != nil {
		return fmt.Errorf("starting model daemon: %w", err)
	}
	intervalSec := p.cfg.PollIntervalSec
	if intervalSec < 1 {
		intervalSec = 1
	}
	// one extra attempt so the probes span the whole budget: N sleeps of
	// intervalSec put the last probe at max_wait, not one interval short
	attempts := p.cfg.MaxWaitSec/intervalSec + 1
	ok := pollUntil(ctx, time.Duration(intervalSec)*time.Second, attempts, p.sleep, func(ctx context.Context) bool {
		return p.daemon.Healthy(ctx)
	})
	if !ok {
		return ErrServiceStartTimeout(p.cfg.DaemonURL, p.cfg.maxWait())
	}
	p.log.Info().Str("url", p.cfg.DaemonURL).Msg("model daemon healthy")
	return nil
}

// spawnDetached starts a long-lived process outside our process tree. The
// daemon is expected to outlive this run, so it is released, never waited on.
func spawnDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
