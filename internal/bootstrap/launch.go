package bootstrap

import (
	"context"
	"os"
	"os/exec"
	"strconv"
)

// launch starts the browser side task and then runs the backend in the
// foreground, passing through stdio and the environment. The backend's
// exit code becomes the effective exit code of the whole invocation.
// Spawn-and-wait rather than an in-place exec keeps this portable.
func (p *Pipeline) launch(ctx context.Context) error {
	if !p.cfg.NoBrowser {
		url := p.cfg.AppURL()
		delay := p.cfg.browserDelay()
		// Fire-and-forget: no join handle, failures are logged only.
		go func() {
			p.sleep(delay)
			if err := p.open(url); err != nil {
				p.log.Warn().Err(err).Str("url", url).Msg("could not open browser")
			}
		}()
	}
	uvicorn := p.cfg.venvBin(p.env.OS, "uvicorn")
	p.log.Info().Str("url", p.cfg.AppURL()).Msg("starting backend")
	cmd := exec.CommandContext(ctx, uvicorn,
		"main:app", "--host", "127.0.0.1", "--port", strconv.Itoa(p.cfg.AppPort))
	cmd.Dir = p.cfg.AppRoot
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	return cmd.Run()
}
