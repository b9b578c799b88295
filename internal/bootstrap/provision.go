package bootstrap

import (
	"context"

	"neuroctl/internal/common/fsutil"
)

// provisionSandbox creates the backend's virtualenv if absent and then
// (re-)installs the dependency manifest into it. The install runs on every
// invocation; pip treats an already-satisfied manifest as a no-op.
func (p *Pipeline) provisionSandbox(ctx context.Context) error {
	venv := p.cfg.VenvDir()
	if !fsutil.PathExists(venv) {
		p.log.Info().Str("path", venv).Msg("creating dependency sandbox")
		if err := p.run(ctx, p.env.pythonCommand(), "-m", "venv", venv); err != nil {
			return ErrProvisioning("creating venv", err)
		}
	} else {
		p.log.Debug().Str("path", venv).Msg("dependency sandbox exists")
	}
	pip := p.cfg.venvBin(p.env.OS, "pip")
	p.log.Info().Str("manifest", p.cfg.RequirementsPath()).Msg("installing backend dependencies")
	if err := p.run(ctx, pip, "install", "-r", p.cfg.RequirementsPath()); err != nil {
		return ErrProvisioning("installing requirements", err)
	}
	return nil
}
