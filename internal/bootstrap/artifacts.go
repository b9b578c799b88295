package bootstrap

import (
	"context"
	"fmt"
	"strings"
)

// syncArtifacts pulls every listed model the daemon does not already
// hold. The daemon's inventory is the source of truth; nothing is cached.
// Pulls run sequentially; a failed pull aborts the run for a required
// model and is logged and skipped for an optional one.
func (p *Pipeline) syncArtifacts(ctx context.Context) error {
	have, err := p.daemon.List(ctx)
	if err != nil {
		return fmt.Errorf("listing daemon inventory: %w", err)
	}
	for _, m := range p.cfg.Models {
		if hasArtifact(have, m.Name) {
			p.log.Debug().Str("model", m.Name).Msg("model already present")
			continue
		}
		p.log.Info().Str("model", m.Name).Msg("pulling model (this can take a while)")
		if err := p.daemon.Pull(ctx, m.Name); err != nil {
			if m.Required {
				return ErrArtifactPull(m.Name, err)
			}
			p.log.Warn().Err(err).Str("model", m.Name).Msg("optional model pull failed, continuing")
			continue
		}
		p.log.Info().Str("model", m.Name).Msg("model pulled")
	}
	return nil
}

// hasArtifact matches case-insensitively and tolerates tag suffixes in
// either direction: the daemon reports "name:latest" for models pulled
// without an explicit tag.
func hasArtifact(have []string, want string) bool {
	w := strings.ToLower(want)
	for _, h := range have {
		h = strings.ToLower(h)
		if h == w || strings.HasPrefix(h, w+":") || strings.HasPrefix(w, h+":") {
			return true
		}
	}
	return false
}
