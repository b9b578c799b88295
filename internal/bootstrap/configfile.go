package bootstrap

import (
	"fmt"

	"neuroctl/internal/common/fsutil"
)

// materializeConfig ensures an active persona configuration exists. An
// existing active file is never touched; otherwise the bundled template is
// copied byte-for-byte. Both files missing is a warning, not a failure:
// the backend runs unconfigured.
func (p *Pipeline) materializeConfig() error {
	active := p.cfg.ActiveConfigPath()
	template := p.cfg.TemplateConfigPath()
	if fsutil.PathExists(active) {
		p.log.Debug().Str("path", active).Msg("persona config present")
		return nil
	}
	if fsutil.PathExists(template) {
		if err := fsutil.CopyFile(template, active); err != nil {
			return fmt.Errorf("copying persona template: %w", err)
		}
		p.log.Info().Str("from", template).Str("to", active).Msg("persona config created from template")
		return nil
	}
	p.log.Warn().Str("path", active).Msg("no persona config or template found; backend will run unconfigured")
	return nil
}
