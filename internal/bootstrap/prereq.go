package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Prerequisite is a runtime the pipeline needs before it can proceed.
// Probe returns the detected version; Installers maps each OS family to
// an automated install action. Families absent from the map require a
// manual install and fail with the Hint as remediation.
type Prerequisite struct {
	Name       string
	MinVersion string
	Probe      func(ctx context.Context) (string, error)
	Installers map[OSFamily]func(ctx context.Context) error
	Hint       string
}

// ensurePrerequisites resolves the language runtime first, then the daemon.
func (p *Pipeline) ensurePrerequisites(ctx context.Context) error {
	reqs := p.prereqs
	if reqs == nil {
		reqs = p.defaultPrerequisites()
	}
	for _, pre := range reqs {
		if err := p.resolvePrerequisite(ctx, pre); err != nil {
			return err
		}
	}
	return nil
}

// resolvePrerequisite probes, installs at most once, then re-probes once.
// The installer itself is never retried.
func (p *Pipeline) resolvePrerequisite(ctx context.Context, pre Prerequisite) error {
	if ver, err := pre.Probe(ctx); err == nil && versionAtLeast(ver, pre.MinVersion) {
		p.log.Info().Str("prerequisite", pre.Name).Str("version", ver).Msg("already installed")
		return nil
	}
	install, ok := pre.Installers[p.env.OS]
	if !ok {
		return ErrMissingPrerequisite(pre.Name, pre.Hint)
	}
	p.log.Info().Str("prerequisite", pre.Name).Str("os", string(p.env.OS)).Msg("installing")
	if err := install(ctx); err != nil {
		return ErrInstallFailure(pre.Name, err)
	}
	ver, err := pre.Probe(ctx)
	if err != nil {
		return ErrInstallFailure(pre.Name, fmt.Errorf("not detected after install: %w", err))
	}
	if !versionAtLeast(ver, pre.MinVersion) {
		return ErrInstallFailure(pre.Name, fmt.Errorf("version %s below required %s", ver, pre.MinVersion))
	}
	p.log.Info().Str("prerequisite", pre.Name).Str("version", ver).Msg("installed")
	return nil
}

func (p *Pipeline) defaultPrerequisites() []Prerequisite {
	py := p.env.pythonCommand()
	return []Prerequisite{
		{
			Name:       py,
			MinVersion: "3.9",
			Probe: func(ctx context.Context) (string, error) {
				out, err := p.runOut(ctx, py, "--version")
				if err != nil {
					return "", err
				}
				return parseVersion(out), nil
			},
			Installers: map[OSFamily]func(ctx context.Context) error{
				OSMac: func(ctx context.Context) error {
					return p.run(ctx, "brew", "install", "python")
				},
				OSLinux: func(ctx context.Context) error {
					return p.runMaybeSudo(ctx, "apt-get", "install", "-y", "python3", "python3-venv", "python3-pip")
				},
				OSWSL: func(ctx context.Context) error {
					return p.runMaybeSudo(ctx, "apt-get", "install", "-y", "python3", "python3-venv", "python3-pip")
				},
			},
			Hint: "install Python 3 from https://www.python.org/downloads/ and re-run",
		},
		{
			Name: "ollama",
			Probe: func(ctx context.Context) (string, error) {
				out, err := p.runOut(ctx, "ollama", "--version")
				if err != nil {
					return "", err
				}
				return parseVersion(out), nil
			},
			Installers: map[OSFamily]func(ctx context.Context) error{
				OSMac: func(ctx context.Context) error {
					return p.run(ctx, "brew", "install", "ollama")
				},
				OSLinux: func(ctx context.Context) error {
					return p.run(ctx, "sh", "-c", "curl -fsSL https://ollama.com/install.sh | sh")
				},
				OSWSL: func(ctx context.Context) error {
					return p.run(ctx, "sh", "-c", "curl -fsSL https://ollama.com/install.sh | sh")
				},
			},
			Hint: "download the installer from https://ollama.com/download and re-run",
		},
	}
}

// runMaybeSudo tries sudo if not root, else runs directly.
func (p *Pipeline) runMaybeSudo(ctx context.Context, name string, args ...string) error {
	if os.Geteuid() == 0 {
		return p.run(ctx, name, args...)
	}
	if _, err := exec.LookPath("sudo"); err == nil {
		return p.run(ctx, "sudo", append([]string{name}, args...)...)
	}
	return p.run(ctx, name, args...)
}

// parseVersion extracts the first dotted numeric run from probe output,
// e.g. "Python 3.11.2" -> "3.11.2", "ollama version is 0.5.4" -> "0.5.4".
func parseVersion(s string) string {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}
	end := start
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	return strings.TrimRight(s[start:end], ".")
}

// versionAtLeast compares dotted numeric versions. An empty min accepts
// anything; an unparseable component compares as zero.
func versionAtLeast(ver, min string) bool {
	if min == "" {
		return true
	}
	vp := strings.Split(ver, ".")
	mp := strings.Split(min, ".")
	for i := 0; i < len(vp) || i < len(mp); i++ {
		v, m := 0, 0
		if i < len(vp) {
			v, _ = strconv.Atoi(vp[i])
		}
		if i < len(mp) {
			m, _ = strconv.Atoi(mp[i])
		}
		if v != m {
			return v > m
		}
	}
	return true
}
