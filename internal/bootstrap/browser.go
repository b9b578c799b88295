package bootstrap

import (
	"fmt"
	"os/exec"
)

// openBrowser opens the default browser at url. Best-effort: callers log
// failures and move on. On WSL the Windows shell does the opening since a
// Linux-side xdg-open is usually absent.
func openBrowser(osf OSFamily, url string) error {
	var cmd *exec.Cmd
	switch osf {
	case OSMac:
		cmd = exec.Command("open", url)
	case OSLinux:
		cmd = exec.Command("xdg-open", url)
	case OSWSL:
		cmd = exec.Command("cmd.exe", "/C", "start", url)
	case OSWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("no browser launcher for %s", osf)
	}
	return cmd.Start()
}
