package bootstrap

import (
	"os"
	"runtime"
	"strings"
)

// OSFamily classifies the host into one of the four supported families.
type OSFamily string

const (
	OSMac     OSFamily = "mac"
	OSLinux   OSFamily = "linux"
	OSWSL     OSFamily = "wsl"
	OSWindows OSFamily = "windows"
)

// HostEnvironment is computed once at startup and read by every later stage.
type HostEnvironment struct {
	OS   OSFamily
	Arch string
}

// DetectHost classifies the current host. WSL presents as linux to the Go
// runtime, so the kernel banner is consulted to tell the two apart.
func DetectHost() (HostEnvironment, error) {
	banner := ""
	if runtime.GOOS == "linux" {
		if b, err := os.ReadFile("/proc/version"); err == nil {
			banner = string(b)
		}
	}
	fam, err := classifyOS(runtime.GOOS, banner)
	if err != nil {
		return HostEnvironment{}, err
	}
	return HostEnvironment{OS: fam, Arch: runtime.GOARCH}, nil
}

func classifyOS(goos, kernelBanner string) (OSFamily, error) {
	switch goos {
	case "darwin":
		return OSMac, nil
	case "windows":
		return OSWindows, nil
	case "linux":
		if strings.Contains(strings.ToLower(kernelBanner), "microsoft") {
			return OSWSL, nil
		}
		return OSLinux, nil
	default:
		return "", ErrUnsupportedPlatform(goos)
	}
}

// pythonCommand is the interpreter name to probe and run on this family.
func (h HostEnvironment) pythonCommand() string {
	if h.OS == OSWindows {
		return "python"
	}
	return "python3"
}
