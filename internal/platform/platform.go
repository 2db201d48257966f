// Package platform classifies the host the launcher runs on.
package platform

import "runtime"

// Host is a closed set of host platforms. Only Linux and Darwin have an
// install step; every other GOOS maps to Unsupported.
type Host int

const (
	Unsupported Host = iota
	Linux
	Darwin
)

// ElevationWrapper re-runs a command with root privileges.
const ElevationWrapper = "sudo"

// Detect maps a GOOS value to a Host.
func Detect(goos string) Host {
	switch goos {
	case "linux":
		return Linux
	case "darwin":
		return Darwin
	default:
		return Unsupported
	}
}

// Current returns the Host for the running binary.
func Current() Host {
	return Detect(runtime.GOOS)
}

// SupportsInstall reports whether the make-based install step exists for h.
func (h Host) SupportsInstall() bool {
	return h == Linux || h == Darwin
}

func (h Host) String() string {
	switch h {
	case Linux:
		return "Linux"
	case Darwin:
		return "Darwin"
	default:
		return "unsupported"
	}
}
