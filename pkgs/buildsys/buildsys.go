// Package buildsys defines the lifecycle steps the launcher drives on an
// external build system.
package buildsys

import "context"

// Configurer generates a build plan from a source tree.
//
// The returned status is the exit code of the configuration tool; err is set
// only when the tool could not be run at all.
type Configurer interface {
	Configure(ctx context.Context) (status int, err error)
}

// Installer builds a configured plan and installs its artifacts.
type Installer interface {
	Install(ctx context.Context) (status int, err error)
}
