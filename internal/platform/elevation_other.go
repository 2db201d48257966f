//go:build !unix

package platform

// IsElevated always reports false where there is no sudo-based install.
func IsElevated() bool {
	return false
}
