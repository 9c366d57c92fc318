// Package consult provides the version information for consult-go.
package consult

// Version is the current version of consult-go.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
