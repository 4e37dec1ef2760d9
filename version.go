// Package schemaissues provides the version information for schemaissues.
package schemaissues

// Version is the current version of schemaissues.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
