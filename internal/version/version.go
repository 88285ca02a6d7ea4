// Package version provides the linview version constant.
package version

// Version is the current linview version.
const Version = "0.3.1"
