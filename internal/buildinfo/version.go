// Package buildinfo carries tilecore's own version string, compared with
// pkg/utils.VersionLessThan wherever a client needs to gate on daemon
// compatibility.
package buildinfo

// Version is tilecore's release version.
const Version = "0.1.0"

// MinSupportedVersion is the oldest daemon version tilectl will talk to
// without warning.
const MinSupportedVersion = "0.1.0"
