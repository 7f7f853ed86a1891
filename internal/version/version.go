// Package version holds the single source of truth for the module's
// release version, checked against the doc comment on the root package by
// TestVersionMatchesModule (see version_test.go) so the two can't drift,
// mirroring the upstream deploy/check_version.py cross-file check.
package version

// Version is the current release version, in "major.minor.patch" form.
const Version = "1.1.0"
