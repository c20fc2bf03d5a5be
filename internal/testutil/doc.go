// Package testutil contains fixtures and assertions shared by package tests.
package testutil

const (
	testDirPermissions  = 0o750
	testFilePermissions = 0o600
)
