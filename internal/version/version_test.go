package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionDefaults(t *testing.T) {
	require.NotEmpty(t, Version)
	require.NotEmpty(t, BuildTime)
	require.NotEmpty(t, GitCommit)
}

func TestString(t *testing.T) {
	s := String()
	require.Contains(t, s, "devlog "+Version)
	require.Contains(t, s, GitCommit)
}
