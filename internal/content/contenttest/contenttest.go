// Package contenttest provides the embedded lesson bundle to tests.
package contenttest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pycourse/internal/content"
)

// Bundle returns the bundle compiled into the binary and fails tb if it
// does not load.
func Bundle(tb testing.TB) *content.Bundle {
	tb.Helper()
	b, err := content.Default()
	require.NoError(tb, err, "embedded bundle")
	return b
}
