package id_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftapp/drift-server/internal/id"
)

func TestGenerate_PrefixAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)

	for range 100 {
		generated, err := id.Generate("drift")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(generated, "drift-"))
		require.False(t, seen[generated], "duplicate id: %s", generated)
		seen[generated] = true
	}
}
