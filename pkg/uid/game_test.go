package uid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateGameID(t *testing.T) {
	seen := make(map[string]bool)
	for rep := 0; rep < 100; rep++ {
		id := GenerateGameID()
		require.True(t, IsGameID(id), id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	require.False(t, IsGameID(""))
	require.False(t, IsGameID("not-a-game"))
}
