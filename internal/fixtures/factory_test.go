package fixtures

import (
	"testing"

	"souvenirspartan/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeStore_DefaultsToFiles(t *testing.T) {
	t.Parallel()

	store, err := MakeStore(config.FixturesConfig{Dir: "testdata"})
	require.NoError(t, err)
	fs, ok := store.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, "testdata", fs.Dir)
}

func TestMakeStore_BlobNeedsKey(t *testing.T) {
	t.Parallel()

	_, err := MakeStore(config.FixturesConfig{Container: "fixtures", AccountName: "acct"})
	require.Error(t, err)
}
