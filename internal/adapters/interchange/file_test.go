package interchange

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WriteFile(dir, "Math.json", []byte(`{"name":"Math"}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Math.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Math"}`, string(data))

	_, err = WriteFile(dir, "Math.json", []byte(`{"name":"Math","topics":[]}`))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSeedFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.json")
	seed := NewSeedFile(path)

	assert.Equal(t, SeedHealthCheckName, seed.Name())
	require.Error(t, seed.Check(ctx), "missing file is unhealthy")

	require.NoError(t, seed.Write([]byte(`{"subjects":[]}`)))
	require.NoError(t, seed.Check(ctx))
	assert.Contains(t, seed.Describe(ctx), "(15 bytes)")

	rc, err := seed.Open()
	require.NoError(t, err)

	col, err := NewCodec(CodecConfig{}).DecodeCollection(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Empty(t, col.Subjects)

	require.Error(t, NewSeedFile(t.TempDir()).Check(ctx), "directory is unhealthy")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, seed.Check(cancelled), context.Canceled)
}
