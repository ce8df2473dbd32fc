package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func memoryConfigFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 50051
store:
  type: memory
jwt:
  secret: "0123456789abcdef0123456789abcdef"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

func TestQuoteCmd(t *testing.T) {
	t.Run("Weekly tier", func(t *testing.T) {
		out, err := run(t, "quote",
			"--start", "2024-06-01T00:00:00Z", "--end", "2024-06-11T00:00:00Z",
			"--daily", "1000", "--weekly", "6000")
		require.NoError(t, err)
		assert.Contains(t, out, "Pricing: WEEKLY")
		assert.Contains(t, out, "Total:   8571.43")
	})

	t.Run("Hourly tier", func(t *testing.T) {
		out, err := run(t, "quote",
			"--start", "2024-06-01T08:00:00Z", "--end", "2024-06-01T13:00:00Z",
			"--hourly", "100")
		require.NoError(t, err)
		assert.Contains(t, out, "Pricing: HOURLY")
		assert.Contains(t, out, "Total:   500.00")
	})

	t.Run("No rates", func(t *testing.T) {
		_, err := run(t, "quote", "--start", "2024-06-01T08:00:00Z", "--end", "2024-06-02T08:00:00Z")
		assert.Error(t, err)
	})

	t.Run("Bad time", func(t *testing.T) {
		_, err := run(t, "quote", "--start", "yesterday", "--end", "2024-06-02T08:00:00Z", "--daily", "10")
		assert.Error(t, err)
	})
}

func TestDistanceCmd(t *testing.T) {
	out, err := run(t, "distance", "0,0", "0.1,0")
	require.NoError(t, err)
	assert.Equal(t, "11.1 km\n", out)

	_, err = run(t, "distance", "91,0", "0,0")
	assert.Error(t, err)

	_, err = run(t, "distance", "0,0")
	assert.Error(t, err)
}

func TestStoreCommands(t *testing.T) {
	cfg := memoryConfigFile(t)

	out, err := run(t, "recompute-ratings", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "equipment=0 users=0 failed=0\n", out)

	out, err = run(t, "nearby", "--config", cfg, "--lat", "18.52", "--lon", "73.85")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "DISTANCE_KM")

	_, err = run(t, "nearby", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--lat", "1", "--lon", "1")
	assert.Error(t, err)
}
