package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjs98/easy-server-mock/pkg/engine"
	"github.com/jjs98/easy-server-mock/pkg/portability"
)

func TestServeFlagDefaults(t *testing.T) {
	flags := serveCmd.Flags()

	port, err := flags.GetInt("port")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultPort, port)

	level, err := flags.GetString("log-level")
	require.NoError(t, err)
	assert.Equal(t, "info", level)

	collection, err := flags.GetString("collection")
	require.NoError(t, err)
	assert.Empty(t, collection)
}

func TestResolveFormat(t *testing.T) {
	t.Parallel()

	t.Run("flag wins over extension", func(t *testing.T) {
		t.Parallel()
		f, err := resolveFormat("endpoints.json", "yaml")
		require.NoError(t, err)
		assert.Equal(t, portability.FormatYAML, f)
	})

	t.Run("extension inference", func(t *testing.T) {
		t.Parallel()
		for path, want := range map[string]portability.Format{
			"endpoints.yaml": portability.FormatYAML,
			"endpoints.yml":  portability.FormatYAML,
			"endpoints.json": portability.FormatJSON,
			"endpoints":      portability.FormatJSON,
		} {
			f, err := resolveFormat(path, "")
			require.NoError(t, err)
			assert.Equal(t, want, f, path)
		}
	})

	t.Run("unknown flag value errors", func(t *testing.T) {
		t.Parallel()
		_, err := resolveFormat("endpoints.json", "xml")
		require.Error(t, err)
	})
}

func TestLoadCollection(t *testing.T) {
	t.Parallel()

	t.Run("json file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "endpoints.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"version": 1,
			"endpoints": [
				{"path": "/test", "method": "GET", "statusCode": 200, "body": {"ok": true}}
			]
		}`), 0o644))

		c, err := loadCollection(path, "")
		require.NoError(t, err)
		require.Len(t, c.Endpoints, 1)
		assert.Equal(t, "/test", c.Endpoints[0].Path)
	})

	t.Run("yaml file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "endpoints.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
version: 1
endpoints:
  - path: /test
    method: POST
    statusCode: 201
    delayMs: 10
`), 0o644))

		c, err := loadCollection(path, "")
		require.NoError(t, err)
		require.Len(t, c.Endpoints, 1)
		assert.Equal(t, "POST", c.Endpoints[0].Method)
		assert.Equal(t, 10, c.Endpoints[0].DelayMs)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := loadCollection(filepath.Join(t.TempDir(), "absent.json"), "")
		require.Error(t, err)
	})

	t.Run("malformed content", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))
		_, err := loadCollection(path, "")
		require.Error(t, err)
	})
}

func TestRootCommandWiring(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["version"])
}
