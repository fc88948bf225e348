package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"mcserver/internal/api"
	"mcserver/internal/config"
)

func sampleServers() []api.Server {
	return []api.Server{
		{Name: "alpha", Tags: []string{"active"}, State: api.StateRunning},
		{Name: "beta", Tags: []string{"exited", "last used 2h ago"}, State: api.StateExited},
	}
}

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range ValidOutputFormats {
		assert.NoError(t, ValidateOutputFormat(string(f)))
	}
	err := ValidateOutputFormat("wide")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"wide"`)
}

func TestWriteServers_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteServers(&buf, sampleServers(), ListOptions{Format: OutputFormatTable}))

	expected := "NAME    STATE     TAGS\n" +
		"alpha   running   active\n" +
		"beta    exited    exited, last used 2h ago\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteServers_NamesOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteServers(&buf, sampleServers(), ListOptions{Format: OutputFormatTable, NamesOnly: true}))
	assert.Equal(t, "alpha\nbeta\n", buf.String())
}

func TestWriteServers_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteServers(&buf, sampleServers(), ListOptions{Format: OutputFormatJSON}))

	var got []api.Server
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleServers(), got)
}

func TestWriteServers_EmptyJSONIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteServers(&buf, nil, ListOptions{Format: OutputFormatJSON}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteServers_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteServers(&buf, sampleServers(), ListOptions{Format: OutputFormatYAML}))

	var got []api.Server
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleServers(), got)
}

func TestFormatTags(t *testing.T) {
	tags := []string{"active", "last used 1s ago"}
	assert.Equal(t, "active, last used 1s ago", formatTags(tags, false))
	assert.Contains(t, formatTags(tags, true), "last used 1s ago")
}

func sampleConfig() config.DynamicConfig {
	cfg := config.GetDefaultConfig()
	cfg.DefaultServer = "alpha"
	cfg.Rcon["alpha"] = config.RconConfig{ServerAddress: "127.0.0.1", Port: 25575, Password: "hunter2"}
	return cfg
}

func TestWriteConfig_HidesPassword(t *testing.T) {
	for _, format := range ValidOutputFormats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteConfig(&buf, sampleConfig(), format))

			out := buf.String()
			assert.NotContains(t, out, "hunter2")
			assert.Contains(t, out, "(hidden)")
			assert.Contains(t, out, "servers_directory")
			assert.Contains(t, out, "127.0.0.1")
		})
	}
}
