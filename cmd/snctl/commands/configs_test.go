package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snctl/snctl/internal/config"
)

func TestConfigsUpdate(t *testing.T) {
	te := newTestEnv(t)

	out, _, err := te.execute("configs", "update", "--kafka-url", "other:9093")
	assert.Nil(t, err)

	expected := "Updated bootstrap.servers to other:9093\n" +
		"Updated config file " + te.configPath + "\n"
	assert.Equal(t, expected, out)
	assert.Zero(t, te.clientCfg.BootstrapServers, "no client expected")

	c, err := config.Loader{Paths: []string{te.configPath}}.Load()
	require.Nil(t, err)
	assert.Equal(t, "other:9093", c.Kafka.BootstrapServers)
	assert.Equal(t, "secret-token", c.Kafka.Token)
	assert.False(t, c.Log.Enabled)
}

func TestConfigsUpdateUnchanged(t *testing.T) {
	te := newTestEnv(t)

	out, _, err := te.execute("configs", "update", "--kafka-token", "secret-token")
	assert.Nil(t, err)

	expected := "The provided token is the same with the config in " + te.configPath + "\n" +
		"No config updated\n"
	assert.Equal(t, expected, out)
}

func TestConfigsUpdateEmptyToken(t *testing.T) {
	te := newTestEnv(t)

	_, _, err := te.execute("configs", "update", "--kafka-token", "")
	assert.EqualError(t, err, "The token cannot be empty")
}
