package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranilearn/rani/internal/config"
	"github.com/ranilearn/rani/internal/logging"
)

func TestBindFlags_OnlyChangedFlags(t *testing.T) {
	flags := pflag.NewFlagSet("rani", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.String("log-level", "", "")
	flags.String("log-format", "", "")
	flags.String("config", "", "")
	require.NoError(t, flags.Parse([]string{"--db", "/tmp/rani.db", "--config", "x.yaml"}))

	v := viper.New()
	v.SetDefault("log.level", "info")
	require.NoError(t, bindFlags(v, flags))

	assert.Equal(t, "/tmp/rani.db", v.GetString("db.path"))
	assert.Equal(t, "info", v.GetString("log.level"), "unset flags must not shadow defaults")
	assert.False(t, v.IsSet("config"), "config is not a configuration key")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Completed", statusLabel(2))
	assert.Equal(t, "Locked", statusLabel(0))
}

type closeRecorder struct{ closed bool }

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestOpenEnv_ClosesLogFileWhenStoreFails(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	rec := &closeRecorder{}
	orig := openLogFile
	openLogFile = func(config.LogConfig, string) (*logrus.Logger, io.Closer, error) {
		return logging.Discard(), rec, nil
	}
	t.Cleanup(func() { openLogFile = orig })

	cmd := &cobra.Command{Use: "rani"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("db", "", "")
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().String("log-format", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--db", filepath.Join(blocker, "rani.db")}))

	e, err := openEnv(cmd, true)
	require.Error(t, err)
	assert.Nil(t, e)
	assert.True(t, rec.closed, "log file must be closed when the store cannot be opened")
}
