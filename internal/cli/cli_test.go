package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debugpanels/internal/config"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand().cmd
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "demo")
	assert.Contains(t, names, "run")
}

func TestRootCommand_RunRequiresCommand(t *testing.T) {
	t.Setenv(config.ConfigFileEnv, filepath.Join(t.TempDir(), "missing.toml"))
	root := newRootCommand().cmd
	root.SetArgs([]string{"run"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	require.Error(t, root.Execute())
}

func TestExecute_ClosesLogFileOnFailure(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	dir := t.TempDir()
	logPath := filepath.Join(dir, "debugpanels.log")
	cfgPath := filepath.Join(dir, "config.toml")
	body := "[state]\nbackend = \"memory\"\n\n[log]\nfile = \"" + filepath.ToSlash(logPath) + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	r := newRootCommand()
	r.cmd.SetArgs([]string{"--config", cfgPath, "run", "--", filepath.Join(dir, "no-such-command")})
	var out bytes.Buffer
	r.cmd.SetOut(&out)
	r.cmd.SetErr(&out)

	require.Error(t, r.execute(context.Background()))
	require.NotNil(t, r.logFile)
	_, err := r.logFile.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestSetVersion(t *testing.T) {
	SetVersion("v1.2.3", "abc123")
	assert.Equal(t, "v1.2.3", version)
	assert.Equal(t, "abc123", commit)

	SetVersion("", "")
	assert.Equal(t, "v1.2.3", version)
}
