package cli

import (
	"context"
	"io"
	"os/exec"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debugpanels/internal/overlay"
	"debugpanels/internal/pty"
	"debugpanels/internal/ui"
)

type recordingSender struct {
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) { r.msgs = append(r.msgs, msg) }

type cannedTTY struct{ io.Reader }

func (cannedTTY) Write(b []byte) (int, error) { return len(b), nil }
func (cannedTTY) Close() error                { return nil }

// cannedRunner starts cmd normally but serves fixed output.
type cannedRunner struct{ output string }

func (c cannedRunner) Start(cmd *exec.Cmd, size pty.Size) (io.ReadWriteCloser, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cannedTTY{strings.NewReader(c.output)}, nil
}

func (cannedRunner) Resize(io.ReadWriteCloser, pty.Size) error { return nil }

func spawn(t *testing.T, name, output string) *pty.Process {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
	p, err := pty.Spawn(cannedRunner{output: output}, exec.Command(name), pty.Size{Rows: 24, Cols: 80})
	require.NoError(t, err)
	return p
}

func TestForward_Success(t *testing.T) {
	proc := spawn(t, "true", "building\r\n\x1b[32mok\x1b[0m\r\n")
	var s recordingSender
	target := overlay.LogOptions{TargetName: "build"}
	forward(context.Background(), &s, proc, target)

	require.Len(t, s.msgs, 3)
	var got []any
	for _, m := range s.msgs {
		lm, ok := m.(ui.LogMsg)
		require.True(t, ok, "%T", m)
		assert.Equal(t, target, lm.Options)
		got = append(got, lm.Values...)
	}
	assert.Equal(t, []any{"building", "ok", "command exited"}, got)
}

func TestForward_Failure(t *testing.T) {
	proc := spawn(t, "false", "oops\n")
	var s recordingSender
	forward(context.Background(), &s, proc, overlay.LogOptions{})

	require.Len(t, s.msgs, 2)
	em, ok := s.msgs[1].(ui.ErrorMsg)
	require.True(t, ok, "%T", s.msgs[1])
	assert.ErrorContains(t, em.Err, "command exited")
}
