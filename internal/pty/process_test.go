package pty

import (
	"io"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTTY struct {
	io.Reader
}

func (fakeTTY) Write(b []byte) (int, error) { return len(b), nil }
func (fakeTTY) Close() error                { return nil }

// fakeRunner starts cmd normally and serves canned output instead of a PTY.
type fakeRunner struct {
	output  string
	resized []Size
}

func (f *fakeRunner) Start(cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return fakeTTY{strings.NewReader(f.output)}, nil
}

func (f *fakeRunner) Resize(rwc io.ReadWriteCloser, size Size) error {
	f.resized = append(f.resized, size)
	return nil
}

func TestCleanLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"crlf\r", "crlf"},
		{"\x1b[31mred\x1b[0m", "red"},
		{"10%\r50%\r100%", "100%"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanLine(tt.in), "CleanLine(%q)", tt.in)
	}
}

func TestSpawn_StreamsLines(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	r := &fakeRunner{output: "first\r\n\x1b[1msecond\x1b[0m\r\nthird"}
	p, err := Spawn(r, exec.Command("true"), Size{Rows: 24, Cols: 80})
	require.NoError(t, err)

	var got []string
	for l := range p.Lines() {
		got = append(got, l)
	}
	assert.Equal(t, []string{"first", "second", "third"}, got)
	assert.NoError(t, p.Wait())

	require.NoError(t, p.Resize(Size{Rows: 10, Cols: 20}))
	assert.Equal(t, []Size{{Rows: 10, Cols: 20}}, r.resized)
}

func TestSpawn_ExitError(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	p, err := Spawn(&fakeRunner{}, exec.Command("false"), Size{})
	require.NoError(t, err)
	for range p.Lines() {
	}
	assert.Error(t, p.Wait())
}

func TestSpawn_StartError(t *testing.T) {
	_, err := Spawn(&fakeRunner{}, exec.Command("/nonexistent/binary"), Size{})
	assert.Error(t, err)
}
