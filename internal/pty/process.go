package pty

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// lineBuffer bounds how many unread lines a Process holds.
const lineBuffer = 256

// Process is a running host command whose terminal output is split into
// plain-text lines.
type Process struct {
	cmd    *exec.Cmd
	runner Runner
	rwc    io.ReadWriteCloser
	lines  chan string
	done   chan struct{}
	err    error
}

// Spawn starts cmd under runner and begins reading its output.
func Spawn(runner Runner, cmd *exec.Cmd, size Size) (*Process, error) {
	rwc, err := runner.Start(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	p := &Process{
		cmd:    cmd,
		runner: runner,
		rwc:    rwc,
		lines:  make(chan string, lineBuffer),
		done:   make(chan struct{}),
	}
	go p.read()
	return p, nil
}

func (p *Process) read() {
	sc := bufio.NewScanner(p.rwc)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		p.lines <- CleanLine(sc.Text())
	}
	// A PTY master reports EIO once the child exits; that is the normal end.
	close(p.lines)
	p.err = p.cmd.Wait()
	close(p.done)
}

// Lines yields output lines and is closed when the command's output ends.
func (p *Process) Lines() <-chan string {
	return p.lines
}

// Wait blocks until the command exits and returns its exit error.
func (p *Process) Wait() error {
	<-p.done
	return p.err
}

// Resize forwards a new terminal size to the PTY.
func (p *Process) Resize(size Size) error {
	return p.runner.Resize(p.rwc, size)
}

// Close releases the PTY, which ends the reader.
func (p *Process) Close() error {
	return p.rwc.Close()
}

// CleanLine strips escape sequences and carriage returns from a PTY line.
func CleanLine(s string) string {
	s = ansi.Strip(s)
	if i := strings.LastIndexByte(strings.TrimRight(s, "\r"), '\r'); i >= 0 {
		// progress-style output redraws the line after a bare CR
		s = s[i+1:]
	}
	return strings.TrimRight(s, "\r")
}
