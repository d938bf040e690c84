package cli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"debugpanels/internal/overlay"
	"debugpanels/internal/pty"
	"debugpanels/internal/ui"
)

func newRunCmd() *cobra.Command {
	var panel string
	cmd := &cobra.Command{
		Use:   "run [flags] -- command [args...]",
		Short: "Run a command and stream its output into a panel",
		Long: `Run starts the command under a pseudo-terminal and appends each line it
prints to a panel ("debug" unless --panel is given). A non-zero exit is
shown as an error entry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			s, err := newSession(ctx, configFromContext(ctx), logger)
			if err != nil {
				return err
			}
			defer s.close()

			target := overlay.LogOptions{}
			if panel != "" {
				target.Target = s.overlay.AddPanel(panel, overlay.PanelOptions{})
			}

			w, h := s.overlay.Viewport()
			c := exec.CommandContext(ctx, args[0], args[1:]...)
			proc, err := pty.Spawn(&pty.CreackPTY{}, c, pty.Size{Cols: uint16(w), Rows: uint16(h)})
			if err != nil {
				return err
			}
			defer proc.Close()
			logger.Info("command started", "cmd", strings.Join(args, " "))

			m := ui.NewModel(s.overlay)
			m.Background = "debugpanels run: " + strings.Join(args, " ")
			m.OnResize = func(width, height int) {
				if err := proc.Resize(pty.Size{Cols: uint16(width), Rows: uint16(height)}); err != nil {
					logger.Debug("resize pty", "err", err)
				}
			}
			p := s.program(ctx, m)
			go forward(ctx, p, proc, target)

			return s.run(p)
		},
	}
	cmd.Flags().StringVarP(&panel, "panel", "p", "", "panel to stream output into (bottom-right)")
	return cmd
}

// sender is the part of tea.Program that forward needs.
type sender interface {
	Send(msg tea.Msg)
}

// forward streams proc's lines to the overlay and reports its exit status.
func forward(ctx context.Context, p sender, proc *pty.Process, target overlay.LogOptions) {
	for line := range proc.Lines() {
		if ctx.Err() != nil {
			return
		}
		p.Send(ui.LogMsg{Options: target, Values: []any{line}})
	}
	if err := proc.Wait(); err != nil {
		p.Send(ui.ErrorMsg{Err: fmt.Errorf("command exited: %w", err)})
		return
	}
	p.Send(ui.LogMsg{Options: target, Values: []any{"command exited"}})
}
