package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"debugpanels/internal/config"
	"debugpanels/internal/overlay"
	"debugpanels/internal/state"
	"debugpanels/internal/telemetry"
	"debugpanels/internal/ui"
)

// session is an overlay plus the resources it holds open.
type session struct {
	overlay *overlay.Overlay
	closers []func(context.Context) error
	logger  *log.Logger
}

// newSession builds the overlay from cfg: its store backend, tracer and
// default panel sizing.
func newSession(ctx context.Context, cfg *config.Config, logger *log.Logger) (*session, error) {
	s := &session{logger: logger}

	store, err := openStore(ctx, cfg.State)
	if err != nil {
		return nil, err
	}
	if c, ok := store.(io.Closer); ok {
		s.closers = append(s.closers, func(context.Context) error { return c.Close() })
	}

	tp, err := telemetry.New(ctx)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	s.closers = append(s.closers, tp.Shutdown)
	if tp.Enabled() {
		logger.Info("exporting relayout spans")
	}

	s.overlay = overlay.New(
		overlay.WithGap(cfg.Layout.Gap),
		overlay.WithColor(cfg.Layout.Color),
		overlay.WithDefaultPanel(overlay.PanelOptions{
			Fraction:       cfg.Layout.DefaultFraction,
			ExpandFraction: cfg.Layout.DefaultExpandFraction,
		}),
		overlay.WithStore(store),
		overlay.WithLogger(logger),
		overlay.WithTracer(tp.Tracer()),
	)
	return s, nil
}

// openStore returns the flag store selected by cfg.
func openStore(ctx context.Context, cfg config.StateConfig) (state.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return state.NewMemory(), nil
	case config.BackendRedis:
		dialCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		r, err := state.DialRedis(dialCtx, cfg.RedisAddr, cfg.RedisHash)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		path := cfg.File
		if path == "" {
			p, err := state.DefaultFilePath()
			if err != nil {
				return nil, fmt.Errorf("resolve state file: %w", err)
			}
			path = p
		}
		f, err := state.OpenFile(path)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// program returns a full-screen program with mouse support for m.
func (s *session) program(ctx context.Context, m *ui.Model) *tea.Program {
	m.Logger = s.logger
	return tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
}

// run runs p and treats a context cancellation as a normal exit.
func (s *session) run(p *tea.Program) error {
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			s.logger.Warn("close", "err", err)
		}
	}
}
