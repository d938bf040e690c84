package cli

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"debugpanels/internal/overlay"
	"debugpanels/internal/ui"
)

// demoInterval is how often the demo refreshes its FPS panel and meter.
const demoInterval = 60 * time.Millisecond

const demoBackground = `debugpanels demo

Click a panel to hide it (or resize it when it is expandable).
Click the minimize control at the end of a corner's stack to collapse it.
The count beside it brings back the last hidden panel.`

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Show every panel kind with live updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			s, err := newSession(ctx, configFromContext(ctx), logger)
			if err != nil {
				return err
			}
			defer s.close()

			d := buildDemo(s.overlay)
			m := ui.NewModel(s.overlay)
			m.Background = demoBackground
			p := s.program(ctx, m)

			tickCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go runTicker(tickCtx, p, d, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))

			return s.run(p)
		},
	}
}

// demo holds the panels the ticker updates.
type demo struct {
	fps   *overlay.Panel
	meter *overlay.Panel
}

// buildDemo lays out the showcase: log lines on the default panel, an FPS
// panel with a meter, a panel moved between corners, a link with a satellite
// link, and a chain of satellites in the bottom-left corner.
func buildDemo(o *overlay.Overlay) *demo {
	o.Log(overlay.LogOptions{}, "This is a test message.")
	o.Log(overlay.LogOptions{Color: "green"},
		"This is a list", "of messages", "in one debug statement", "useful for variables or watch statements")

	d := &demo{
		fps:   o.AddPanel("FPS", overlay.PanelOptions{Text: "0 FPS"}),
		meter: o.AddMeter("panel", overlay.MeterOptions{}),
	}

	moved := o.AddPanel("testing", overlay.PanelOptions{
		Quadrant: "rightTop",
		Text:     "this panel was moved from right-top to left-top.",
	})
	o.ChangeQuadrant(moved, "topleft")

	github := o.AddLink("github", "https://github.com/davidfig/debug", overlay.LinkOptions{Quadrant: "rightTop"})
	o.AddLink("issues", "https://github.com/davidfig/debug/issues", overlay.LinkOptions{Parent: github})

	lower := o.AddPanel("lower", overlay.PanelOptions{
		Quadrant: "leftBottom",
		Fraction: 0.3,
		Text:     "Here's a panel in the lower left side.",
	})
	o.ReplaceText(overlay.LogOptions{Target: lower},
		"Try pressing on a panel", "or the minimize button near a panel set")

	parent := o.AddPanel("text1", overlay.PanelOptions{Quadrant: "leftBottom", Text: "text"})
	for i := 2; i <= 4; i++ {
		parent = o.AddPanel(fmt.Sprintf("text%d", i), overlay.PanelOptions{
			Text:   fmt.Sprintf("text-%d", i),
			Parent: parent,
		})
	}
	return d
}

// tick draws a random meter sample and a random frame rate, red below 30.
func (d *demo) tick(o *overlay.Overlay, rng *rand.Rand) {
	fps := rng.Float64() * 60
	o.DrawMeterSample(rng.Float64()*2-1, overlay.MeterTarget{Panel: d.meter})
	color := ""
	if fps < 30 {
		color = "red"
	}
	o.ReplaceText(overlay.LogOptions{Target: d.fps, Color: color}, fmt.Sprintf("%d FPS", int(math.Round(fps))))
}

// runTicker feeds demo ticks into the program until ctx ends.
func runTicker(ctx context.Context, p *tea.Program, d *demo, rng *rand.Rand) {
	t := time.NewTicker(demoInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.Send(ui.ApplyMsg(func(o *overlay.Overlay) { d.tick(o, rng) }))
		}
	}
}
