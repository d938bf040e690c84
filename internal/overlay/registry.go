package overlay

import (
	"slices"

	"debugpanels/internal/state"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// stack is one quadrant's ordered panels and minimize state.
type stack struct {
	quadrant  Quadrant
	panels    []*Panel
	hidden    []*Panel // minimized set, most recently hidden last
	minimized bool
	control   *Panel
}

func (s *stack) index(name string) int {
	return slices.IndexFunc(s.panels, func(p *Panel) bool { return p.Name == name })
}

func (s *stack) isHidden(p *Panel) bool {
	return slices.Contains(s.hidden, p)
}

func (s *stack) unhide(p *Panel) bool {
	i := slices.Index(s.hidden, p)
	if i < 0 {
		return false
	}
	s.hidden = slices.Delete(s.hidden, i, i+1)
	return true
}

// Registry holds the four quadrant stacks. Not safe for concurrent use; all
// calls are expected from the UI loop.
type Registry struct {
	stacks map[Quadrant]*stack
	store  state.Store
	logger *log.Logger
}

// NewRegistry creates the four stacks and restores each quadrant's collapsed
// flag from store. A nil store keeps state in memory only.
func NewRegistry(store state.Store, logger *log.Logger) *Registry {
	if store == nil {
		store = state.NewMemory()
	}
	if logger == nil {
		logger = discardLogger()
	}
	r := &Registry{
		stacks: make(map[Quadrant]*stack, len(Quadrants)),
		store:  store,
		logger: logger,
	}
	for _, q := range Quadrants {
		s := &stack{quadrant: q}
		if v, ok := store.Bool(state.QuadrantKey(q.String())); ok {
			s.minimized = v
		}
		r.stacks[q] = s
	}
	return r
}

// Register inserts p into quadrant q keyed by name. A panel already holding
// the name is replaced in its slot (last write wins) and returned. The
// quadrant's control is created on first insertion, and p's persisted hidden
// flag is restored.
func (r *Registry) Register(q Quadrant, p *Panel) (replaced *Panel) {
	s := r.stacks[q]
	p.Quadrant = q
	p.registered = true
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if i := s.index(p.Name); i >= 0 {
		replaced = s.panels[i]
		replaced.registered = false
		s.unhide(replaced)
		s.panels[i] = p
	} else {
		s.panels = append(s.panels, p)
	}

	if s.control == nil {
		s.control = &Panel{
			ID:         uuid.NewString(),
			Name:       "minimize-" + q.String(),
			Kind:       KindControl,
			Quadrant:   q,
			registered: true,
		}
	}

	if v, ok := r.store.Bool(state.PanelKey(q.String(), p.Name)); ok && v {
		s.hidden = append(s.hidden, p)
	}
	return replaced
}

// Remove deletes the named panel from q and its minimized set.
// Returns the removed panel, or nil when absent.
func (r *Registry) Remove(q Quadrant, name string) *Panel {
	s := r.stacks[q]
	i := s.index(name)
	if i < 0 {
		return nil
	}
	p := s.panels[i]
	s.panels = slices.Delete(s.panels, i, i+1)
	s.unhide(p)
	p.registered = false
	return p
}

// Move re-registers p in quadrant q. A hidden panel stays hidden in its new
// quadrant; the old quadrant's persisted flag is cleared and the new one
// records p's state. Returns the panel p replaced in q, if any.
func (r *Registry) Move(p *Panel, q Quadrant) (replaced *Panel) {
	from := p.Quadrant
	hidden := r.IsHidden(p)
	r.Remove(from, p.Name)
	if hidden {
		r.persist(state.PanelKey(from.String(), p.Name), false)
	}

	replaced = r.Register(q, p)
	s := r.stacks[q]
	s.unhide(p)
	if hidden {
		s.hidden = append(s.hidden, p)
	}
	r.persist(state.PanelKey(q.String(), p.Name), hidden)
	return replaced
}

// Panels returns a copy of q's panels in stacking order.
func (r *Registry) Panels(q Quadrant) []*Panel {
	return slices.Clone(r.stacks[q].panels)
}

// Control returns q's minimize control, or nil if nothing was ever added.
func (r *Registry) Control(q Quadrant) *Panel {
	return r.stacks[q].control
}

// Minimized reports whether q is collapsed.
func (r *Registry) Minimized(q Quadrant) bool {
	return r.stacks[q].minimized
}

// IsHidden reports whether p is in its quadrant's minimized set.
func (r *Registry) IsHidden(p *Panel) bool {
	if !p.Registered() {
		return false
	}
	return r.stacks[p.Quadrant].isHidden(p)
}

// HiddenCount is the cardinality of q's minimized set.
func (r *Registry) HiddenCount(q Quadrant) int {
	return len(r.stacks[q].hidden)
}

// ToggleMinimizeAll flips q's collapsed flag and persists it.
// Returns the new value.
func (r *Registry) ToggleMinimizeAll(q Quadrant) bool {
	s := r.stacks[q]
	s.minimized = !s.minimized
	r.persist(state.QuadrantKey(q.String()), s.minimized)
	return s.minimized
}

// ToggleMinimizePanel flips an expandable panel's expanded flag, or toggles
// any other panel's membership in the minimized set. Unregistered panels
// are ignored.
func (r *Registry) ToggleMinimizePanel(p *Panel) {
	if !p.Registered() || p.Kind == KindControl {
		return
	}
	if p.Size.Mode() == SizeExpandable {
		p.Expanded = !p.Expanded
		return
	}
	s := r.stacks[p.Quadrant]
	hidden := !s.unhide(p)
	if hidden {
		s.hidden = append(s.hidden, p)
	}
	r.persist(state.PanelKey(p.Quadrant.String(), p.Name), hidden)
}

// RestoreLast makes the most recently hidden panel in q visible again.
// Returns it, or nil if the minimized set is empty.
func (r *Registry) RestoreLast(q Quadrant) *Panel {
	s := r.stacks[q]
	if len(s.hidden) == 0 {
		return nil
	}
	p := s.hidden[len(s.hidden)-1]
	s.hidden = s.hidden[:len(s.hidden)-1]
	r.persist(state.PanelKey(q.String(), p.Name), false)
	return p
}

// Input builds the layout input for q.
func (r *Registry) Input(q Quadrant, width, height, gap int) LayoutInput {
	s := r.stacks[q]
	hidden := make(map[*Panel]bool, len(s.hidden))
	for _, p := range s.hidden {
		hidden[p] = true
	}
	return LayoutInput{
		Quadrant:  q,
		Panels:    slices.Clone(s.panels),
		Hidden:    hidden,
		Minimized: s.minimized,
		Width:     width,
		Height:    height,
		Gap:       gap,
	}
}

func (r *Registry) persist(key string, value bool) {
	if err := r.store.SetBool(key, value); err != nil {
		r.logger.Warn("persist flag", "key", key, "err", err)
	}
}
