package viewmodel

import (
	"fmt"
	"sort"
	"sync"
)

// ModalState is the lifecycle position of a modal.
type ModalState int

const (
	// ModalClosed: not shown, draft at defaults.
	ModalClosed ModalState = iota
	// ModalVisible: shown and interactive.
	ModalVisible
	// ModalClosing: hidden, exit transition running, draft still intact.
	ModalClosing
)

func (s ModalState) String() string {
	switch s {
	case ModalClosed:
		return "closed"
	case ModalVisible:
		return "visible"
	case ModalClosing:
		return "closing"
	default:
		return fmt.Sprintf("ModalState(%d)", int(s))
	}
}

// ModalMode is what the modal was opened for.
type ModalMode string

const (
	ModeCreate ModalMode = "create"
	ModeEdit   ModalMode = "edit"
	ModeView   ModalMode = "view"
	ModeDelete ModalMode = "delete"
)

// Modal drives one dialog through Closed -> Visible -> Closing -> Closed.
// RemountKey is bumped on every open and on the first close request, so a
// renderer keyed on it gets a fresh widget instance each time.
type Modal struct {
	name string

	mu         sync.Mutex
	state      ModalState
	mode       ModalMode
	remountKey uint64
	resets     []func()
}

// NewModal creates a closed modal.
func NewModal(name string) *Modal {
	return &Modal{name: name}
}

// Name returns the modal's name within its screen.
func (m *Modal) Name() string { return m.name }

// OnReset registers fn to run when the exit transition completes.
func (m *Modal) OnReset(fn func()) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, fn)
}

// Open shows the modal in mode. It is only valid from Closed.
func (m *Modal) Open(mode ModalMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ModalClosed {
		return fmt.Errorf("%w: open %s modal while %s", ErrInvalidTransition, m.name, m.state)
	}
	m.remountKey++
	m.mode = mode
	m.state = ModalVisible
	return nil
}

// RequestClose hides the modal. The Closing state guards the transition, so
// repeated calls before OnExited are no-ops; it reports whether this call performed the transition.
func (m *Modal) RequestClose() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ModalVisible {
		return false
	}
	m.remountKey++
	m.state = ModalClosing
	return true
}

// OnExited completes the exit transition: reset hooks run, then the modal is
// Closed. It reports whether a transition happened.
func (m *Modal) OnExited() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ModalClosing {
		return false
	}
	for _, fn := range m.resets {
		fn()
	}
	m.mode = ""
	m.state = ModalClosed
	return true
}

// State returns the lifecycle state.
func (m *Modal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Visible reports whether the modal is shown.
func (m *Modal) Visible() bool { return m.State() == ModalVisible }

// Mode returns the mode of the current open, or "" when closed.
func (m *Modal) Mode() ModalMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// RemountKey returns the current remount key.
func (m *Modal) RemountKey() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remountKey
}

// ModalView is the render state of a modal.
type ModalView struct {
	Name       string    `json:"name"`
	Visible    bool      `json:"visible"`
	State      string    `json:"state"`
	Mode       ModalMode `json:"mode,omitempty"`
	RemountKey uint64    `json:"remount_key"`
}

// View returns the render state.
func (m *Modal) View() ModalView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ModalView{
		Name:       m.name,
		Visible:    m.state == ModalVisible,
		State:      m.state.String(),
		Mode:       m.mode,
		RemountKey: m.remountKey,
	}
}

// ModalSet holds a screen's independent modals by name.
type ModalSet struct {
	modals map[string]*Modal
}

// NewModalSet creates one closed modal per name.
func NewModalSet(names ...string) *ModalSet {
	set := &ModalSet{modals: make(map[string]*Modal, len(names))}
	for _, n := range names {
		set.modals[n] = NewModal(n)
	}
	return set
}

// Get returns the named modal.
func (s *ModalSet) Get(name string) (*Modal, bool) {
	m, ok := s.modals[name]
	return m, ok
}

// MustGet returns the named modal or panics.
func (s *ModalSet) MustGet(name string) *Modal {
	m, ok := s.modals[name]
	if !ok {
		panic("unknown modal " + name)
	}
	return m
}

// Views returns every modal's render state, sorted by name.
func (s *ModalSet) Views() []ModalView {
	names := make([]string, 0, len(s.modals))
	for n := range s.modals {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]ModalView, 0, len(names))
	for _, n := range names {
		out = append(out, s.modals[n].View())
	}
	return out
}
