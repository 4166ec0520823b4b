package viewmodel

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/model"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/money"
	apperrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/errors"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/validation"
)

// Modal names every screen carries.
const (
	ModalForm   = "form"
	ModalViewer = "view"
	ModalDelete = "delete"
)

// Store is the full CRUD surface a screen needs.
type Store[T any] interface {
	Lister[T]
	Saver[T]
	Get(ctx context.Context, id model.ID) (T, error)
	Delete(ctx context.Context, id model.ID) error
}

// ScreenOptions configures a Screen.
type ScreenOptions[T model.Entity] struct {
	Module       string
	Capabilities domainauth.CapabilitySet
	Store        Store[T] // Required
	SearchFields func(T) []string
	Totals       map[string]func(T) money.Amount
	Defaults     T
	Binder       *validation.Binder
	Timing       ScreenTiming
	Clock        Clock
	Logger       *slog.Logger
	Recorder     Recorder
}

// ScreenTiming groups the screen's time and size limits.
type ScreenTiming struct {
	SubmitCooldown time.Duration
	RefreshTimeout time.Duration
	ToastCapacity  int
}

// Actions is the set of actions a screen renders.
type Actions struct {
	Create bool `json:"create"`
	View   bool `json:"view"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// Screen binds one module's list, modals, form and toasts under the
// session's capability set. Every action checks its capability first; a
// denied action shows a toast and never reaches the store.
type Screen[T model.Entity] struct {
	module   string
	caps     domainauth.CapabilitySet
	store    Store[T]
	logger   *slog.Logger
	recorder Recorder

	list   *ListController[T]
	modals *ModalSet
	form   *FormController[T]
	toasts *Toasts

	mu            sync.Mutex
	selected      *T
	pendingDelete model.ID
	deleting      bool
}

// NewScreen wires a screen. Nothing is fetched until Mount.
func NewScreen[T model.Entity](opts ScreenOptions[T]) (*Screen[T], error) {
	if opts.Store == nil {
		panic("screen store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := recorderOrNop(opts.Recorder)
	toasts := NewToasts(opts.Timing.ToastCapacity, opts.Clock)
	modals := NewModalSet(ModalForm, ModalViewer, ModalDelete)

	list := NewListController(ListOptions[T]{
		Module:       opts.Module,
		Source:       opts.Store,
		SearchFields: opts.SearchFields,
		Totals:       opts.Totals,
		Timeout:      opts.Timing.RefreshTimeout,
		Logger:       logger,
		Recorder:     recorder,
	})

	form, err := NewFormController(FormOptions[T]{
		Module:   opts.Module,
		Saver:    opts.Store,
		Binder:   opts.Binder,
		Defaults: opts.Defaults,
		List:     list,
		Modal:    modals.MustGet(ModalForm),
		Toasts:   toasts,
		Cooldown: opts.Timing.SubmitCooldown,
		Clock:    opts.Clock,
		Logger:   logger,
		Recorder: recorder,
	})
	if err != nil {
		return nil, err
	}

	s := &Screen[T]{
		module:   opts.Module,
		caps:     opts.Capabilities,
		store:    opts.Store,
		logger:   logger.With("component", "screen", "module", opts.Module),
		recorder: recorder,
		list:     list,
		modals:   modals,
		form:     form,
		toasts:   toasts,
	}
	modals.MustGet(ModalForm).OnReset(form.Reset)
	modals.MustGet(ModalViewer).OnReset(s.clearSelection)
	modals.MustGet(ModalDelete).OnReset(s.clearPendingDelete)
	return s, nil
}

// Module returns the permission module the screen is scoped to.
func (s *Screen[T]) Module() string { return s.module }

// Capabilities returns the resolved capability set.
func (s *Screen[T]) Capabilities() domainauth.CapabilitySet { return s.caps }

// List returns the list controller.
func (s *Screen[T]) List() *ListController[T] { return s.list }

// Form returns the form controller.
func (s *Screen[T]) Form() *FormController[T] { return s.form }

// Modals returns the screen's modals.
func (s *Screen[T]) Modals() *ModalSet { return s.modals }

// Toasts returns the toast queue.
func (s *Screen[T]) Toasts() *Toasts { return s.toasts }

// Actions returns the actions to render.
func (s *Screen[T]) Actions() Actions {
	return Actions{
		Create: s.caps.CanCreate,
		View:   s.caps.CanView,
		Edit:   s.caps.CanUpdate,
		Delete: s.caps.CanDelete,
	}
}

func (s *Screen[T]) authorize(action domainauth.Action) error {
	if s.caps.Allows(action) {
		return nil
	}
	s.recorder.PermissionDenied(s.module, action)
	s.logger.Info("action denied", "action", string(action))
	err := apperrors.Permission(apperrors.MsgNoPermission)
	s.toasts.Error(err.Message)
	return err
}

// Mount loads the list. It requires view permission.
func (s *Screen[T]) Mount(ctx context.Context) error {
	if err := s.authorize(domainauth.ActionView); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Refresh re-fetches the list. Failures surface as an error toast.
func (s *Screen[T]) Refresh(ctx context.Context) error {
	if err := s.authorize(domainauth.ActionView); err != nil {
		return err
	}
	err := s.list.Refresh(ctx)
	if err != nil {
		s.toasts.Error(apperrors.UserMessage(err))
	}
	return err
}

// SetFilter sets the list's text filter.
func (s *Screen[T]) SetFilter(q string) { s.list.SetFilter(q) }

// OpenCreate opens the form modal on a fresh draft.
func (s *Screen[T]) OpenCreate() error {
	if err := s.authorize(domainauth.ActionCreate); err != nil {
		return err
	}
	m := s.modals.MustGet(ModalForm)
	if m.State() != ModalClosed {
		return ErrInvalidTransition
	}
	s.form.StartCreate()
	return m.Open(ModeCreate)
}

// OpenEdit loads record id into the form and opens it.
func (s *Screen[T]) OpenEdit(ctx context.Context, id model.ID) error {
	if err := s.authorize(domainauth.ActionUpdate); err != nil {
		return err
	}
	m := s.modals.MustGet(ModalForm)
	if m.State() != ModalClosed {
		return ErrInvalidTransition
	}
	record, err := s.lookup(ctx, id)
	if err != nil {
		s.toasts.Error(apperrors.UserMessage(err))
		return err
	}
	if err := s.form.StartEdit(id, record); err != nil {
		return err
	}
	return m.Open(ModeEdit)
}

// OpenView selects record id and opens the read-only modal.
func (s *Screen[T]) OpenView(ctx context.Context, id model.ID) error {
	if err := s.authorize(domainauth.ActionView); err != nil {
		return err
	}
	m := s.modals.MustGet(ModalViewer)
	if m.State() != ModalClosed {
		return ErrInvalidTransition
	}
	record, err := s.lookup(ctx, id)
	if err != nil {
		s.toasts.Error(apperrors.UserMessage(err))
		return err
	}
	s.mu.Lock()
	s.selected = &record
	s.mu.Unlock()
	return m.Open(ModeView)
}

// ConfirmDelete opens the delete confirmation for id.
func (s *Screen[T]) ConfirmDelete(id model.ID) error {
	if err := s.authorize(domainauth.ActionDelete); err != nil {
		return err
	}
	if id.IsZero() {
		return ErrNothingSelected
	}
	m := s.modals.MustGet(ModalDelete)
	if m.State() != ModalClosed {
		return ErrInvalidTransition
	}
	s.mu.Lock()
	s.pendingDelete = id
	s.mu.Unlock()
	return m.Open(ModeDelete)
}

// Delete removes the record awaiting confirmation. On success the list is
// refreshed and then the confirmation closes; on failure it stays open.
// It only runs while the confirmation is visible.
func (s *Screen[T]) Delete(ctx context.Context) error {
	if err := s.authorize(domainauth.ActionDelete); err != nil {
		return err
	}
	if !s.modals.MustGet(ModalDelete).Visible() {
		return ErrInvalidTransition
	}
	s.mu.Lock()
	if s.deleting {
		s.mu.Unlock()
		return ErrDeleteInFlight
	}
	id := s.pendingDelete
	if id.IsZero() {
		s.mu.Unlock()
		return ErrNothingSelected
	}
	s.deleting = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.deleting = false
		s.mu.Unlock()
	}()

	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("delete failed", "id", id.String(), "error", err)
		s.toasts.Error(apperrors.UserMessage(err))
		return err
	}
	s.toasts.Success("Deleted successfully.")
	if err := s.list.Refresh(ctx); err != nil {
		s.logger.Warn("refresh after delete failed", "error", err)
	}
	s.modals.MustGet(ModalDelete).RequestClose()
	return nil
}

// SetDraft merges field values into the draft while the form is visible.
// Once closing starts the draft is frozen until the modal exits.
func (s *Screen[T]) SetDraft(values url.Values) error {
	if !s.modals.MustGet(ModalForm).Visible() {
		return ErrInvalidTransition
	}
	s.form.SetFields(values)
	return nil
}

// Submit saves the form draft. The form's mode decides which capability is needed.
func (s *Screen[T]) Submit(ctx context.Context) error {
	action := domainauth.ActionCreate
	if s.form.Mode() == FormEdit {
		action = domainauth.ActionUpdate
	}
	if err := s.authorize(action); err != nil {
		return err
	}
	if !s.modals.MustGet(ModalForm).Visible() {
		return ErrInvalidTransition
	}
	return s.form.Submit(ctx)
}

// Selected returns the record shown in the view modal.
func (s *Screen[T]) Selected() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		var zero T
		return zero, false
	}
	return *s.selected, true
}

// PendingDelete returns the id awaiting delete confirmation.
func (s *Screen[T]) PendingDelete() model.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingDelete
}

// Close cancels in-flight work. The screen is unusable afterwards.
func (s *Screen[T]) Close() { s.list.Close() }

func (s *Screen[T]) lookup(ctx context.Context, id model.ID) (T, error) {
	if id.IsZero() {
		var zero T
		return zero, ErrNothingSelected
	}
	if record, ok := s.list.Find(func(it T) bool { return it.EntityID() == id }); ok {
		return record, nil
	}
	return s.store.Get(ctx, id)
}

func (s *Screen[T]) clearSelection() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

func (s *Screen[T]) clearPendingDelete() {
	s.mu.Lock()
	s.pendingDelete = ""
	s.mu.Unlock()
}

// ScreenState is the render state of a screen.
type ScreenState[T any] struct {
	Module       string                   `json:"module"`
	Capabilities domainauth.CapabilitySet `json:"capabilities"`
	Actions      Actions                  `json:"actions"`
	List         ListSnapshot[T]          `json:"list"`
	Modals       []ModalView              `json:"modals"`
	Form         FormState                `json:"form"`
	Selected     *T                       `json:"selected,omitempty"`
	PendingID    model.ID                 `json:"pending_delete_id,omitempty"`
	Toasts       []Toast                  `json:"toasts"`
}

// State returns the render state. Toasts are drained.
func (s *Screen[T]) State() ScreenState[T] {
	st := ScreenState[T]{
		Module:       s.module,
		Capabilities: s.caps,
		Actions:      s.Actions(),
		List:         s.list.Snapshot(),
		Modals:       s.modals.Views(),
		Form:         s.form.State(),
		Toasts:       s.toasts.Drain(),
	}
	s.mu.Lock()
	if s.selected != nil {
		sel := *s.selected
		st.Selected = &sel
	}
	st.PendingID = s.pendingDelete
	s.mu.Unlock()
	return st
}
