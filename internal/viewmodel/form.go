package viewmodel

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/model"
	apperrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/errors"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/validation"
)

// FormMode selects whether Submit creates or updates.
type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// Saver persists a record.
type Saver[T any] interface {
	Create(ctx context.Context, payload T) (T, error)
	Update(ctx context.Context, id model.ID, payload T) (T, error)
}

// Refresher re-fetches the list a form writes into.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// CloseRequester hides the modal hosting a form.
type CloseRequester interface {
	RequestClose() bool
}

// FormOptions configures a FormController.
type FormOptions[T any] struct {
	Module string
	Saver  Saver[T] // Required
	Binder *validation.Binder
	// Defaults is the draft a fresh create starts from.
	Defaults T
	List     Refresher
	Modal    CloseRequester
	Toasts   *Toasts
	// Cooldown is the minimum interval between submit starts.
	Cooldown time.Duration
	Clock    Clock
	Logger   *slog.Logger
	Recorder Recorder
}

// ValidationResult is the outcome of validating the draft.
type ValidationResult[T any] struct {
	Valid  bool
	Errors validation.FieldErrors
	Record T
}

// FormState is the render state of a form.
type FormState struct {
	Mode       FormMode               `json:"mode"`
	RecordID   model.ID               `json:"record_id,omitempty"`
	Draft      url.Values             `json:"draft"`
	Errors     validation.FieldErrors `json:"errors,omitempty"`
	Submitting bool                   `json:"submitting"`
}

// FormController owns a draft record and submits it at most once per cooldown.
type FormController[T any] struct {
	module   string
	saver    Saver[T]
	binder   *validation.Binder
	list     Refresher
	modal    CloseRequester
	toasts   *Toasts
	cooldown time.Duration
	clock    Clock
	logger   *slog.Logger
	recorder Recorder
	defaults url.Values

	mu          sync.Mutex
	mode        FormMode
	recordID    model.ID
	draft       url.Values
	errors      validation.FieldErrors
	submitting  bool
	lastStarted time.Time
}

// NewFormController constructs a FormController with the draft at defaults.
func NewFormController[T any](opts FormOptions[T]) (*FormController[T], error) {
	if opts.Saver == nil {
		panic("form saver is required")
	}
	binder := opts.Binder
	if binder == nil {
		binder = validation.NewBinder()
	}
	defaults, err := binder.Encode(opts.Defaults)
	if err != nil {
		return nil, err
	}
	clock := opts.Clock
	if clock == nil {
		clock = RealClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	toasts := opts.Toasts
	if toasts == nil {
		toasts = NewToasts(0, clock)
	}

	return &FormController[T]{
		module:   opts.Module,
		saver:    opts.Saver,
		binder:   binder,
		list:     opts.List,
		modal:    opts.Modal,
		toasts:   toasts,
		cooldown: opts.Cooldown,
		clock:    clock,
		logger:   logger.With("component", "form", "module", opts.Module),
		recorder: recorderOrNop(opts.Recorder),
		defaults: defaults,
		mode:     FormCreate,
		draft:    cloneValues(defaults),
	}, nil
}

// SetField updates one draft field and clears its error.
func (f *FormController[T]) SetField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Set(name, value)
	delete(f.errors, name)
}

// SetFields merges values into the draft.
func (f *FormController[T]) SetFields(values url.Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, vs := range values {
		f.draft[k] = append([]string(nil), vs...)
		delete(f.errors, k)
	}
}

// Field returns a draft value.
func (f *FormController[T]) Field(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Get(name)
}

// Draft returns a copy of the draft.
func (f *FormController[T]) Draft() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneValues(f.draft)
}

// Mode returns whether the next submit creates or updates.
func (f *FormController[T]) Mode() FormMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// StartCreate prepares a fresh create draft.
func (f *FormController[T]) StartCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = FormCreate
	f.recordID = ""
	f.draft = cloneValues(f.defaults)
	f.errors = nil
}

// StartEdit loads record into the draft for an update of id.
func (f *FormController[T]) StartEdit(id model.ID, record T) error {
	values, err := f.binder.Encode(record)
	if err != nil {
		return err
	}
	if values == nil {
		values = url.Values{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = FormEdit
	f.recordID = id
	f.draft = values
	f.errors = nil
	return nil
}

// Reset returns the draft to defaults. Hosts run it when the modal exit completes.
func (f *FormController[T]) Reset() { f.StartCreate() }

// Validate binds and checks the draft, storing the field errors.
func (f *FormController[T]) Validate() ValidationResult[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *FormController[T]) validateLocked() ValidationResult[T] {
	var record T
	errs := f.binder.Decode(&record, f.draft)
	if len(errs) == 0 {
		errs = f.binder.Validate(record)
	}
	f.errors = errs
	return ValidationResult[T]{Valid: len(errs) == 0, Errors: errs, Record: record}
}

// Submit validates the draft and creates or updates the record. While a
// submit runs, or within the cooldown after one started, further calls return
// ErrSubmitInFlight or ErrSubmitCooldown without reaching the saver.
//
// On success the list is refreshed and then the modal is asked to close. On
// failure an error toast is shown, the draft is left intact and the cooldown
// is cleared so the user can retry at once.
func (f *FormController[T]) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	now := f.clock.Now()
	if !f.lastStarted.IsZero() && now.Sub(f.lastStarted) < f.cooldown {
		f.mu.Unlock()
		return ErrSubmitCooldown
	}
	result := f.validateLocked()
	if !result.Valid {
		f.mu.Unlock()
		return apperrors.Validation(apperrors.MsgFixBelow)
	}
	f.submitting = true
	f.lastStarted = now
	mode, id := f.mode, f.recordID
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	start := time.Now()
	var err error
	if mode == FormEdit {
		_, err = f.saver.Update(ctx, id, result.Record)
	} else {
		_, err = f.saver.Create(ctx, result.Record)
	}
	f.recorder.FormSubmitted(f.module, mode, time.Since(start), err)

	if err != nil {
		f.fail(err)
		return err
	}

	f.toasts.Success(successMessage(mode))
	if f.list != nil {
		if rerr := f.list.Refresh(ctx); rerr != nil {
			f.logger.Warn("refresh after submit failed", "error", rerr)
		}
	}
	if f.modal != nil {
		f.modal.RequestClose()
	}
	return nil
}

func (f *FormController[T]) fail(err error) {
	f.mu.Lock()
	f.lastStarted = time.Time{}
	if field := apperrors.GetField(err); field != "" {
		if f.errors == nil {
			f.errors = validation.FieldErrors{}
		}
		f.errors[field] = apperrors.UserMessage(err)
	}
	f.mu.Unlock()

	f.logger.Warn("submit failed", "error", err, "code", string(apperrors.GetCode(err)))
	f.toasts.Error(apperrors.UserMessage(err))
}

// Errors returns the field errors of the last validation.
func (f *FormController[T]) Errors() validation.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(validation.FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Submitting reports whether a submit is in flight.
func (f *FormController[T]) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// State returns the render state.
func (f *FormController[T]) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := FormState{
		Mode:       f.mode,
		RecordID:   f.recordID,
		Draft:      cloneValues(f.draft),
		Submitting: f.submitting,
	}
	if len(f.errors) > 0 {
		st.Errors = make(validation.FieldErrors, len(f.errors))
		for k, v := range f.errors {
			st.Errors[k] = v
		}
	}
	return st
}

func successMessage(mode FormMode) string {
	if mode == FormEdit {
		return "Updated successfully."
	}
	return "Created successfully."
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
