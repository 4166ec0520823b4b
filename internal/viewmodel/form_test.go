package viewmodel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/model"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/money"
	apperrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/errors"
)

type formHarness struct {
	store  *fakeStore[model.Service]
	list   *ListController[model.Service]
	modal  *Modal
	toasts *Toasts
	clock  *FixedClock
	form   *FormController[model.Service]
}

func newFormHarness(t *testing.T, cooldown time.Duration) *formHarness {
	t.Helper()
	h := &formHarness{
		store: &fakeStore[model.Service]{
			assignID: func(s model.Service, id model.ID) model.Service { s.ID = id; return s },
		},
		modal: NewModal(ModalForm),
		clock: NewFixedClock(time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)),
	}
	h.toasts = NewToasts(10, h.clock)
	h.list = NewListController(ListOptions[model.Service]{Source: h.store})

	form, err := NewFormController(FormOptions[model.Service]{
		Module:   "Services",
		Saver:    h.store,
		Defaults: model.Service{Unit: "hour"},
		List:     h.list,
		Modal:    h.modal,
		Toasts:   h.toasts,
		Cooldown: cooldown,
		Clock:    h.clock,
	})
	require.NoError(t, err)
	h.form = form
	h.modal.OnReset(form.Reset)
	return h
}

func (h *formHarness) open(t *testing.T) {
	t.Helper()
	h.form.StartCreate()
	require.NoError(t, h.modal.Open(ModeCreate))
}

func TestFormController_DefaultsAndSetField(t *testing.T) {
	h := newFormHarness(t, time.Second)

	assert.Equal(t, "hour", h.form.Field("unit"))
	assert.Equal(t, FormCreate, h.form.Mode())

	h.form.SetField("service_name", "Audit")
	assert.Equal(t, "Audit", h.form.Draft().Get("service_name"))
}

func TestFormController_ValidateReportsFieldErrors(t *testing.T) {
	h := newFormHarness(t, time.Second)

	res := h.form.Validate()

	assert.False(t, res.Valid)
	assert.Equal(t, "Service name is required.", res.Errors["service_name"])
	assert.Equal(t, "Price is required.", res.Errors["price"])

	h.form.SetField("service_name", "Audit")
	_, stillThere := h.form.Errors()["service_name"]
	assert.False(t, stillThere)
}

func TestFormController_InvalidDraftNeverReachesSaver(t *testing.T) {
	h := newFormHarness(t, time.Second)
	h.open(t)

	err := h.form.Submit(context.Background())

	assert.True(t, apperrors.IsValidation(err))
	_, creates, _, _ := h.store.counts()
	assert.Equal(t, 0, creates)
	assert.True(t, h.modal.Visible())

	h.form.SetField("service_name", "Audit")
	h.form.SetField("price", "10")
	require.NoError(t, h.form.Submit(context.Background()))
}

func TestFormController_SubmitTwiceWithinCooldownCallsSaverOnce(t *testing.T) {
	h := newFormHarness(t, time.Second)
	h.open(t)
	h.form.SetField("service_name", "Audit")
	h.form.SetField("price", "120.00")

	require.NoError(t, h.form.Submit(context.Background()))
	h.clock.Advance(200 * time.Millisecond)
	assert.ErrorIs(t, h.form.Submit(context.Background()), ErrSubmitCooldown)

	_, creates, _, _ := h.store.counts()
	assert.Equal(t, 1, creates)

	h.clock.Advance(time.Second)
	h.form.SetField("service_name", "Audit 2")
	h.form.SetField("price", "1")
	require.NoError(t, h.form.Submit(context.Background()))
	_, creates, _, _ = h.store.counts()
	assert.Equal(t, 2, creates)
}

// blockingSaver holds Create until release is closed.
type blockingSaver struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSaver) Create(_ context.Context, p model.Service) (model.Service, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.entered <- struct{}{}
	<-b.release
	return p, nil
}

func (b *blockingSaver) Update(_ context.Context, _ model.ID, p model.Service) (model.Service, error) {
	return p, nil
}

func TestFormController_ConcurrentSubmitIsRejected(t *testing.T) {
	saver := &blockingSaver{entered: make(chan struct{}, 1), release: make(chan struct{})}
	form, err := NewFormController(FormOptions[model.Service]{Saver: saver})
	require.NoError(t, err)
	form.SetField("service_name", "Audit")
	form.SetField("price", "5")

	done := make(chan error, 1)
	go func() { done <- form.Submit(context.Background()) }()
	<-saver.entered

	assert.True(t, form.Submitting())
	assert.ErrorIs(t, form.Submit(context.Background()), ErrSubmitInFlight)

	close(saver.release)
	require.NoError(t, <-done)
	assert.False(t, form.Submitting())
	assert.Equal(t, 1, saver.calls)
}

func TestFormController_EditUsesUpdate(t *testing.T) {
	h := newFormHarness(t, 0)
	h.store.items = []model.Service{{ID: "7", Name: "Audit", Price: money.MustParse("10")}}

	require.NoError(t, h.form.StartEdit("7", h.store.items[0]))
	require.NoError(t, h.modal.Open(ModeEdit))
	assert.Equal(t, "10.00", h.form.Field("price"))

	h.form.SetField("price", "15")
	require.NoError(t, h.form.Submit(context.Background()))

	_, creates, updates, _ := h.store.counts()
	assert.Equal(t, 0, creates)
	assert.Equal(t, 1, updates)
	assert.Equal(t, "15.00", h.store.items[0].Price.String())
	assert.Equal(t, "Updated successfully.", h.toasts.Drain()[0].Message)
}

func TestFormController_DraftResetsOnlyAfterExit(t *testing.T) {
	h := newFormHarness(t, 0)
	h.open(t)
	h.form.SetField("service_name", "Audit")
	h.form.SetField("price", "9.99")
	before := h.form.Draft()

	require.NoError(t, h.form.Submit(context.Background()))

	assert.False(t, h.modal.Visible())
	assert.Equal(t, before, h.form.Draft())

	h.modal.OnExited()
	assert.Empty(t, h.form.Field("service_name"))
	assert.Equal(t, "hour", h.form.Field("unit"))
}

func TestFormController_ServerFieldErrorIsAttached(t *testing.T) {
	h := newFormHarness(t, time.Second)
	h.store.createErr = apperrors.ValidationField("sku", "SKU already exists.")
	h.open(t)
	h.form.SetField("service_name", "Audit")
	h.form.SetField("price", "1")

	err := h.form.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, "SKU already exists.", h.form.Errors()["sku"])
}
