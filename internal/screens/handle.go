package screens

import (
	"context"
	"net/url"

	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/model"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/viewmodel"
)

// Handle is the type-erased surface of a screen used by transports.
type Handle interface {
	Module() string
	Actions() viewmodel.Actions
	Mount(ctx context.Context) error
	Refresh(ctx context.Context) error
	SetFilter(q string)
	OpenCreate() error
	OpenEdit(ctx context.Context, id model.ID) error
	OpenView(ctx context.Context, id model.ID) error
	ConfirmDelete(id model.ID) error
	Delete(ctx context.Context) error
	SetDraft(values url.Values) error
	Submit(ctx context.Context) error
	Modal(name string) (*viewmodel.Modal, bool)
	// State returns a JSON-encodable snapshot and drains pending toasts.
	State() any
	Close()
}

type handle[T model.Entity] struct {
	*viewmodel.Screen[T]
}

var _ Handle = handle[model.Account]{}

func (h handle[T]) Modal(name string) (*viewmodel.Modal, bool) { return h.Modals().Get(name) }

func (h handle[T]) State() any { return h.Screen.State() }
