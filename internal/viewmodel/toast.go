package viewmodel

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToastLevel is the severity of a toast.
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

// Toast is a transient user notification.
type Toast struct {
	ID        string     `json:"id"`
	Level     ToastLevel `json:"level"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}

const defaultToastCapacity = 20

// Toasts is a bounded FIFO of notifications; the oldest is dropped when full.
type Toasts struct {
	mu       sync.Mutex
	items    []Toast
	capacity int
	clock    Clock
}

// NewToasts creates a queue holding at most capacity toasts.
func NewToasts(capacity int, clock Clock) *Toasts {
	if capacity <= 0 {
		capacity = defaultToastCapacity
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Toasts{capacity: capacity, clock: clock}
}

// Push appends a toast and returns it.
func (t *Toasts) Push(level ToastLevel, message string) Toast {
	toast := Toast{ID: uuid.NewString(), Level: level, Message: message, CreatedAt: t.clock.Now()}

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.items) >= t.capacity {
		t.items = append(t.items[:0], t.items[1:]...)
	}
	t.items = append(t.items, toast)
	return toast
}

// Success pushes a success toast.
func (t *Toasts) Success(message string) Toast { return t.Push(ToastSuccess, message) }

// Error pushes an error toast.
func (t *Toasts) Error(message string) Toast { return t.Push(ToastError, message) }

// Peek returns the pending toasts without removing them.
func (t *Toasts) Peek() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast(nil), t.items...)
}

// Drain returns and removes the pending toasts.
func (t *Toasts) Drain() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.items
	t.items = nil
	if out == nil {
		out = []Toast{}
	}
	return out
}

// Len returns the number of pending toasts.
func (t *Toasts) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}
