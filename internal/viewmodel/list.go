package viewmodel

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/money"
	apperrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/errors"
)

// Lister fetches a full collection snapshot.
type Lister[T any] interface {
	List(ctx context.Context, filters url.Values) ([]T, error)
}

// ListOptions configures a ListController.
type ListOptions[T any] struct {
	Module string
	Source Lister[T] // Required
	// Filters are sent with every list call.
	Filters url.Values
	// SearchFields returns the display values the text filter matches against.
	SearchFields func(T) []string
	// Totals names the money columns aggregated over the visible rows.
	Totals map[string]func(T) money.Amount
	// Timeout bounds each refresh; zero means no bound beyond the caller's context.
	Timeout  time.Duration
	Logger   *slog.Logger
	Recorder Recorder
}

// ListController owns one screen's collection snapshot, its loading and error
// state, the text filter and the derived totals.
type ListController[T any] struct {
	module   string
	source   Lister[T]
	filters  url.Values
	search   func(T) []string
	totals   map[string]func(T) money.Amount
	timeout  time.Duration
	logger   *slog.Logger
	recorder Recorder

	mu         sync.Mutex
	items      []T
	loading    bool
	err        error
	filter     string
	folded     string
	seq        uint64
	generation uint64
	cancel     context.CancelFunc
	closed     bool
}

// NewListController constructs a ListController. It does not fetch; call Refresh on mount.
func NewListController[T any](opts ListOptions[T]) *ListController[T] {
	if opts.Source == nil {
		panic("list source is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ListController[T]{
		module:   opts.Module,
		source:   opts.Source,
		filters:  opts.Filters,
		search:   opts.SearchFields,
		totals:   opts.Totals,
		timeout:  opts.Timeout,
		logger:   logger.With("component", "list", "module", opts.Module),
		recorder: recorderOrNop(opts.Recorder),
		items:    []T{},
	}
}

// Refresh re-fetches the collection. A newer Refresh cancels this one and a
// superseded response is discarded, so only the latest call settles state.
// On failure the previous items are kept and the error is recorded.
func (l *ListController[T]) Refresh(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	id := l.seq
	var reqCtx context.Context
	var cancel context.CancelFunc
	if l.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
	} else {
		reqCtx, cancel = context.WithCancel(ctx)
	}
	l.cancel = cancel
	l.loading = true
	l.mu.Unlock()
	defer cancel()

	start := time.Now()
	items, err := l.source.List(reqCtx, l.filters)
	elapsed := time.Since(start)

	l.mu.Lock()
	defer l.mu.Unlock()
	if id != l.seq {
		l.logger.Debug("discarding superseded list response", "request_id", id, "latest", l.seq)
		return nil
	}
	l.cancel = nil
	l.loading = false
	l.recorder.ListRefreshed(l.module, elapsed, err)

	if err != nil {
		l.err = err
		l.logger.Warn("list refresh failed", "error", err, "kept_items", len(l.items))
		return err
	}
	if items == nil {
		items = []T{}
	}
	l.items = items
	l.err = nil
	l.generation++
	return nil
}

// Close cancels any in-flight refresh and discards its result.
func (l *ListController[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
	l.loading = false
	l.closed = true
}

// Items returns the last fetched snapshot.
func (l *ListController[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}

// Loading reports whether the latest refresh is still pending.
func (l *ListController[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the error of the latest settled refresh, or nil.
func (l *ListController[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// ErrorMessage returns the sanitized text for Err, or "".
func (l *ListController[T]) ErrorMessage() string {
	return apperrors.UserMessage(l.Err())
}

// Generation counts successful refreshes.
func (l *ListController[T]) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

// SetFilter sets the text filter. Matching is case-insensitive; empty matches all.
func (l *ListController[T]) SetFilter(q string) {
	q = strings.TrimSpace(q)
	folded := cases.Fold().String(q)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = q
	l.folded = folded
}

// Filter returns the current text filter.
func (l *ListController[T]) Filter() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

// Visible returns the items matching the current filter.
func (l *ListController[T]) Visible() []T {
	l.mu.Lock()
	items, folded := l.items, l.folded
	l.mu.Unlock()
	return filterItems(items, folded, l.search)
}

// Find returns the snapshot item for which match is true.
func (l *ListController[T]) Find(match func(T) bool) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, it := range l.items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Sum adds pick over the visible items. Invalid or missing amounts count as zero.
func (l *ListController[T]) Sum(pick func(T) money.Amount) decimal.Decimal {
	return sumItems(l.Visible(), pick)
}

// Totals computes every configured total over the visible items.
func (l *ListController[T]) Totals() map[string]decimal.Decimal {
	visible := l.Visible()
	out := make(map[string]decimal.Decimal, len(l.totals))
	for name, pick := range l.totals {
		out[name] = sumItems(visible, pick)
	}
	return out
}

// ListSnapshot is a render-ready view of a ListController.
type ListSnapshot[T any] struct {
	Items      []T               `json:"items"`
	Count      int               `json:"count"`
	Total      int               `json:"total"`
	Loading    bool              `json:"loading"`
	Error      string            `json:"error,omitempty"`
	Filter     string            `json:"filter"`
	Generation uint64            `json:"generation"`
	Totals     map[string]string `json:"totals,omitempty"`
}

// Snapshot returns the current render state.
func (l *ListController[T]) Snapshot() ListSnapshot[T] {
	l.mu.Lock()
	items, folded := l.items, l.folded
	snap := ListSnapshot[T]{
		Total:      len(l.items),
		Loading:    l.loading,
		Error:      apperrors.UserMessage(l.err),
		Filter:     l.filter,
		Generation: l.generation,
	}
	l.mu.Unlock()

	visible := filterItems(items, folded, l.search)
	snap.Items = visible
	snap.Count = len(visible)
	if len(l.totals) > 0 {
		names := make([]string, 0, len(l.totals))
		for name := range l.totals {
			names = append(names, name)
		}
		sort.Strings(names)
		snap.Totals = make(map[string]string, len(names))
		for _, name := range names {
			snap.Totals[name] = sumItems(visible, l.totals[name]).StringFixed(2)
		}
	}
	return snap
}

func filterItems[T any](items []T, folded string, search func(T) []string) []T {
	out := make([]T, 0, len(items))
	if folded == "" || search == nil {
		return append(out, items...)
	}
	caser := cases.Fold()
	for _, it := range items {
		for _, field := range search(it) {
			if strings.Contains(caser.String(field), folded) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

func sumItems[T any](items []T, pick func(T) money.Amount) decimal.Decimal {
	if pick == nil {
		return decimal.Zero
	}
	amounts := make([]money.Amount, 0, len(items))
	for _, it := range items {
		amounts = append(amounts, pick(it))
	}
	return money.Sum(amounts...)
}
