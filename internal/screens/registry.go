package screens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	apperrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/errors"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/viewmodel"
)

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	Deps        Deps         // Required
	Definitions []Definition // Defaults to Catalog()
	Logger      *slog.Logger
}

type entry struct {
	handle   Handle
	lastUsed time.Time
}

// Registry keeps the screens opened by each session. Screens are built on
// first use and mounted once; later opens return the live screen.
type Registry struct {
	deps   Deps
	defs   map[string]Definition
	order  []string
	clock  viewmodel.Clock
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]map[string]*entry
}

// NewRegistry creates a new Registry. It panics when the backend or
// resolver is missing and returns an error for malformed definitions.
func NewRegistry(opts RegistryOptions) (*Registry, error) {
	if opts.Deps.Backend == nil {
		panic("screen registry backend is required")
	}
	if opts.Deps.Resolver == nil {
		panic("screen registry permission resolver is required")
	}
	defs := opts.Definitions
	if defs == nil {
		defs = Catalog()
	}
	if err := Validate(defs); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := opts.Deps.Clock
	if clock == nil {
		clock = viewmodel.RealClock{}
	}

	r := &Registry{
		deps:     opts.Deps,
		defs:     make(map[string]Definition, len(defs)),
		order:    make([]string, 0, len(defs)),
		clock:    clock,
		logger:   logger.With("component", "screen_registry"),
		sessions: make(map[string]map[string]*entry),
	}
	for _, d := range defs {
		r.defs[d.Slug] = d
		r.order = append(r.order, d.Slug)
	}
	return r, nil
}

// Definitions returns the registered screens in catalog order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.defs[slug])
	}
	return out
}

// Definition looks up a screen by slug.
func (r *Registry) Definition(slug string) (Definition, bool) {
	d, ok := r.defs[slug]
	return d, ok
}

// Open returns the session's screen for slug, building and mounting it on
// first use. A screen the session may not view is never kept. A screen whose
// first load failed for any other reason is kept so the caller can retry.
func (r *Registry) Open(ctx context.Context, sess domainauth.Session, slug string) (Handle, error) {
	if sess.ID == "" {
		return nil, apperrors.Auth(apperrors.MsgSessionExpired)
	}
	def, ok := r.defs[slug]
	if !ok {
		return nil, apperrors.NotFoundf("unknown screen %q", slug)
	}

	if h, ok := r.touch(sess.ID, slug); ok {
		return h, nil
	}

	h, err := def.Build(r.deps, sess)
	if err != nil {
		return nil, err
	}
	mountErr := h.Mount(ctx)
	if apperrors.IsPermission(mountErr) || apperrors.IsAuth(mountErr) {
		h.Close()
		return nil, mountErr
	}

	kept, raced := r.store(sess.ID, slug, h)
	if raced {
		h.Close()
		return kept, nil
	}
	if mountErr != nil {
		r.logger.Warn("screen mounted with errors",
			"module", def.Module,
			"error", mountErr)
	}
	return kept, nil
}

// Lookup returns an already open screen without building one.
func (r *Registry) Lookup(sessionID, slug string) (Handle, bool) {
	return r.touch(sessionID, slug)
}

func (r *Registry) touch(sessionID, slug string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sessionID][slug]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.clock.Now()
	return e.handle, true
}

// store keeps h unless another open stored a screen first, in which case
// that screen is returned with raced set.
func (r *Registry) store(sessionID, slug string, h Handle) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	open := r.sessions[sessionID]
	if open == nil {
		open = make(map[string]*entry)
		r.sessions[sessionID] = open
	}
	if existing, ok := open[slug]; ok {
		existing.lastUsed = r.clock.Now()
		return existing.handle, true
	}
	open[slug] = &entry{handle: h, lastUsed: r.clock.Now()}
	return h, false
}

// Drop closes and forgets every screen of a session.
func (r *Registry) Drop(sessionID string) int {
	r.mu.Lock()
	open := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	for _, e := range open {
		e.handle.Close()
	}
	return len(open)
}

// OpenSlugs lists the slugs a session has open, sorted.
func (r *Registry) OpenSlugs(sessionID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sessions[sessionID]))
	for slug := range r.sessions[sessionID] {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

// Sweep closes screens unused for longer than idle and returns how many.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.clock.Now().Add(-idle)
	var stale []Handle

	r.mu.Lock()
	for sid, open := range r.sessions {
		for slug, e := range open {
			if e.lastUsed.Before(cutoff) {
				stale = append(stale, e.handle)
				delete(open, slug)
			}
		}
		if len(open) == 0 {
			delete(r.sessions, sid)
		}
	}
	r.mu.Unlock()

	for _, h := range stale {
		h.Close()
	}
	return len(stale)
}

// RunSweeper sweeps idle screens every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, idle time.Duration) error {
	if interval <= 0 || idle <= 0 {
		return fmt.Errorf("invalid sweep settings: interval=%v idle=%v", interval, idle)
	}
	r.logger.InfoContext(ctx, "starting screen sweeper", "interval", interval, "idle", idle)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				r.logger.InfoContext(ctx, "screen sweeper stopped")
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				r.logger.DebugContext(ctx, "swept idle screens", "count", n)
			}
		}
	}
}

// Close closes every open screen.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]map[string]*entry)
	r.mu.Unlock()

	for _, open := range sessions {
		for _, e := range open {
			e.handle.Close()
		}
	}
}
