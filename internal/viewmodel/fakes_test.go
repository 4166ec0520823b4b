package viewmodel

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/model"
	apperrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/errors"
)

// fakeStore is an in-memory Store with call counters and injectable failures.
type fakeStore[T model.Entity] struct {
	mu        sync.Mutex
	items     []T
	nextID    int
	assignID  func(T, model.ID) T
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	// block, when set, is waited on inside List.
	block chan struct{}

	lists, creates, updates, deletes, gets int
}

func (s *fakeStore[T]) List(ctx context.Context, _ url.Values) ([]T, error) {
	s.mu.Lock()
	s.lists++
	block := s.block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]T(nil), s.items...), nil
}

func (s *fakeStore[T]) Get(_ context.Context, id model.ID) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	for _, it := range s.items {
		if it.EntityID() == id {
			return it, nil
		}
	}
	var zero T
	return zero, apperrors.NotFound(apperrors.MsgNotFound)
}

func (s *fakeStore[T]) Create(_ context.Context, payload T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.createErr != nil {
		return payload, s.createErr
	}
	s.nextID++
	if s.assignID != nil {
		payload = s.assignID(payload, model.ID(strconv.Itoa(s.nextID)))
	}
	s.items = append(s.items, payload)
	return payload, nil
}

func (s *fakeStore[T]) Update(_ context.Context, id model.ID, payload T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if s.updateErr != nil {
		return payload, s.updateErr
	}
	for i, it := range s.items {
		if it.EntityID() == id {
			if s.assignID != nil {
				payload = s.assignID(payload, id)
			}
			s.items[i] = payload
		}
	}
	return payload, nil
}

func (s *fakeStore[T]) Delete(_ context.Context, id model.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	out := s.items[:0]
	for _, it := range s.items {
		if it.EntityID() != id {
			out = append(out, it)
		}
	}
	s.items = out
	return nil
}

func (s *fakeStore[T]) counts() (lists, creates, updates, deletes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists, s.creates, s.updates, s.deletes
}

func newAccountStore(items ...model.Account) *fakeStore[model.Account] {
	return &fakeStore[model.Account]{
		items:    items,
		nextID:   100,
		assignID: func(a model.Account, id model.ID) model.Account { a.ID = id; return a },
	}
}

func accountSearch(a model.Account) []string { return []string{a.Name, a.Code} }
