// Package redis provides Redis-backed adapters for the console.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// Hash fields mirror the keys the login flow writes.
const (
	fieldAuthToken   = "authToken"
	fieldCompanyID   = "CompanyId"
	fieldRole        = "role"
	fieldPermissions = "userPermissions"
)

// SessionStore keeps each session as a Redis hash under prefix+id.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore creates a Redis session store using the default "session:" prefix.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, "session:")
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	if prefix == "" {
		prefix = "session:"
	}
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session, ttl time.Duration) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	key := s.prefix + sess.ID
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		p.HSet(ctx, key,
			fieldAuthToken, sess.AuthToken,
			fieldCompanyID, sess.CompanyID,
			fieldRole, string(sess.Role),
			fieldPermissions, sess.UserPermissions,
		)
		if ttl > 0 {
			p.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	fields, err := s.client.HGetAll(ctx, s.prefix+id).Result()
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("redis get session: %w", err)
	}
	if len(fields) == 0 {
		return domainauth.Session{}, ErrNotFound
	}

	return domainauth.Session{
		ID:              id,
		AuthToken:       fields[fieldAuthToken],
		CompanyID:       fields[fieldCompanyID],
		Role:            domainauth.Role(fields[fieldRole]),
		UserPermissions: fields[fieldPermissions],
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

// ErrNotFound is returned when a session is not found.
var ErrNotFound = ports.ErrSessionNotFound
