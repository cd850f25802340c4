package auth

// Package auth contains simple hand-written test doubles for session ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"time"

	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
	"github.com/rentnest/rentnest-web/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore   = (*MemorySessionStore)(nil)
	_ ports.TokenVault     = (*MemoryTokenVault)(nil)
	_ ports.ProfileFetcher = (*StubProfileFetcher)(nil)
)

// MemorySessionStore is an in-memory SessionStore for tests.
// Optional error injection per operation; safe for concurrent use.
type MemorySessionStore struct {
	mu        sync.Mutex
	snapshots map[string]domainauth.Snapshot

	SaveErr   error
	GetErr    error
	DeleteErr error

	SaveCalls int
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{snapshots: make(map[string]domainauth.Snapshot)}
}

func (s *MemorySessionStore) Save(_ context.Context, id string, snap domainauth.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SaveCalls++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.snapshots[id] = snap
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return domainauth.Snapshot{}, s.GetErr
	}
	snap, ok := s.snapshots[id]
	if !ok {
		return domainauth.Snapshot{}, ports.ErrSessionNotFound
	}
	return snap, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.snapshots, id)
	return nil
}

// Stored returns the snapshot saved for id, if any.
func (s *MemorySessionStore) Stored(id string) (domainauth.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snapshots[id]
	return snap, ok
}

// storedToken keys the vault map by (session, kind).
type storedToken struct {
	sessionID string
	kind      domainauth.Kind
}

// MemoryTokenVault is an in-memory TokenVault for tests.
type MemoryTokenVault struct {
	mu     sync.Mutex
	tokens map[storedToken]string

	StoreErr error
	PurgeErr error

	PurgeCalls []string
}

// NewMemoryTokenVault creates an empty in-memory vault.
func NewMemoryTokenVault() *MemoryTokenVault {
	return &MemoryTokenVault{tokens: make(map[storedToken]string)}
}

func (v *MemoryTokenVault) StoreToken(_ context.Context, sessionID string, kind domainauth.Kind, token string, _ time.Time) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.StoreErr != nil {
		return v.StoreErr
	}
	v.tokens[storedToken{sessionID, kind}] = token
	return nil
}

func (v *MemoryTokenVault) Token(_ context.Context, sessionID string, kind domainauth.Kind) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tokens[storedToken{sessionID, kind}], nil
}

func (v *MemoryTokenVault) PurgeAll(_ context.Context, sessionID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.PurgeCalls = append(v.PurgeCalls, sessionID)
	if v.PurgeErr != nil {
		return v.PurgeErr
	}
	for k := range v.tokens {
		if k.sessionID == sessionID {
			delete(v.tokens, k)
		}
	}
	return nil
}

// Len reports how many tokens the vault currently holds.
func (v *MemoryTokenVault) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.tokens)
}

// StubProfileFetcher returns canned profile payloads for the refresh
// poller tests.
type StubProfileFetcher struct {
	mu sync.Mutex

	Payload map[string]any
	Err     error

	// FetchFunc, when set, overrides Payload/Err.
	FetchFunc func(ctx context.Context, kind domainauth.Kind, slug string) (map[string]any, error)

	Calls int
}

func (f *StubProfileFetcher) FetchProfile(ctx context.Context, kind domainauth.Kind, slug string) (map[string]any, error) {
	f.mu.Lock()
	f.Calls++
	fn := f.FetchFunc
	payload, err := f.Payload, f.Err
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, kind, slug)
	}
	return payload, err
}

// CallCount returns how many times FetchProfile ran.
func (f *StubProfileFetcher) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}
