// Package session holds the authenticated session for one browser: the bearer
// token issued by the backend and the profile of the signed-in user. Both are
// persisted together and cleared together.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/model"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/storage"
)

const (
	tokenKey = ":token"
	userKey  = ":user"
)

// Store is an explicit session object injected into the API client and the
// navigation guard. It is never a package-level singleton.
type Store struct {
	mu        sync.RWMutex
	kv        storage.KV
	namespace string
	token     string
	user      *model.UserProfile
}

// New binds a store to a KV namespace. Call Load to pick up persisted state.
func New(kv storage.KV, namespace string) *Store {
	return &Store{kv: kv, namespace: namespace}
}

// Anonymous returns a store with no backing storage, used for requests that
// carry no session cookie.
func Anonymous() *Store {
	return &Store{}
}

// Load reads the persisted session. A missing token means no session; a user
// record that fails to deserialize is logged and treated as absent, never as
// a startup failure.
func (s *Store) Load(ctx context.Context) {
	if s.kv == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.kv.Get(ctx, s.namespace+tokenKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("session: token read failed: %v", err)
	}
	s.token = token

	raw, err := s.kv.Get(ctx, s.namespace+userKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("session: user read failed: %v", err)
		}
		s.user = nil
		return
	}
	var user model.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Printf("session: failed to parse persisted user: %v", err)
		s.user = nil
		return
	}
	s.user = &user
}

// SetAuth overwrites the session with the given token and user and persists
// both. The token format is not validated here.
func (s *Store) SetAuth(ctx context.Context, token string, user model.UserProfile) error {
	if s.kv == nil {
		return errors.New("session: no backing storage")
	}
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	if err := s.kv.Set(ctx, s.namespace+tokenKey, token); err != nil {
		return err
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.namespace+userKey, string(raw))
}

// ClearAuth drops both session fields in memory and in storage.
func (s *Store) ClearAuth(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if s.kv == nil {
		return nil
	}
	if err := s.kv.Delete(ctx, s.namespace+tokenKey); err != nil {
		return err
	}
	return s.kv.Delete(ctx, s.namespace+userKey)
}

// Token returns the current bearer token, empty when unauthenticated. It is
// read fresh by the API client on every request.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current profile, nil when absent.
func (s *Store) User() *model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

// FullName returns "First Last", trimmed, or "" without a user.
func (s *Store) FullName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return strings.TrimSpace(s.user.FirstName + " " + s.user.LastName)
}
