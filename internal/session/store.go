// Package session owns "who is logged in". The Store is the single
// source of truth for the authenticated identity, replicated to durable
// storage so a restart does not force a re-login.
package session

import (
	"encoding/json"
	"sync"

	"jobportal_backend/internal/models"
)

// User is the identity half of a session, as returned by the login and
// registration endpoints.
type User struct {
	ID        string          `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
}

// Session pairs the bearer token with its user. The two are present
// together or absent together; there is never one without the other.
type Session struct {
	Token string
	User  *User
}

// Anonymous reports whether nobody is logged in.
func (s Session) Anonymous() bool {
	return s.Token == ""
}

// Store holds the session in memory and mirrors it to Storage. It is
// constructor-injected into every consumer; nothing else reads the
// durable entries directly.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	current Session
	ready   bool
	subs    map[int]func(Session)
	nextSub int
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage, subs: map[int]func(Session){}}
}

// Restore loads the persisted session, if any. Route decisions must
// wait for Restore to finish; until then Ready reports false and the
// gate suspends rather than redirecting an authenticated user.
func (s *Store) Restore() error {
	token, tokenOK, err := s.storage.Get(tokenKey)
	if err != nil {
		return err
	}
	rawUser, userOK, err := s.storage.Get(userKey)
	if err != nil {
		return err
	}

	var sess Session
	if tokenOK && userOK {
		var u User
		if err := json.Unmarshal([]byte(rawUser), &u); err == nil {
			sess = Session{Token: token, User: &u}
		}
	}
	if sess.Anonymous() && (tokenOK || userOK) {
		// Half a pair on disk violates the invariant; drop it.
		if err := s.storage.Clear(tokenKey, userKey); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.current = sess
	s.ready = true
	s.mu.Unlock()
	s.notify(sess)
	return nil
}

// Login stores the session in memory and durable storage.
func (s *Store) Login(token string, user *User) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.SetAll(map[string]string{
		tokenKey: token,
		userKey:  string(rawUser),
	}); err != nil {
		return err
	}

	sess := Session{Token: token, User: user}
	s.mu.Lock()
	s.current = sess
	s.ready = true
	s.mu.Unlock()
	s.notify(sess)
	return nil
}

// Logout clears memory and durable storage. Idempotent: logging out of
// an anonymous session is a no-op that still succeeds.
func (s *Store) Logout() error {
	if err := s.storage.Clear(tokenKey, userKey); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()
	s.notify(Session{})
	return nil
}

// Current returns the in-memory session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Ready reports whether Restore has completed (or a login established
// the session first).
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Token implements the resource client's token source.
func (s *Store) Token() string {
	return s.Current().Token
}

// Subscribe registers fn to run after every session change and returns
// an unsubscribe function.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(sess Session) {
	s.mu.RLock()
	fns := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(sess)
	}
}
