package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"Storefront/pkg/kit"
)

const sessionCookie = "session"

type ctxKey string

const userKey ctxKey = "user"

// Sessions is the server-side session store: opaque uuid cookie values
// mapped to user ids with a TTL. Expired entries are pruned lazily as they
// are looked up.
type Sessions struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]sessionEntry
}

type sessionEntry struct {
	userID    int
	expiresAt time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{ttl: ttl, m: make(map[string]sessionEntry)}
}

// Start creates a session for userID and sets the cookie on w.
func (s *Sessions) Start(w http.ResponseWriter, userID int) {
	id := uuid.NewString()

	s.mu.Lock()
	s.m[id] = sessionEntry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Destroy removes the request's session, if any, and expires the cookie.
func (s *Sessions) Destroy(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		delete(s.m, c.Value)
		s.mu.Unlock()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID resolves the request's session cookie to a user id.
func (s *Sessions) UserID(r *http.Request) (int, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[c.Value]
	if !ok {
		return 0, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.m, c.Value)
		return 0, false
	}
	return e.userID, true
}

// Require is the authentication gate: requests without a live session get
// 401 and never reach the handler.
func (s *Sessions) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := s.UserID(r)
		if !ok {
			kit.WriteError(w, r, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) (int, bool) {
	uid, ok := ctx.Value(userKey).(int)
	return uid, ok
}
