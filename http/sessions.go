package http

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"printpredict/form"
)

const sessionCookie = "pp_session"

type sessionEntry struct {
	mu      sync.Mutex
	session *form.Session
}

// SessionStore keeps the most recently used form sessions. The least recently
// used session is dropped when the store is full; its user starts over with
// default values.
type SessionStore struct {
	mu      sync.Mutex
	cache   *lru.Cache[string, *sessionEntry]
	options form.Options
}

func NewSessionStore(size int, options form.Options) (*SessionStore, error) {
	cache, err := lru.New[string, *sessionEntry](size)
	if err != nil {
		return nil, err
	}
	return &SessionStore{cache: cache, options: options}, nil
}

// acquire returns the entry for id, creating a fresh session under a new id
// when id is empty or unknown.
func (st *SessionStore) acquire(id string) (string, *sessionEntry) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if id != "" {
		if entry, ok := st.cache.Get(id); ok {
			return id, entry
		}
	}
	id = uuid.NewString()
	entry := &sessionEntry{session: form.NewSession(id, st.options)}
	st.cache.Add(id, entry)
	return id, entry
}

// With runs fn with exclusive access to the session id.
func (st *SessionStore) With(id string, fn func(*form.Session)) string {
	id, entry := st.acquire(id)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.session)
	return id
}

// WithExisting runs fn with exclusive access to the session id and reports
// whether the session was still stored. It never creates a session.
func (st *SessionStore) WithExisting(id string, fn func(*form.Session)) bool {
	st.mu.Lock()
	entry, ok := st.cache.Get(id)
	st.mu.Unlock()
	if !ok {
		return false
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.session)
	return true
}

func (st *SessionStore) Len() int {
	return st.cache.Len()
}

// sessionID reads the session cookie of r.
func sessionID(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
