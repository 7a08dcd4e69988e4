package service

import (
	"sort"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired PNG sessions
var ErrSessionNotFound = errors.New("png session not found")

// ErrPageNotFound is returned when a session has no such page
var ErrPageNotFound = errors.New("png page not found")

const defaultSessionTTL = 10 * time.Minute

type pngSession struct {
	name    string
	pages   map[int][]byte
	expires time.Time
}

// PNGSessions keeps exported PNG pages for a short time so clients can
// download them one by one.
type PNGSessions struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]pngSession
}

// NewPNGSessions creates a store whose sessions live for ttl
func NewPNGSessions(ttl time.Duration) *PNGSessions {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &PNGSessions{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]pngSession),
	}
}

// Put stores pages under a new session id. Expired sessions are swept on write.
func (s *PNGSessions) Put(name string, pages map[int][]byte) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, v := range s.sessions {
		if now.After(v.expires) {
			delete(s.sessions, k)
		}
	}
	s.sessions[id] = pngSession{
		name:    name,
		pages:   pages,
		expires: now.Add(s.ttl),
	}
	return id
}

// Page returns one PNG page and the catalog name it was exported for
func (s *PNGSessions) Page(id string, page int) ([]byte, string, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || s.now().After(sess.expires) {
		return nil, "", errors.Wrapf(ErrSessionNotFound, "session %q", id)
	}
	data, ok := sess.pages[page]
	if !ok {
		return nil, "", errors.Wrapf(ErrPageNotFound, "page %d", page)
	}
	return data, sess.name, nil
}

// Pages lists the page numbers of a session in order
func (s *PNGSessions) Pages(id string) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	nums := make([]int, 0, len(sess.pages))
	for n := range sess.pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}
