package service

import (
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGSessions(t *testing.T) {
	s := NewPNGSessions(time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	id := s.Put("shop", map[int][]byte{2: []byte("b"), 1: []byte("a")})
	assert.Equal(t, []int{1, 2}, s.Pages(id))

	data, name, err := s.Page(id, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
	assert.Equal(t, "shop", name)

	_, _, err = s.Page(id, 7)
	assert.True(t, errors.Is(err, ErrPageNotFound))

	now = now.Add(2 * time.Minute)
	_, _, err = s.Page(id, 1)
	assert.True(t, errors.Is(err, ErrSessionNotFound), "expired")

	other := s.Put("shop", map[int][]byte{1: nil})
	assert.Nil(t, s.Pages(id), "expired sessions are swept on write")
	assert.Equal(t, []int{1}, s.Pages(other))
}
