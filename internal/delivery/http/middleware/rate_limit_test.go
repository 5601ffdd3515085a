package middleware

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreIncr(t *testing.T) {
	t.Run("Counts within a window", func(t *testing.T) {
		s := &memoryStore{entries: make(map[string]*rateLimitEntry)}

		count, _ := s.incr("1.2.3.4", time.Minute)
		assert.Equal(t, 1, count)
		count, _ = s.incr("1.2.3.4", time.Minute)
		assert.Equal(t, 2, count)
	})

	t.Run("Resets after the window closes", func(t *testing.T) {
		s := &memoryStore{entries: make(map[string]*rateLimitEntry)}

		// A negative window expires immediately, so the next hit starts over.
		s.incr("1.2.3.4", -time.Millisecond)
		count, _ := s.incr("1.2.3.4", time.Minute)
		assert.Equal(t, 1, count)
	})

	t.Run("Evicts closed windows of other clients", func(t *testing.T) {
		s := &memoryStore{entries: make(map[string]*rateLimitEntry)}

		for i := 0; i < 50; i++ {
			s.incr("10.0.0."+strconv.Itoa(i), -time.Millisecond)
		}
		s.incr("1.2.3.4", time.Minute)

		s.mu.Lock()
		defer s.mu.Unlock()
		assert.Len(t, s.entries, 1)
		assert.Contains(t, s.entries, "1.2.3.4")
	})
}
