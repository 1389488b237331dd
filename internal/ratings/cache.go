package ratings

import (
	"strconv"
	"sync"

	"github.com/jonahtballard/CatBase/internal/catalog"
	"github.com/jonahtballard/CatBase/internal/models"
)

// IdentityKey is the cache identity of an instructor: "id:<instructor_id>"
// when the id is known, else "name:<normalized name>". Names differing only in
// case or punctuation share a key.
func IdentityKey(ref models.InstructorRef) string {
	if ref.InstructorID != nil {
		return "id:" + strconv.FormatInt(*ref.InstructorID, 10)
	}
	return "name:" + catalog.NormalizeName(ref.Name)
}

// Entry is a settled lookup: a profile (possibly empty) or a failure
type Entry struct {
	Profile *models.RatingProfile
	Err     error
}

// Cache holds settled lookups for one application session. Ratings are
// treated as immutable within a session, so entries are never evicted and
// failures are not retried. Construct one per session and share it.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCache creates an empty session cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// Get returns the entry stored under key
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Put stores a settled lookup
func (c *Cache) Put(key string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

// Len returns the number of cached identities
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
