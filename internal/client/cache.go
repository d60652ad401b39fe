package client

import (
	"sync"

	"github.com/spec-kit/user-directory/internal/domain"
)

// userCache is the manager's in-memory store: one RWMutex-guarded map with
// no eviction, no sizing and no TTL. Every value crossing the boundary is a
// deep copy, so callers and cache never alias each other.
type userCache struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func newUserCache() *userCache {
	return &userCache{users: make(map[string]*domain.User)}
}

// get returns an independent copy of the cached user, if present.
func (c *userCache) get(id string) (*domain.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	user, ok := c.users[id]
	if !ok {
		return nil, false
	}
	return user.Clone(), true
}

// set stores an independent copy of the user under id.
func (c *userCache) set(id string, user *domain.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[id] = user.Clone()
}

// delete evicts a single entry. Unknown ids are a no-op.
func (c *userCache) delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.users, id)
}

// clear empties the cache and returns the number of entries removed.
func (c *userCache) clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := len(c.users)
	c.users = make(map[string]*domain.User)
	return count
}

// size returns the current entry count.
func (c *userCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.users)
}
