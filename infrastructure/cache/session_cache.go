package cache

import (
	"sync"

	"shiptrack/models"
)

// UserSessionCache keeps console sessions by token so most requests skip the DB.
type UserSessionCache struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewUserSessionCache() *UserSessionCache {
	return &UserSessionCache{sessions: make(map[string]models.Session)}
}

func (c *UserSessionCache) AddSession(s models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[s.ID] = s
}

func (c *UserSessionCache) FindSessionBySessionToken(token string) (models.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[token]
	return s, ok
}

func (c *UserSessionCache) DeleteSessionBySessionToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, token)
}

// PruneExpired drops expired sessions and returns how many were removed.
func (c *UserSessionCache) PruneExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for token, s := range c.sessions {
		if s.Expired() {
			delete(c.sessions, token)
			n++
		}
	}
	return n
}
