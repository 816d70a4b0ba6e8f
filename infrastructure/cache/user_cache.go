package cache

import (
	"strings"
	"sync"
	"time"

	"shiptrack/models"
)

// SeenUser is a console user and the last time one of their requests was authenticated.
type SeenUser struct {
	User     models.User
	LastSeen time.Time
}

// UserCache tracks console activity since startup, keyed by lower-cased username.
type UserCache struct {
	mu    sync.RWMutex
	users map[string]SeenUser
	now   func() time.Time
}

func NewUserCache() *UserCache {
	return &UserCache{users: make(map[string]SeenUser), now: time.Now}
}

// Add records user as seen now.
func (c *UserCache) Add(user models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[strings.ToLower(user.Username)] = SeenUser{User: user, LastSeen: c.now()}
}

func (c *UserCache) Get(username string) (SeenUser, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[strings.ToLower(username)]
	return u, ok
}
