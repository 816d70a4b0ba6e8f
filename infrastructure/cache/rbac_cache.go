package cache

import (
	"sort"
	"sync"
)

// Resource grants a role one method on one console path pattern.
type Resource struct {
	Code   string
	Path   string
	Method string
	Role   string
}

// RbacRolesCache maps roles to the console resources they may use.
type RbacRolesCache struct {
	mu        sync.RWMutex
	resources map[string][]Resource
	codes     map[string]struct{}
}

func NewRbacRolesCache() *RbacRolesCache {
	return &RbacRolesCache{
		resources: make(map[string][]Resource),
		codes:     make(map[string]struct{}),
	}
}

func (c *RbacRolesCache) Add(r Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources[r.Role] = append(c.resources[r.Role], r)
	c.codes[r.Code] = struct{}{}
}

func (c *RbacRolesCache) ResourcesFor(roles []string) []Resource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Resource, 0)
	for _, role := range roles {
		out = append(out, c.resources[role]...)
	}
	return out
}

// Codes returns every registered resource code, sorted.
func (c *RbacRolesCache) Codes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.codes))
	for name := range c.codes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
