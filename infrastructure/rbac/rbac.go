package rbac

import (
	"slices"
	"strings"

	"shiptrack/infrastructure/cache"
)

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Roles lists every role a console user may hold.
var Roles = []string{RoleAdmin, RoleOperator}

func ValidRole(role string) bool {
	return slices.Contains(Roles, role)
}

// Rbac registers console resources per role.
type Rbac struct {
	cache *cache.RbacRolesCache
}

func New(c *cache.RbacRolesCache) *Rbac {
	return &Rbac{cache: c}
}

// Allow grants each of roles access to method on path. Path segments may be "*".
func (r *Rbac) Allow(code, method, path string, roles ...string) {
	if r == nil || r.cache == nil {
		return
	}
	for _, role := range roles {
		r.cache.Add(cache.Resource{
			Role:   role,
			Code:   code,
			Method: strings.ToUpper(method),
			Path:   path,
		})
	}
}

// Permitted reports whether any of roles may call method on urlPath.
func (r *Rbac) Permitted(roles []string, urlPath, method string) bool {
	if r == nil || r.cache == nil || len(roles) == 0 {
		return false
	}
	return ValidateResourceAccess(r.cache.ResourcesFor(roles), urlPath, method)
}

// Codes returns the resource codes granted to roles.
func (r *Rbac) Codes(roles []string) map[string]int {
	out := make(map[string]int)
	if r == nil || r.cache == nil {
		return out
	}
	for _, res := range r.cache.ResourcesFor(roles) {
		out[res.Code] = 1
	}
	return out
}

func ValidateResourceAccess(resources []cache.Resource, urlPath, method string) bool {
	method = strings.ToUpper(method)
	for _, res := range resources {
		if res.Method == method && matchPath(res.Path, urlPath) {
			return true
		}
	}
	return false
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	patternSeg := strings.Split(strings.Trim(pattern, "/"), "/")
	pathSeg := strings.Split(strings.Trim(path, "/"), "/")

	// Trailing "*" matches any deeper suffix.
	if last := len(patternSeg) - 1; patternSeg[last] == "*" && len(pathSeg) > last {
		patternSeg, pathSeg = patternSeg[:last], pathSeg[:last]
	}
	if len(patternSeg) != len(pathSeg) {
		return false
	}
	for i := range patternSeg {
		if patternSeg[i] != "*" && patternSeg[i] != pathSeg[i] {
			return false
		}
	}
	return true
}
