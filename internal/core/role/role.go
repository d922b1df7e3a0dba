// Package role enumerates the workforce roles a user can hold.
package role

import "strings"

type Role string

const (
	Employee   Role = "employee"
	Supervisor Role = "supervisor"
	Admin      Role = "admin"
)

// Default is used whenever a role is missing or unknown.
const Default = Employee

var all = []Role{Employee, Supervisor, Admin}

// All returns every known role in display order.
func All() []Role {
	out := make([]Role, len(all))
	copy(out, all)
	return out
}

func (r Role) Valid() bool {
	for _, known := range all {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Parse reports whether s names a known role. Matching ignores case and surrounding spaces.
func Parse(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", false
	}
	return r, true
}

// ParseOrDefault parses s and falls back to Default. The second result is false
// when the fallback was taken.
func ParseOrDefault(s string) (Role, bool) {
	if r, ok := Parse(s); ok {
		return r, true
	}
	return Default, false
}
