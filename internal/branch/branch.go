// Package branch models the exam-centre locations and the scope value
// threaded through every data-access call.
package branch

import (
	"errors"
	"strings"
)

// Branch is one physical exam centre or the virtual global view.
type Branch string

const (
	Calicut Branch = "calicut"
	Cochin  Branch = "cochin"
	Kannur  Branch = "kannur"
	Global  Branch = "global"
)

// ErrUnknownBranch the value is not one of the known branches
var ErrUnknownBranch = errors.New("unknown branch")

var displayNames = map[Branch]string{
	Calicut: "Calicut",
	Cochin:  "Cochin",
	Kannur:  "Kannur",
	Global:  "Global View",
}

// Physical returns the real locations in display order.
func Physical() []Branch {
	return []Branch{Calicut, Cochin, Kannur}
}

// All returns every branch including Global.
func All() []Branch {
	return append(Physical(), Global)
}

// Parse accepts any casing and surrounding space.
func Parse(s string) (Branch, error) {
	b := Branch(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := displayNames[b]; !ok {
		return "", ErrUnknownBranch
	}
	return b, nil
}

// IsGlobal reports whether b is the aggregate view.
func (b Branch) IsGlobal() bool { return b == Global }

// String implements fmt.Stringer.
func (b Branch) String() string { return string(b) }

// DisplayName is the human label, falling back to the raw value.
func (b Branch) DisplayName() string {
	if name, ok := displayNames[b]; ok {
		return name
	}
	return string(b)
}

// Scope restricts queries to one branch. The zero value is the global scope.
type Scope struct {
	branch Branch
}

// NewScope builds a scope for b.
func NewScope(b Branch) Scope {
	return Scope{branch: b}
}

// GlobalScope matches every branch.
func GlobalScope() Scope {
	return Scope{branch: Global}
}

// Branch returns the scoped branch, Global for the zero value.
func (s Scope) Branch() Branch {
	if s.branch == "" {
		return Global
	}
	return s.branch
}

// IsGlobal reports whether no branch predicate applies.
func (s Scope) IsGlobal() bool {
	return s.Branch().IsGlobal()
}

// Predicate returns the equality value for the branch column; ok is false
// for the global scope, meaning no predicate at all.
func (s Scope) Predicate() (value string, ok bool) {
	if s.IsGlobal() {
		return "", false
	}
	return string(s.branch), true
}

// Matches reports whether a row stored at location is visible in the scope.
func (s Scope) Matches(location string) bool {
	v, ok := s.Predicate()
	return !ok || v == location
}

// CanSwitch reports whether a user may move between branches:
// super admins and allow-listed emails.
func CanSwitch(role, email string, allowList []string) bool {
	if role == "super_admin" {
		return true
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, allowed := range allowList {
		if strings.ToLower(strings.TrimSpace(allowed)) == email {
			return true
		}
	}
	return false
}

// Accessible lists the branches a user may view.
func Accessible(canSwitch bool, assigned Branch) []Branch {
	if canSwitch {
		return All()
	}
	return []Branch{assigned}
}

// Resolve picks the active branch from the persisted choice and the
// profile assignment. The profile wins unless the user can switch.
func Resolve(persisted string, assigned string, canSwitch bool, fallback Branch) Branch {
	assignedBranch, assignedErr := Parse(assigned)
	if canSwitch {
		if b, err := Parse(persisted); err == nil {
			return b
		}
	}
	if assignedErr == nil {
		return assignedBranch
	}
	return fallback
}
