// Package role models a portal user's role as a closed set of privileged
// variants plus a free-form custom label.
//
// Persistence keeps an open string ("admin", "user", "advisor", "other")
// alongside an optional custom label. Only the three fixed variants can ever
// satisfy an authorization allow-list; a Custom role is display-only.
package role

import "strings"

// Kind identifies the variant of a Role.
type Kind int

const (
	KindUser Kind = iota
	KindAdmin
	KindAdvisor
	KindCustom
)

// Stored role strings.
const (
	Admin   = "admin"
	User    = "user"
	Advisor = "advisor"
	Other   = "other"
)

// Role is a tagged union: Admin | User | Advisor | Custom(label).
// The zero value is the User variant.
type Role struct {
	kind  Kind
	label string
}

// NewAdmin returns the Admin variant.
func NewAdmin() Role { return Role{kind: KindAdmin} }

// NewUser returns the User variant.
func NewUser() Role { return Role{kind: KindUser} }

// NewAdvisor returns the Advisor variant.
func NewAdvisor() Role { return Role{kind: KindAdvisor} }

// NewCustom returns a Custom variant carrying label.
func NewCustom(label string) Role {
	return Role{kind: KindCustom, label: strings.TrimSpace(label)}
}

// Parse maps a stored role string and its custom label to a Role.
// Fixed names match case-insensitively. "other" uses customLabel; any
// unrecognized string becomes Custom(raw) so nothing unknown gains privilege.
func Parse(raw, customLabel string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case Admin:
		return NewAdmin()
	case User, "":
		return NewUser()
	case Advisor:
		return NewAdvisor()
	case Other:
		return NewCustom(customLabel)
	default:
		return NewCustom(raw)
	}
}

// Kind reports the variant.
func (r Role) Kind() Kind { return r.kind }

// IsCustom reports whether r is the Custom variant.
func (r Role) IsCustom() bool { return r.kind == KindCustom }

// Label returns the custom label ("" for fixed variants).
func (r Role) Label() string { return r.label }

// Stored returns the role string that is persisted in the users collection.
func (r Role) Stored() string {
	switch r.kind {
	case KindAdmin:
		return Admin
	case KindAdvisor:
		return Advisor
	case KindCustom:
		return Other
	default:
		return User
	}
}

// String is the role name used in tokens and messages. Custom roles
// render as their label, falling back to "other".
func (r Role) String() string {
	if r.kind == KindCustom {
		if r.label != "" {
			return r.label
		}
		return Other
	}
	return r.Stored()
}

// Matches reports whether r satisfies one of the allowed role names.
// Names compare trimmed and case-insensitively. Custom roles never match,
// even when their label spells a privileged name.
func (r Role) Matches(allowed ...string) bool {
	if r.kind == KindCustom {
		return false
	}
	name := r.Stored()
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), name) {
			return true
		}
	}
	return false
}

// IsValidStored reports whether s is one of the persisted role strings.
func IsValidStored(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case Admin, User, Advisor, Other:
		return true
	}
	return false
}
