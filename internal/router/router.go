package router

import (
	"github.com/vetdesk-app/vetdesk/internal/auth"
	"github.com/vetdesk-app/vetdesk/internal/nav"
	"github.com/vetdesk-app/vetdesk/internal/session"
)

// Kind enumerates top-level UI states.
type Kind int

const (
	KindLoading Kind = iota
	KindPublic
	KindRoleHome
	KindUnknownRole
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindPublic:
		return "public"
	case KindRoleHome:
		return "role-home"
	case KindUnknownRole:
		return "unknown-role"
	default:
		return "invalid"
	}
}

// State is the routing decision derived from one session snapshot. Role is
// meaningful only for KindRoleHome.
type State struct {
	Kind Kind
	Role auth.CanonicalRole
}

// Route maps a session snapshot to a top-level state. Pure: the role is
// derived fresh from the user on every call, never cached, so the router
// always reflects the latest fetched identity.
func Route(snapshot session.Snapshot) State {
	if snapshot.Loading {
		return State{Kind: KindLoading}
	}
	if snapshot.User == nil {
		return State{Kind: KindPublic}
	}
	role := auth.CanonicalRoleOf(snapshot.User)
	if role == auth.RoleUnknown {
		return State{Kind: KindUnknownRole}
	}
	return State{Kind: KindRoleHome, Role: role}
}

// Registry is the static role → navigator dispatch table.
type Registry struct {
	table map[auth.CanonicalRole]nav.Navigator
}

// NewRegistry wires one navigator per recognized role.
func NewRegistry(client, vet, clinicAdmin, superAdmin nav.Navigator) *Registry {
	return &Registry{table: map[auth.CanonicalRole]nav.Navigator{
		auth.RoleClient:       client,
		auth.RoleVeterinarian: vet,
		auth.RoleClinicAdmin:  clinicAdmin,
		auth.RoleSuperAdmin:   superAdmin,
	}}
}

// For returns the navigator for a role; ok is false for unknown roles, which
// the caller renders as the logout-only screen.
func (r *Registry) For(role auth.CanonicalRole) (nav.Navigator, bool) {
	navigator, ok := r.table[role]
	return navigator, ok
}
