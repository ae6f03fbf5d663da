package router

import (
	"context"
	"testing"

	"github.com/vetdesk-app/vetdesk/internal/auth"
	"github.com/vetdesk-app/vetdesk/internal/domain"
	"github.com/vetdesk-app/vetdesk/internal/nav"
	"github.com/vetdesk-app/vetdesk/internal/session"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name     string
		snapshot session.Snapshot
		wantKind Kind
		wantRole auth.CanonicalRole
	}{
		{
			name:     "loading wins over everything",
			snapshot: session.Snapshot{Loading: true, User: &domain.User{Role: "cliente"}},
			wantKind: KindLoading,
		},
		{
			name:     "no user routes to public",
			snapshot: session.Snapshot{},
			wantKind: KindPublic,
		},
		{
			name:     "client variant routes home",
			snapshot: session.Snapshot{User: &domain.User{Role: "cliente"}, Token: "t"},
			wantKind: KindRoleHome,
			wantRole: auth.RoleClient,
		},
		{
			name:     "vet variant via roles array",
			snapshot: session.Snapshot{User: &domain.User{Roles: []domain.RoleRef{{Name: "veterinario"}}}, Token: "t"},
			wantKind: KindRoleHome,
			wantRole: auth.RoleVeterinarian,
		},
		{
			name:     "superadmin variant",
			snapshot: session.Snapshot{User: &domain.User{Role: "super_admin"}, Token: "t"},
			wantKind: KindRoleHome,
			wantRole: auth.RoleSuperAdmin,
		},
		{
			name:     "clinic admin variant",
			snapshot: session.Snapshot{User: &domain.User{Role: "clinic_admin"}, Token: "t"},
			wantKind: KindRoleHome,
			wantRole: auth.RoleClinicAdmin,
		},
		{
			name:     "user without role is unknown",
			snapshot: session.Snapshot{User: &domain.User{Name: "X"}, Token: "t"},
			wantKind: KindUnknownRole,
		},
		{
			name:     "unrecognized spelling is unknown",
			snapshot: session.Snapshot{User: &domain.User{Role: "groomer"}, Token: "t"},
			wantKind: KindUnknownRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := Route(tt.snapshot)
			if state.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", state.Kind, tt.wantKind)
			}
			if tt.wantKind == KindRoleHome && state.Role != tt.wantRole {
				t.Fatalf("role = %q, want %q", state.Role, tt.wantRole)
			}
		})
	}
}

// logoutTransition mirrors the shell behavior: an authenticated snapshot that
// loses its user must route straight back to public.
func TestRouteLogoutTransition(t *testing.T) {
	authenticated := session.Snapshot{User: &domain.User{Role: "cliente"}, Token: "t"}
	if state := Route(authenticated); state.Kind != KindRoleHome {
		t.Fatalf("precondition failed: %s", state.Kind)
	}

	loggedOut := session.Snapshot{}
	if state := Route(loggedOut); state.Kind != KindPublic {
		t.Fatalf("after logout kind = %s, want %s", state.Kind, KindPublic)
	}
}

type stubNavigator struct{ title string }

func (s stubNavigator) Title() string                            { return s.title }
func (s stubNavigator) Items(context.Context) []domain.MenuItem { return nil }

func TestRegistryDispatch(t *testing.T) {
	registry := NewRegistry(
		stubNavigator{"client"},
		stubNavigator{"vet"},
		stubNavigator{"admin"},
		stubNavigator{"super"},
	)

	tests := []struct {
		role auth.CanonicalRole
		want string
	}{
		{auth.RoleClient, "client"},
		{auth.RoleVeterinarian, "vet"},
		{auth.RoleClinicAdmin, "admin"},
		{auth.RoleSuperAdmin, "super"},
	}
	for _, tt := range tests {
		navigator, ok := registry.For(tt.role)
		if !ok {
			t.Fatalf("no navigator for %q", tt.role)
		}
		if navigator.Title() != tt.want {
			t.Fatalf("navigator for %q = %q, want %q", tt.role, navigator.Title(), tt.want)
		}
	}

	if _, ok := registry.For(auth.RoleUnknown); ok {
		t.Fatal("unknown role must not dispatch")
	}
}

var _ nav.Navigator = stubNavigator{}
