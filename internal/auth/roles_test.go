package auth

import (
	"testing"

	"github.com/vetdesk-app/vetdesk/internal/domain"
)

func TestResolveRole(t *testing.T) {
	tests := []struct {
		name string
		user *domain.User
		want string
	}{
		{
			name: "nil user",
			user: nil,
			want: "",
		},
		{
			name: "flat role field wins over roles array",
			user: &domain.User{Role: "veterinario", Roles: []domain.RoleRef{{Name: "cliente"}}},
			want: "veterinario",
		},
		{
			name: "first element of roles array",
			user: &domain.User{Roles: []domain.RoleRef{{Name: "clinic_admin"}, {Name: "cliente"}}},
			want: "clinic_admin",
		},
		{
			name: "no role information",
			user: &domain.User{Name: "Someone", Email: "s@example.com"},
			want: "",
		},
		{
			name: "empty roles array",
			user: &domain.User{Roles: []domain.RoleRef{}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRole(tt.user); got != tt.want {
				t.Fatalf("ResolveRole() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		raw  string
		want CanonicalRole
	}{
		{"superadmin", RoleSuperAdmin},
		{"super_admin", RoleSuperAdmin},
		{"SUPER_ADMIN", RoleSuperAdmin},
		{"admin", RoleClinicAdmin},
		{"clinic_admin", RoleClinicAdmin},
		{"administrador", RoleClinicAdmin},
		{"veterinarian", RoleVeterinarian},
		{"veterinario", RoleVeterinarian},
		{"vet", RoleVeterinarian},
		{"client", RoleClient},
		{"cliente", RoleClient},
		{"owner", RoleClient},
		{"  cliente  ", RoleClient},
		{"", RoleUnknown},
		{"janitor", RoleUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Canonicalize(tt.raw); got != tt.want {
				t.Fatalf("Canonicalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCanonicalRoleOf(t *testing.T) {
	user := &domain.User{Roles: []domain.RoleRef{{Name: "veterinario"}}}
	if got := CanonicalRoleOf(user); got != RoleVeterinarian {
		t.Fatalf("CanonicalRoleOf() = %q, want %q", got, RoleVeterinarian)
	}
	if got := CanonicalRoleOf(nil); got != RoleUnknown {
		t.Fatalf("CanonicalRoleOf(nil) = %q, want unknown", got)
	}
}
