package auth

import (
	"strings"

	"github.com/vetdesk-app/vetdesk/internal/domain"
)

// CanonicalRole is the closed set of roles the rest of the code consumes.
// Backends in the wild spell roles in several ways; everything outside this
// package goes through Canonicalize and never touches the raw strings.
type CanonicalRole string

const (
	RoleSuperAdmin   CanonicalRole = "superadmin"
	RoleClinicAdmin  CanonicalRole = "admin"
	RoleVeterinarian CanonicalRole = "veterinarian"
	RoleClient       CanonicalRole = "client"
	RoleUnknown      CanonicalRole = ""
)

// Variant sets per canonical role. Checked in fixed priority order
// (superadmin, admin, veterinarian, client) so an accidental overlap between
// two sets resolves deterministically to the higher-privilege group.
var roleVariants = []struct {
	role     CanonicalRole
	variants []string
}{
	{RoleSuperAdmin, []string{"superadmin", "super_admin", "super-admin"}},
	{RoleClinicAdmin, []string{"admin", "clinic_admin", "clinic-admin", "administrador"}},
	{RoleVeterinarian, []string{"veterinarian", "veterinario", "vet"}},
	{RoleClient, []string{"client", "cliente", "customer", "owner"}},
}

// ResolveRole extracts the raw role string from a user record. The flat Role
// field wins over the Roles array; a nil user or an empty record yields "".
// No spelling normalization happens here.
func ResolveRole(user *domain.User) string {
	if user == nil {
		return ""
	}
	if user.Role != "" {
		return user.Role
	}
	if len(user.Roles) > 0 {
		return user.Roles[0].Name
	}
	return ""
}

// Canonicalize maps a raw backend role string onto the canonical enum.
// Unrecognized spellings map to RoleUnknown.
func Canonicalize(raw string) CanonicalRole {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return RoleUnknown
	}
	for _, group := range roleVariants {
		for _, variant := range group.variants {
			if needle == variant {
				return group.role
			}
		}
	}
	return RoleUnknown
}

// CanonicalRoleOf combines resolution and canonicalization for convenience.
func CanonicalRoleOf(user *domain.User) CanonicalRole {
	return Canonicalize(ResolveRole(user))
}
