package domain

// RoleRef is the nested role shape some backend deployments return instead of
// a flat role string.
type RoleRef struct {
	Name string `json:"name"`
}

// User is the cached snapshot of an authenticated identity. Depending on the
// backend version the role arrives either as Role or as Roles[0].Name; the
// resolver in internal/auth normalizes the two shapes.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Role     string    `json:"role,omitempty"`
	Roles    []RoleRef `json:"roles,omitempty"`
	ClinicID string    `json:"clinic_id,omitempty"`
}

// UserPatch carries a shallow profile update. Nil fields are left untouched.
type UserPatch struct {
	Name  *string
	Email *string
	Phone *string
}

// Apply merges the patch into the user in place.
func (u *User) Apply(patch UserPatch) {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
}
