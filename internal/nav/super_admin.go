package nav

import "github.com/vetdesk-app/vetdesk/internal/domain"

// NewSuperAdminNavigator declares the platform super-admin menu.
func NewSuperAdminNavigator() Navigator {
	return staticNavigator{
		title: "Super Admin",
		items: []domain.MenuItem{
			{Title: "Clinics", Icon: "home", Action: "clinics.manage"},
			{Title: "Clinic Admins", Icon: "shield", Action: "users.admins"},
			{Title: "Catalogs", Icon: "book", Action: "catalog.manage"},
			{Title: "Toggle Theme", Icon: "moon", Action: "theme.toggle"},
			{Title: "Sign Out", Icon: "log-out", Action: "session.logout"},
		},
	}
}
