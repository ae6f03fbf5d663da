package nav

import "github.com/vetdesk-app/vetdesk/internal/domain"

// NewClinicAdminNavigator declares the clinic administrator menu.
func NewClinicAdminNavigator() Navigator {
	return staticNavigator{
		title: "Clinic Admin",
		items: []domain.MenuItem{
			{Title: "Staff", Icon: "users", Action: "users.manage"},
			{Title: "Clinic Appointments", Icon: "calendar", Action: "appointments.clinic"},
			{Title: "Services", Icon: "briefcase", Action: "catalog.services"},
			{Title: "Clinic Profile", Icon: "home", Action: "clinic.edit"},
			{Title: "Toggle Theme", Icon: "moon", Action: "theme.toggle"},
			{Title: "Sign Out", Icon: "log-out", Action: "session.logout"},
		},
	}
}
