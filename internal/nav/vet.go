package nav

import "github.com/vetdesk-app/vetdesk/internal/domain"

// NewVetNavigator declares the veterinarian menu.
func NewVetNavigator() Navigator {
	return staticNavigator{
		title: "Veterinarian",
		items: []domain.MenuItem{
			{Title: "Today's Agenda", Icon: "calendar", Action: "appointments.vet"},
			{Title: "My Availability", Icon: "clock", Action: "availability.edit"},
			{Title: "Patients", Icon: "paw", Action: "pets.patients"},
			{Title: "Profile", Icon: "user", Action: "profile.edit"},
			{Title: "Toggle Theme", Icon: "moon", Action: "theme.toggle"},
			{Title: "Sign Out", Icon: "log-out", Action: "session.logout"},
		},
	}
}
