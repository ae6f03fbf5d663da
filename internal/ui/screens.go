package ui

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vetdesk-app/vetdesk/internal/domain"
	"github.com/vetdesk-app/vetdesk/internal/service"
)

// dispatch maps menu action ids to screen handlers. Every screen catches its
// own request failures and surfaces them inline; nothing propagates.
func (u *UI) dispatch(ctx context.Context, action string) {
	switch action {
	case "pets.list":
		u.petsScreen(ctx, u.currentUserID())
	case "pets.patients":
		u.petsScreen(ctx, "")
	case "appointments.book":
		u.bookAppointmentScreen(ctx)
	case "appointments.mine":
		u.appointmentsScreen(ctx, "mine")
	case "appointments.vet":
		u.appointmentsScreen(ctx, "vet")
	case "appointments.clinic":
		u.appointmentsScreen(ctx, "clinic")
	case "availability.edit":
		u.availabilityScreen(ctx)
	case "profile.edit":
		u.profileScreen(ctx)
	case "users.manage":
		u.usersScreen(ctx, "")
	case "users.admins":
		u.usersScreen(ctx, "clinic_admin")
	case "catalog.services":
		u.servicesScreen(ctx)
	case "catalog.manage":
		u.catalogScreen(ctx)
	case "clinics.manage":
		u.clinicsScreen(ctx)
	case "clinic.edit":
		u.clinicProfileScreen(ctx)
	case "theme.toggle":
		t := u.themes.Toggle()
		u.printAccent("Theme: " + t.Name)
	case "session.logout":
		u.sess.Logout(ctx)
		u.printAccent("Signed out")
	default:
		u.printDanger("Unknown action: " + action)
	}
}

func (u *UI) currentUserID() string {
	if user := u.sess.Snapshot().User; user != nil {
		return user.ID
	}
	return ""
}

func (u *UI) petsScreen(ctx context.Context, ownerID string) {
	pets, err := u.services.Pets.List(ctx, ownerID)
	if err != nil {
		u.printDanger("Could not load pets: " + err.Error())
		return
	}
	if len(pets) == 0 {
		u.println("No pets yet.")
	}
	for _, pet := range pets {
		u.printf("  %s  (%s)\n", pet.Name, pet.ID)
	}

	if u.prompt("Add a pet? (y/N)") != "y" {
		return
	}
	input := service.PetInput{
		Name:    u.prompt("Pet name"),
		OwnerID: ownerID,
	}
	species, err := u.services.Catalog.Species(ctx)
	if err == nil && len(species) > 0 {
		for i, sp := range species {
			u.printf("  %d) %s\n", i+1, sp.Name)
		}
		if idx := u.promptIndex("Species", len(species)); idx >= 0 {
			input.SpeciesID = species[idx].ID
		}
	}
	if _, err := u.services.Pets.Create(ctx, input); err != nil {
		u.printDanger("Could not create pet: " + err.Error())
		return
	}
	u.printAccent("Pet registered")
}

func (u *UI) bookAppointmentScreen(ctx context.Context) {
	vets, err := u.services.Users.List(ctx, "veterinarian")
	if err != nil {
		u.printDanger("Could not load veterinarians: " + err.Error())
		return
	}
	if len(vets) == 0 {
		u.println("No veterinarians available.")
		return
	}
	for i, vet := range vets {
		u.printf("  %d) %s\n", i+1, vet.Name)
	}
	vetIdx := u.promptIndex("Veterinarian", len(vets))
	if vetIdx < 0 {
		return
	}
	vet := vets[vetIdx]

	dateStr := u.prompt("Date (YYYY-MM-DD)")
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		u.printDanger("Invalid date")
		return
	}

	slots, err := u.services.Availability.SlotsFor(ctx, vet.ID, date)
	if err != nil {
		u.printDanger("Could not compute availability: " + err.Error())
		return
	}
	if len(slots) == 0 {
		u.println("No bookable slots on that date.")
		return
	}
	for i, slot := range slots {
		u.printf("  %d) %s\n", i+1, slot.Label)
	}
	slotIdx := u.promptIndex("Slot", len(slots))
	if slotIdx < 0 {
		return
	}

	pets, err := u.services.Pets.List(ctx, u.currentUserID())
	if err != nil || len(pets) == 0 {
		u.printDanger("You need a registered pet first.")
		return
	}
	for i, pet := range pets {
		u.printf("  %d) %s\n", i+1, pet.Name)
	}
	petIdx := u.promptIndex("Pet", len(pets))
	if petIdx < 0 {
		return
	}

	input := service.AppointmentInput{
		ClinicID: vet.ClinicID,
		PetID:    pets[petIdx].ID,
		VetID:    vet.ID,
		Date:     dateStr,
		Time:     slots[slotIdx].Value,
		Notes:    u.prompt("Notes (optional)"),
	}
	appt, err := u.services.Appointments.Create(ctx, input)
	if err != nil {
		u.printDanger("Booking failed: " + err.Error())
		return
	}
	u.printAccent(fmt.Sprintf("Booked %s at %s", appt.Date, appt.Time))
}

func (u *UI) appointmentsScreen(ctx context.Context, scope string) {
	appointments, err := u.services.Appointments.List(ctx, scope)
	if err != nil {
		u.printDanger("Could not load appointments: " + err.Error())
		return
	}
	if len(appointments) == 0 {
		u.println("Nothing scheduled.")
		return
	}
	for i, appt := range appointments {
		u.printf("  %d) %s %s  [%s]\n", i+1, appt.Date, appt.Time, appt.Status)
	}

	switch scope {
	case "mine":
		if u.prompt("Cancel one? (y/N)") != "y" {
			return
		}
		idx := u.promptIndex("Appointment", len(appointments))
		if idx < 0 {
			return
		}
		if err := u.services.Appointments.Cancel(ctx, appointments[idx].ID); err != nil {
			u.printDanger("Cancel failed: " + err.Error())
			return
		}
		u.printAccent("Cancelled")
	case "vet":
		if u.prompt("Mark one completed? (y/N)") != "y" {
			return
		}
		idx := u.promptIndex("Appointment", len(appointments))
		if idx < 0 {
			return
		}
		if _, err := u.services.Appointments.UpdateStatus(ctx, appointments[idx].ID, domain.AppointmentStatusCompleted); err != nil {
			u.printDanger("Update failed: " + err.Error())
			return
		}
		u.printAccent("Marked completed")
	}
}

func (u *UI) availabilityScreen(ctx context.Context) {
	vetID := u.currentUserID()
	week, err := u.services.Availability.Weekly(ctx, vetID)
	if err != nil {
		u.printDanger("Could not load availability: " + err.Error())
		return
	}
	if week == nil {
		week = domain.WeeklyAvailability{}
	}
	days := []string{"lunes", "martes", "miercoles", "jueves", "viernes", "sabado", "domingo"}
	for _, day := range days {
		entry := week[day]
		if entry.Active {
			u.printf("  %-10s %s-%s (lunch %s-%s)\n", day, entry.Start, entry.End, entry.LunchStart, entry.LunchEnd)
		} else {
			u.printf("  %-10s off\n", day)
		}
	}

	day := u.prompt("Edit day (name, empty to skip)")
	if day == "" {
		return
	}
	entry := domain.DaySchedule{Active: u.prompt("Active? (y/N)") == "y"}
	if entry.Active {
		entry.Start = u.prompt("Start (HH:MM)")
		entry.End = u.prompt("End (HH:MM)")
		entry.LunchStart = u.prompt("Lunch start (HH:MM)")
		entry.LunchEnd = u.prompt("Lunch end (HH:MM)")
	}
	week[day] = entry
	if err := u.services.Availability.SaveWeekly(ctx, vetID, week); err != nil {
		u.printDanger("Save failed: " + err.Error())
		return
	}
	u.printAccent("Availability saved")
}

func (u *UI) profileScreen(ctx context.Context) {
	user := u.sess.Snapshot().User
	if user == nil {
		return
	}
	u.printf("Name: %s\nEmail: %s\nPhone: %s\n", user.Name, user.Email, user.Phone)

	name := u.prompt("New name (empty keeps current)")
	phone := u.prompt("New phone (empty keeps current)")
	if name == "" && phone == "" {
		return
	}

	input := service.UserInput{Name: user.Name, Email: user.Email, Phone: user.Phone}
	patch := domain.UserPatch{}
	if name != "" {
		input.Name = name
		patch.Name = &name
	}
	if phone != "" {
		input.Phone = phone
		patch.Phone = &phone
	}

	if _, err := u.services.Users.Update(ctx, user.ID, input); err != nil {
		u.printDanger("Update failed: " + err.Error())
		return
	}
	// local patch instead of a re-fetch
	u.sess.UpdateUser(patch)
	u.printAccent("Profile updated")
}

func (u *UI) usersScreen(ctx context.Context, role string) {
	users, err := u.services.Users.List(ctx, role)
	if err != nil {
		u.printDanger("Could not load users: " + err.Error())
		return
	}
	for _, usr := range users {
		u.printf("  %-25s %s\n", usr.Name, usr.Email)
	}

	if u.prompt("Create one? (y/N)") != "y" {
		return
	}
	input := service.UserInput{
		Name:     u.prompt("Name"),
		Email:    u.prompt("Email"),
		Password: u.prompt("Temporary password"),
		Role:     role,
	}
	if input.Role == "" {
		input.Role = u.prompt("Role")
	}
	if _, err := u.services.Users.Create(ctx, input); err != nil {
		u.printDanger("Create failed: " + err.Error())
		return
	}
	u.printAccent("User created")
}

func (u *UI) servicesScreen(ctx context.Context) {
	services, err := u.services.Catalog.Services(ctx)
	if err != nil {
		u.printDanger("Could not load services: " + err.Error())
		return
	}
	for _, svc := range services {
		u.printf("  %-25s %6.2f  %d min\n", svc.Name, svc.Price, svc.DurationMinutes)
	}
}

func (u *UI) catalogScreen(ctx context.Context) {
	species, err := u.services.Catalog.Species(ctx)
	if err != nil {
		u.printDanger("Could not load catalog: " + err.Error())
		return
	}
	for _, sp := range species {
		breeds, err := u.services.Catalog.Breeds(ctx, sp.ID)
		if err != nil {
			u.logger.Debug("breeds fetch failed", zap.String("species", sp.ID), zap.Error(err))
			continue
		}
		u.printf("  %s (%d breeds)\n", sp.Name, len(breeds))
	}
}

func (u *UI) clinicsScreen(ctx context.Context) {
	clinics, err := u.services.Clinics.List(ctx)
	if err != nil {
		u.printDanger("Could not load clinics: " + err.Error())
		return
	}
	for _, clinic := range clinics {
		status := "active"
		if !clinic.Active {
			status = "inactive"
		}
		u.printf("  %-25s %s  [%s]\n", clinic.Name, clinic.Address, status)
	}

	if u.prompt("Create one? (y/N)") != "y" {
		return
	}
	input := service.ClinicInput{
		Name:    u.prompt("Name"),
		Address: u.prompt("Address"),
		Phone:   u.prompt("Phone"),
		Email:   u.prompt("Email"),
		Active:  true,
	}
	if _, err := u.services.Clinics.Create(ctx, input); err != nil {
		u.printDanger("Create failed: " + err.Error())
		return
	}
	u.printAccent("Clinic created")
}

func (u *UI) clinicProfileScreen(ctx context.Context) {
	user := u.sess.Snapshot().User
	if user == nil || user.ClinicID == "" {
		u.printDanger("No clinic linked to this account.")
		return
	}
	clinic, err := u.services.Clinics.Get(ctx, user.ClinicID)
	if err != nil {
		u.printDanger("Could not load clinic: " + err.Error())
		return
	}
	u.printf("Name: %s\nAddress: %s\nPhone: %s\n", clinic.Name, clinic.Address, clinic.Phone)

	address := u.prompt("New address (empty keeps current)")
	if address == "" {
		return
	}
	input := service.ClinicInput{
		Name:    clinic.Name,
		Address: address,
		Phone:   clinic.Phone,
		Email:   clinic.Email,
		Active:  clinic.Active,
	}
	if _, err := u.services.Clinics.Update(ctx, clinic.ID, input); err != nil {
		u.printDanger("Update failed: " + err.Error())
		return
	}
	u.printAccent("Clinic updated")
}

// promptIndex reads a 1-based choice and returns the 0-based index, -1 when
// the input is empty or out of range.
func (u *UI) promptIndex(label string, max int) int {
	choice := u.prompt(label + " #")
	var index int
	if _, err := fmt.Sscanf(choice, "%d", &index); err != nil {
		return -1
	}
	if index < 1 || index > max {
		return -1
	}
	return index - 1
}
