package stub

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vetdesk-app/vetdesk/internal/auth"
	"github.com/vetdesk-app/vetdesk/internal/domain"
)

// Account is a stored user plus credential hash.
type Account struct {
	domain.User
	PasswordHash string
}

// Store is the stub backend's fixture-seeded in-memory state. It deliberately
// has no durable persistence: restart the stub and you get a clean clinic.
type Store struct {
	mu           sync.RWMutex
	users        map[string]*Account
	emailIndex   map[string]string
	clinics      map[string]*domain.Clinic
	pets         map[string]*domain.Pet
	appointments map[string]*domain.Appointment
	availability map[string]domain.WeeklyAvailability
	species      []domain.Species
	breeds       []domain.Breed
	services     []domain.ClinicService
	menu         []domain.MenuItem
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]*Account),
		emailIndex:   make(map[string]string),
		clinics:      make(map[string]*domain.Clinic),
		pets:         make(map[string]*domain.Pet),
		appointments: make(map[string]*domain.Appointment),
		availability: make(map[string]domain.WeeklyAvailability),
	}
}

// --- users ---

func (s *Store) CreateUser(account *Account) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.emailIndex[account.Email]; exists {
		return false
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	s.users[account.ID] = account
	s.emailIndex[account.Email] = account.ID
	return true
}

func (s *Store) UserByEmail(email string) (*Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, false
	}
	account := *s.users[id]
	return &account, true
}

func (s *Store) UserByID(id string) (*Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.users[id]
	if !ok {
		return nil, false
	}
	copied := *account
	return &copied, true
}

func (s *Store) UpdateUser(account *Account) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[account.ID]
	if !ok {
		return false
	}
	if existing.Email != account.Email {
		delete(s.emailIndex, existing.Email)
		s.emailIndex[account.Email] = account.ID
	}
	s.users[account.ID] = account
	return true
}

func (s *Store) DeleteUser(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.users[id]
	if !ok {
		return false
	}
	delete(s.emailIndex, account.Email)
	delete(s.users, id)
	return true
}

// ListUsers filters by canonical role when the raw filter resolves to one;
// otherwise it compares the raw strings.
func (s *Store) ListUsers(roleFilter string) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := auth.Canonicalize(roleFilter)
	var users []domain.User
	for _, account := range s.users {
		if roleFilter != "" {
			raw := auth.ResolveRole(&account.User)
			if wanted != auth.RoleUnknown {
				if auth.Canonicalize(raw) != wanted {
					continue
				}
			} else if raw != roleFilter {
				continue
			}
		}
		users = append(users, account.User)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

// --- clinics ---

func (s *Store) CreateClinic(clinic *domain.Clinic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if clinic.ID == "" {
		clinic.ID = uuid.NewString()
	}
	now := time.Now()
	clinic.CreatedAt = now
	clinic.UpdatedAt = now
	s.clinics[clinic.ID] = clinic
}

func (s *Store) ClinicByID(id string) (*domain.Clinic, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clinic, ok := s.clinics[id]
	if !ok {
		return nil, false
	}
	copied := *clinic
	return &copied, true
}

func (s *Store) UpdateClinic(clinic *domain.Clinic) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.clinics[clinic.ID]
	if !ok {
		return false
	}
	clinic.CreatedAt = existing.CreatedAt
	clinic.UpdatedAt = time.Now()
	s.clinics[clinic.ID] = clinic
	return true
}

func (s *Store) DeleteClinic(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clinics[id]; !ok {
		return false
	}
	delete(s.clinics, id)
	return true
}

func (s *Store) ListClinics() []domain.Clinic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clinics := make([]domain.Clinic, 0, len(s.clinics))
	for _, clinic := range s.clinics {
		clinics = append(clinics, *clinic)
	}
	sort.Slice(clinics, func(i, j int) bool { return clinics[i].Name < clinics[j].Name })
	return clinics
}

// --- pets ---

func (s *Store) CreatePet(pet *domain.Pet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pet.ID == "" {
		pet.ID = uuid.NewString()
	}
	s.pets[pet.ID] = pet
}

func (s *Store) PetByID(id string) (*domain.Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pet, ok := s.pets[id]
	if !ok {
		return nil, false
	}
	copied := *pet
	return &copied, true
}

func (s *Store) UpdatePet(pet *domain.Pet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pets[pet.ID]; !ok {
		return false
	}
	s.pets[pet.ID] = pet
	return true
}

func (s *Store) DeletePet(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pets[id]; !ok {
		return false
	}
	delete(s.pets, id)
	return true
}

func (s *Store) ListPets(ownerID string) []domain.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pets []domain.Pet
	for _, pet := range s.pets {
		if ownerID != "" && pet.OwnerID != ownerID {
			continue
		}
		pets = append(pets, *pet)
	}
	sort.Slice(pets, func(i, j int) bool { return pets[i].Name < pets[j].Name })
	return pets
}

// --- appointments ---

// CreateAppointment rejects a second booking for the same vet/date/time.
func (s *Store) CreateAppointment(appt *domain.Appointment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.appointments {
		if existing.VetID == appt.VetID && existing.Date == appt.Date &&
			existing.Time == appt.Time && existing.Status == domain.AppointmentStatusScheduled {
			return false
		}
	}
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	if appt.Status == "" {
		appt.Status = domain.AppointmentStatusScheduled
	}
	s.appointments[appt.ID] = appt
	return true
}

func (s *Store) AppointmentByID(id string) (*domain.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	appt, ok := s.appointments[id]
	if !ok {
		return nil, false
	}
	copied := *appt
	return &copied, true
}

func (s *Store) UpdateAppointment(appt *domain.Appointment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[appt.ID]; !ok {
		return false
	}
	s.appointments[appt.ID] = appt
	return true
}

func (s *Store) DeleteAppointment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[id]; !ok {
		return false
	}
	delete(s.appointments, id)
	return true
}

// ListAppointments filters by owner (via the pet), vet or clinic; empty
// arguments mean no filter on that dimension.
func (s *Store) ListAppointments(ownerID, vetID, clinicID string) []domain.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var appointments []domain.Appointment
	for _, appt := range s.appointments {
		if vetID != "" && appt.VetID != vetID {
			continue
		}
		if clinicID != "" && appt.ClinicID != clinicID {
			continue
		}
		if ownerID != "" {
			pet, ok := s.pets[appt.PetID]
			if !ok || pet.OwnerID != ownerID {
				continue
			}
		}
		appointments = append(appointments, *appt)
	}
	sort.Slice(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date < appointments[j].Date
		}
		return appointments[i].Time < appointments[j].Time
	})
	return appointments
}

// BookedTimes returns the scheduled "HH:MM" starts for a vet on a date.
func (s *Store) BookedTimes(vetID, date string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var times []string
	for _, appt := range s.appointments {
		if appt.VetID == vetID && appt.Date == date && appt.Status == domain.AppointmentStatusScheduled {
			times = append(times, appt.Time)
		}
	}
	sort.Strings(times)
	return times
}

// --- availability, catalogs, menu ---

func (s *Store) AvailabilityFor(vetID string) domain.WeeklyAvailability {
	s.mu.RLock()
	defer s.mu.RUnlock()
	week, ok := s.availability[vetID]
	if !ok {
		return domain.WeeklyAvailability{}
	}
	copied := make(domain.WeeklyAvailability, len(week))
	for day, entry := range week {
		copied[day] = entry
	}
	return copied
}

func (s *Store) SetAvailability(vetID string, week domain.WeeklyAvailability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.availability[vetID] = week
}

func (s *Store) ListSpecies() []domain.Species {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Species{}, s.species...)
}

func (s *Store) ListBreeds(speciesID string) []domain.Breed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if speciesID == "" {
		return append([]domain.Breed{}, s.breeds...)
	}
	var breeds []domain.Breed
	for _, breed := range s.breeds {
		if breed.SpeciesID == speciesID {
			breeds = append(breeds, breed)
		}
	}
	return breeds
}

func (s *Store) ListServices() []domain.ClinicService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ClinicService{}, s.services...)
}

func (s *Store) ClientMenu() []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.MenuItem{}, s.menu...)
}

// Seed populates the store with a small working clinic: one of each role,
// catalogs, a weekly template and a pet. Passwords are all "password123".
func (s *Store) Seed(bcryptCost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	if err != nil {
		return err
	}
	pw := string(hash)

	clinic := &domain.Clinic{Name: "Clinica San Roque", Address: "Av. Central 123", Phone: "555-0100", Email: "contact@sanroque.example", Active: true}
	s.CreateClinic(clinic)

	superadmin := &Account{User: domain.User{Name: "Sofia Root", Email: "root@vetdesk.example", Role: "super_admin"}, PasswordHash: pw}
	admin := &Account{User: domain.User{Name: "Ana Admin", Email: "admin@sanroque.example", Roles: []domain.RoleRef{{Name: "clinic_admin"}}, ClinicID: clinic.ID}, PasswordHash: pw}
	vet := &Account{User: domain.User{Name: "Dr. Victor Vega", Email: "vet@sanroque.example", Role: "veterinario", ClinicID: clinic.ID}, PasswordHash: pw}
	client := &Account{User: domain.User{Name: "Carla Cliente", Email: "carla@example.com", Role: "cliente"}, PasswordHash: pw}
	for _, account := range []*Account{superadmin, admin, vet, client} {
		s.CreateUser(account)
	}

	s.mu.Lock()
	s.species = []domain.Species{
		{ID: uuid.NewString(), Name: "Dog"},
		{ID: uuid.NewString(), Name: "Cat"},
	}
	s.breeds = []domain.Breed{
		{ID: uuid.NewString(), SpeciesID: s.species[0].ID, Name: "Labrador"},
		{ID: uuid.NewString(), SpeciesID: s.species[0].ID, Name: "Beagle"},
		{ID: uuid.NewString(), SpeciesID: s.species[1].ID, Name: "Siamese"},
	}
	s.services = []domain.ClinicService{
		{ID: uuid.NewString(), Name: "General Checkup", Price: 35, DurationMinutes: 30},
		{ID: uuid.NewString(), Name: "Vaccination", Price: 20, DurationMinutes: 30},
	}
	s.menu = []domain.MenuItem{
		{Title: "My Pets", Icon: "paw", Action: "pets.list"},
		{Title: "Book Appointment", Icon: "calendar-plus", Action: "appointments.book"},
		{Title: "My Appointments", Icon: "calendar", Action: "appointments.mine"},
		{Title: "Profile", Icon: "user", Action: "profile.edit"},
		{Title: "Sign Out", Icon: "log-out", Action: "session.logout"},
	}
	dogID := s.species[0].ID
	s.mu.Unlock()

	s.CreatePet(&domain.Pet{Name: "Rocky", SpeciesID: dogID, OwnerID: client.ID})

	workday := domain.DaySchedule{Active: true, Start: "09:00", End: "17:00", LunchStart: "13:00", LunchEnd: "14:00"}
	s.SetAvailability(vet.ID, domain.WeeklyAvailability{
		"lunes": workday, "martes": workday, "miercoles": workday,
		"jueves": workday, "viernes": workday,
	})
	return nil
}
