package service

import (
	"context"
	"net/url"
	"time"

	"github.com/vetdesk-app/vetdesk/internal/apiclient"
	"github.com/vetdesk-app/vetdesk/internal/availability"
	"github.com/vetdesk-app/vetdesk/internal/domain"
)

// AvailabilityService fetches weekly templates and computes bookable slots.
type AvailabilityService struct {
	api          *apiclient.Client
	appointments *AppointmentService
	clock        availability.Clock
}

// NewAvailabilityService builds the service.
func NewAvailabilityService(api *apiclient.Client, appointments *AppointmentService, clock availability.Clock) *AvailabilityService {
	if clock == nil {
		clock = availability.SystemClock()
	}
	return &AvailabilityService{api: api, appointments: appointments, clock: clock}
}

// Weekly fetches a veterinarian's weekly template.
func (s *AvailabilityService) Weekly(ctx context.Context, vetID string) (domain.WeeklyAvailability, error) {
	var resp struct {
		Availability domain.WeeklyAvailability `json:"availability"`
	}
	if err := s.api.Get(ctx, "/vets/"+url.PathEscape(vetID)+"/availability", &resp); err != nil {
		return nil, err
	}
	return resp.Availability, nil
}

// SaveWeekly replaces a veterinarian's weekly template.
func (s *AvailabilityService) SaveWeekly(ctx context.Context, vetID string, week domain.WeeklyAvailability) error {
	body := map[string]domain.WeeklyAvailability{"availability": week}
	return s.api.Put(ctx, "/vets/"+url.PathEscape(vetID)+"/availability", body, nil)
}

// SlotsFor recomputes the bookable slots for a (vet, date) pair. Template and
// bookings are fetched fresh on every call, mirroring the scheduling screen.
func (s *AvailabilityService) SlotsFor(ctx context.Context, vetID string, date time.Time) ([]availability.Slot, error) {
	week, err := s.Weekly(ctx, vetID)
	if err != nil {
		return nil, err
	}

	booked, err := s.appointments.BookedTimes(ctx, vetID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	return availability.Slots(week, date, booked, s.clock), nil
}
