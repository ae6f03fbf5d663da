package service

import (
	"context"
	"net/url"

	"github.com/vetdesk-app/vetdesk/internal/apiclient"
	"github.com/vetdesk-app/vetdesk/internal/domain"
)

// AppointmentService covers booking and agenda screens.
type AppointmentService struct {
	api *apiclient.Client
}

// NewAppointmentService builds the service.
func NewAppointmentService(api *apiclient.Client) *AppointmentService {
	return &AppointmentService{api: api}
}

// AppointmentInput carries the booking form.
type AppointmentInput struct {
	ClinicID  string `json:"clinic_id"`
	PetID     string `json:"pet_id"`
	VetID     string `json:"vet_id"`
	ServiceID string `json:"service_id,omitempty"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Notes     string `json:"notes,omitempty"`
}

// List fetches appointments for a scope: "mine", "vet" or "clinic".
func (s *AppointmentService) List(ctx context.Context, scope string) ([]domain.Appointment, error) {
	path := "/appointments"
	if scope != "" {
		path += "?scope=" + url.QueryEscape(scope)
	}
	var resp struct {
		Appointments []domain.Appointment `json:"appointments"`
	}
	if err := s.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Appointments, nil
}

func (s *AppointmentService) Create(ctx context.Context, input AppointmentInput) (*domain.Appointment, error) {
	var resp struct {
		Appointment *domain.Appointment `json:"appointment"`
	}
	if err := s.api.Post(ctx, "/appointments", input, &resp); err != nil {
		return nil, err
	}
	return resp.Appointment, nil
}

// UpdateStatus moves an appointment through its lifecycle.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	body := map[string]string{"status": string(status)}
	var resp struct {
		Appointment *domain.Appointment `json:"appointment"`
	}
	if err := s.api.Put(ctx, "/appointments/"+url.PathEscape(id)+"/status", body, &resp); err != nil {
		return nil, err
	}
	return resp.Appointment, nil
}

func (s *AppointmentService) Cancel(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/appointments/"+url.PathEscape(id))
}

// BookedTimes returns the taken "HH:MM" starts for a vet on a date, the raw
// input the slot generator subtracts from the weekly template.
func (s *AppointmentService) BookedTimes(ctx context.Context, vetID, date string) ([]string, error) {
	path := "/vets/" + url.PathEscape(vetID) + "/booked?date=" + url.QueryEscape(date)
	var resp struct {
		Times []string `json:"times"`
	}
	if err := s.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Times, nil
}
