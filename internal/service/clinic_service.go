package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vetdesk-app/vetdesk/internal/apiclient"
	"github.com/vetdesk-app/vetdesk/internal/domain"
)

// ClinicService covers the super-admin clinic CRUD screens.
type ClinicService struct {
	api *apiclient.Client
}

// NewClinicService builds the service.
func NewClinicService(api *apiclient.Client) *ClinicService {
	return &ClinicService{api: api}
}

// ClinicInput carries clinic create/update form fields.
type ClinicInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Active  bool   `json:"active"`
}

func (s *ClinicService) List(ctx context.Context) ([]domain.Clinic, error) {
	var resp struct {
		Clinics []domain.Clinic `json:"clinics"`
	}
	if err := s.api.Get(ctx, "/clinics", &resp); err != nil {
		return nil, err
	}
	return resp.Clinics, nil
}

func (s *ClinicService) Get(ctx context.Context, id string) (*domain.Clinic, error) {
	var resp struct {
		Clinic *domain.Clinic `json:"clinic"`
	}
	if err := s.api.Get(ctx, "/clinics/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return resp.Clinic, nil
}

func (s *ClinicService) Create(ctx context.Context, input ClinicInput) (*domain.Clinic, error) {
	var resp struct {
		Clinic *domain.Clinic `json:"clinic"`
	}
	if err := s.api.Post(ctx, "/clinics", input, &resp); err != nil {
		return nil, err
	}
	return resp.Clinic, nil
}

func (s *ClinicService) Update(ctx context.Context, id string, input ClinicInput) (*domain.Clinic, error) {
	var resp struct {
		Clinic *domain.Clinic `json:"clinic"`
	}
	if err := s.api.Put(ctx, "/clinics/"+url.PathEscape(id), input, &resp); err != nil {
		return nil, err
	}
	return resp.Clinic, nil
}

func (s *ClinicService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("clinic id required")
	}
	return s.api.Delete(ctx, "/clinics/"+url.PathEscape(id))
}
