package service

import (
	"context"
	"net/url"

	"github.com/vetdesk-app/vetdesk/internal/apiclient"
	"github.com/vetdesk-app/vetdesk/internal/domain"
)

// CatalogService reads the shared reference catalogs.
type CatalogService struct {
	api *apiclient.Client
}

// NewCatalogService builds the service.
func NewCatalogService(api *apiclient.Client) *CatalogService {
	return &CatalogService{api: api}
}

func (s *CatalogService) Species(ctx context.Context) ([]domain.Species, error) {
	var resp struct {
		Species []domain.Species `json:"species"`
	}
	if err := s.api.Get(ctx, "/catalog/species", &resp); err != nil {
		return nil, err
	}
	return resp.Species, nil
}

func (s *CatalogService) Breeds(ctx context.Context, speciesID string) ([]domain.Breed, error) {
	path := "/catalog/breeds"
	if speciesID != "" {
		path += "?species_id=" + url.QueryEscape(speciesID)
	}
	var resp struct {
		Breeds []domain.Breed `json:"breeds"`
	}
	if err := s.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Breeds, nil
}

func (s *CatalogService) Services(ctx context.Context) ([]domain.ClinicService, error) {
	var resp struct {
		Services []domain.ClinicService `json:"services"`
	}
	if err := s.api.Get(ctx, "/catalog/services", &resp); err != nil {
		return nil, err
	}
	return resp.Services, nil
}
