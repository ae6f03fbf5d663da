package service

import (
	"context"
	"net/url"

	"github.com/vetdesk-app/vetdesk/internal/apiclient"
	"github.com/vetdesk-app/vetdesk/internal/domain"
)

// PetService covers the pet CRUD screens.
type PetService struct {
	api *apiclient.Client
}

// NewPetService builds the service.
func NewPetService(api *apiclient.Client) *PetService {
	return &PetService{api: api}
}

// PetInput carries pet create/update form fields.
type PetInput struct {
	Name      string `json:"name"`
	SpeciesID string `json:"species_id"`
	BreedID   string `json:"breed_id,omitempty"`
	OwnerID   string `json:"owner_id,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// List fetches pets, optionally restricted to one owner.
func (s *PetService) List(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	path := "/pets"
	if ownerID != "" {
		path += "?owner_id=" + url.QueryEscape(ownerID)
	}
	var resp struct {
		Pets []domain.Pet `json:"pets"`
	}
	if err := s.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Pets, nil
}

func (s *PetService) Create(ctx context.Context, input PetInput) (*domain.Pet, error) {
	var resp struct {
		Pet *domain.Pet `json:"pet"`
	}
	if err := s.api.Post(ctx, "/pets", input, &resp); err != nil {
		return nil, err
	}
	return resp.Pet, nil
}

func (s *PetService) Update(ctx context.Context, id string, input PetInput) (*domain.Pet, error) {
	var resp struct {
		Pet *domain.Pet `json:"pet"`
	}
	if err := s.api.Put(ctx, "/pets/"+url.PathEscape(id), input, &resp); err != nil {
		return nil, err
	}
	return resp.Pet, nil
}

func (s *PetService) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/pets/"+url.PathEscape(id))
}
