package service

import (
	"context"
	"net/url"

	"github.com/vetdesk-app/vetdesk/internal/apiclient"
	"github.com/vetdesk-app/vetdesk/internal/domain"
)

// UserService covers staff/user management and profile editing.
type UserService struct {
	api *apiclient.Client
}

// NewUserService builds the service.
func NewUserService(api *apiclient.Client) *UserService {
	return &UserService{api: api}
}

// UserInput carries user create/update form fields.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
	ClinicID string `json:"clinic_id,omitempty"`
}

// List fetches users, optionally filtered by raw backend role string.
func (s *UserService) List(ctx context.Context, role string) ([]domain.User, error) {
	path := "/users"
	if role != "" {
		path += "?role=" + url.QueryEscape(role)
	}
	var resp struct {
		Users []domain.User `json:"users"`
	}
	if err := s.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (s *UserService) Create(ctx context.Context, input UserInput) (*domain.User, error) {
	var resp struct {
		User *domain.User `json:"user"`
	}
	if err := s.api.Post(ctx, "/users", input, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (s *UserService) Update(ctx context.Context, id string, input UserInput) (*domain.User, error) {
	var resp struct {
		User *domain.User `json:"user"`
	}
	if err := s.api.Put(ctx, "/users/"+url.PathEscape(id), input, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/users/"+url.PathEscape(id))
}
