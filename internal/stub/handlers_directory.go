package stub

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/vetdesk-app/vetdesk/internal/auth"
	"github.com/vetdesk-app/vetdesk/internal/domain"
	apperrors "github.com/vetdesk-app/vetdesk/pkg/util"
)

// DirectoryHandler serves clinics, users, pets, catalogs and the dynamic
// client menu.
type DirectoryHandler struct {
	store      *Store
	bcryptCost int
}

// NewDirectoryHandler constructs the handler.
func NewDirectoryHandler(store *Store, bcryptCost int) *DirectoryHandler {
	return &DirectoryHandler{store: store, bcryptCost: bcryptCost}
}

// --- clinics ---

func (h *DirectoryHandler) ListClinics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"clinics": h.store.ListClinics()})
}

func (h *DirectoryHandler) GetClinic(c *fiber.Ctx) error {
	clinic, ok := h.store.ClinicByID(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("clinic", nil)
	}
	return c.JSON(fiber.Map{"clinic": clinic})
}

func (h *DirectoryHandler) CreateClinic(c *fiber.Ctx) error {
	var clinic domain.Clinic
	if err := c.BodyParser(&clinic); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if clinic.Name == "" {
		return apperrors.NewValidationError("validation failed", map[string]any{"name": "name is required"})
	}
	clinic.ID = ""
	h.store.CreateClinic(&clinic)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"clinic": clinic})
}

func (h *DirectoryHandler) UpdateClinic(c *fiber.Ctx) error {
	var clinic domain.Clinic
	if err := c.BodyParser(&clinic); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	clinic.ID = c.Params("id")
	if !h.store.UpdateClinic(&clinic) {
		return apperrors.NewNotFound("clinic", nil)
	}
	return c.JSON(fiber.Map{"clinic": clinic})
}

func (h *DirectoryHandler) DeleteClinic(c *fiber.Ctx) error {
	if !h.store.DeleteClinic(c.Params("id")) {
		return apperrors.NewNotFound("clinic", nil)
	}
	return c.SendStatus(http.StatusNoContent)
}

// --- users ---

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ClinicID string `json:"clinic_id"`
}

func (h *DirectoryHandler) ListUsers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"users": h.store.ListUsers(c.Query("role"))})
}

func (h *DirectoryHandler) CreateUser(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("validation failed", map[string]any{
			"fields": "name, email and password are required",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	clinicID := req.ClinicID
	if principal.Role == auth.RoleClinicAdmin {
		// clinic admins only manage their own clinic
		clinicID = principal.User.ClinicID
	}

	account := &Account{
		User: domain.User{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Role:     req.Role,
			ClinicID: clinicID,
		},
		PasswordHash: string(hash),
	}
	if !h.store.CreateUser(account) {
		return apperrors.NewConflict("email already registered", nil)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"user": account.User})
}

func (h *DirectoryHandler) UpdateUser(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)
	id := c.Params("id")

	isSelf := principal.User.ID == id
	isManager := principal.Role == auth.RoleClinicAdmin || principal.Role == auth.RoleSuperAdmin
	if !isSelf && !isManager {
		return apperrors.NewForbidden("cannot edit other accounts")
	}

	account, ok := h.store.UserByID(id)
	if !ok {
		return apperrors.NewNotFound("user", nil)
	}

	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Name != "" {
		account.Name = req.Name
	}
	if req.Email != "" {
		account.Email = req.Email
	}
	if req.Phone != "" {
		account.Phone = req.Phone
	}
	if req.Role != "" && isManager {
		account.Role = req.Role
		account.Roles = nil
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		account.PasswordHash = string(hash)
	}

	if !h.store.UpdateUser(account) {
		return apperrors.NewNotFound("user", nil)
	}
	return c.JSON(fiber.Map{"user": account.User})
}

func (h *DirectoryHandler) DeleteUser(c *fiber.Ctx) error {
	if !h.store.DeleteUser(c.Params("id")) {
		return apperrors.NewNotFound("user", nil)
	}
	return c.SendStatus(http.StatusNoContent)
}

// --- pets ---

func (h *DirectoryHandler) ListPets(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)
	ownerID := c.Query("owner_id")
	if principal.Role == auth.RoleClient {
		// clients only ever see their own animals
		ownerID = principal.User.ID
	}
	return c.JSON(fiber.Map{"pets": h.store.ListPets(ownerID)})
}

func (h *DirectoryHandler) CreatePet(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)
	var pet domain.Pet
	if err := c.BodyParser(&pet); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if pet.Name == "" {
		return apperrors.NewValidationError("validation failed", map[string]any{"name": "name is required"})
	}
	if principal.Role == auth.RoleClient || pet.OwnerID == "" {
		pet.OwnerID = principal.User.ID
	}
	pet.ID = ""
	h.store.CreatePet(&pet)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"pet": pet})
}

func (h *DirectoryHandler) UpdatePet(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)
	existing, ok := h.store.PetByID(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("pet", nil)
	}
	if principal.Role == auth.RoleClient && existing.OwnerID != principal.User.ID {
		return apperrors.NewForbidden("not your pet")
	}

	var pet domain.Pet
	if err := c.BodyParser(&pet); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	pet.ID = existing.ID
	pet.OwnerID = existing.OwnerID
	if !h.store.UpdatePet(&pet) {
		return apperrors.NewNotFound("pet", nil)
	}
	return c.JSON(fiber.Map{"pet": pet})
}

func (h *DirectoryHandler) DeletePet(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)
	existing, ok := h.store.PetByID(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("pet", nil)
	}
	if principal.Role == auth.RoleClient && existing.OwnerID != principal.User.ID {
		return apperrors.NewForbidden("not your pet")
	}
	h.store.DeletePet(existing.ID)
	return c.SendStatus(http.StatusNoContent)
}

// --- catalogs and menu ---

func (h *DirectoryHandler) ListSpecies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"species": h.store.ListSpecies()})
}

func (h *DirectoryHandler) ListBreeds(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"breeds": h.store.ListBreeds(c.Query("species_id"))})
}

func (h *DirectoryHandler) ListServices(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"services": h.store.ListServices()})
}

func (h *DirectoryHandler) ClientMenu(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"items": h.store.ClientMenu()})
}
