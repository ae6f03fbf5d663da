package stub

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/vetdesk-app/vetdesk/internal/auth"
	"github.com/vetdesk-app/vetdesk/internal/domain"
	apperrors "github.com/vetdesk-app/vetdesk/pkg/util"
)

// AuthHandler exposes the auth endpoints the front-end session layer calls.
type AuthHandler struct {
	store      *Store
	tokens     *TokenManager
	bcryptCost int
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store *Store, tokens *TokenManager, bcryptCost int) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, bcryptCost: bcryptCost}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register, the client self-registration.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	details := map[string]any{}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "name is required"
	}
	if !strings.Contains(req.Email, "@") {
		details["email"] = "a valid email is required"
	}
	if len(req.Password) < 8 {
		details["password"] = "password must be at least 8 characters"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	account := &Account{
		User: domain.User{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
			Role:  "cliente",
		},
		PasswordHash: string(hash),
	}
	if !h.store.CreateUser(account) {
		return apperrors.NewValidationError("validation failed", map[string]any{
			"email": "email already registered",
		})
	}

	return h.respondWithToken(c, account, http.StatusCreated)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewBadRequest("email and password required")
	}

	account, ok := h.store.UserByEmail(req.Email)
	if !ok {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	return h.respondWithToken(c, account, http.StatusOK)
}

// Logout handles POST /api/auth/logout. The stub is stateless about tokens,
// so this only acknowledges.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"user": principal.User})
}

func (h *AuthHandler) respondWithToken(c *fiber.Ctx, account *Account, status int) error {
	token, _, err := h.tokens.GenerateToken(account.ID, auth.ResolveRole(&account.User))
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.Status(status).JSON(fiber.Map{
		"token":     token,
		"user":      account.User,
		"clinic_id": account.ClinicID,
	})
}
