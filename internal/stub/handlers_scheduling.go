package stub

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vetdesk-app/vetdesk/internal/auth"
	"github.com/vetdesk-app/vetdesk/internal/domain"
	apperrors "github.com/vetdesk-app/vetdesk/pkg/util"
)

// SchedulingHandler serves appointments, weekly availability and booked times.
type SchedulingHandler struct {
	store *Store
}

// NewSchedulingHandler constructs the handler.
func NewSchedulingHandler(store *Store) *SchedulingHandler {
	return &SchedulingHandler{store: store}
}

// ListAppointments handles GET /api/appointments?scope=mine|vet|clinic.
func (h *SchedulingHandler) ListAppointments(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)

	var ownerID, vetID, clinicID string
	switch c.Query("scope", "mine") {
	case "vet":
		if principal.Role != auth.RoleVeterinarian {
			return apperrors.NewForbidden("veterinarian scope requires a vet account")
		}
		vetID = principal.User.ID
	case "clinic":
		if principal.Role != auth.RoleClinicAdmin && principal.Role != auth.RoleSuperAdmin {
			return apperrors.NewForbidden("clinic scope requires an admin account")
		}
		clinicID = principal.User.ClinicID
	default:
		ownerID = principal.User.ID
	}

	return c.JSON(fiber.Map{"appointments": h.store.ListAppointments(ownerID, vetID, clinicID)})
}

// CreateAppointment handles POST /api/appointments.
func (h *SchedulingHandler) CreateAppointment(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)

	var appt domain.Appointment
	if err := c.BodyParser(&appt); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	details := map[string]any{}
	if appt.PetID == "" {
		details["pet_id"] = "pet is required"
	}
	if appt.VetID == "" {
		details["vet_id"] = "veterinarian is required"
	}
	if appt.Date == "" {
		details["date"] = "date is required"
	}
	if appt.Time == "" {
		details["time"] = "time is required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}

	if pet, ok := h.store.PetByID(appt.PetID); !ok {
		return apperrors.NewNotFound("pet", nil)
	} else if principal.Role == auth.RoleClient && pet.OwnerID != principal.User.ID {
		return apperrors.NewForbidden("not your pet")
	}

	appt.ID = ""
	appt.Status = domain.AppointmentStatusScheduled
	if !h.store.CreateAppointment(&appt) {
		return apperrors.NewConflict("slot already booked", map[string]any{
			"date": appt.Date, "time": appt.Time,
		})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"appointment": appt})
}

// UpdateAppointmentStatus handles PUT /api/appointments/:id/status.
func (h *SchedulingHandler) UpdateAppointmentStatus(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)
	if principal.Role == auth.RoleClient {
		return apperrors.NewForbidden("clients cancel via delete")
	}

	appt, ok := h.store.AppointmentByID(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("appointment", nil)
	}

	var req struct {
		Status domain.AppointmentStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	switch req.Status {
	case domain.AppointmentStatusScheduled, domain.AppointmentStatusCompleted, domain.AppointmentStatusCancelled:
	default:
		return apperrors.NewValidationError("validation failed", map[string]any{"status": "unknown status"})
	}

	appt.Status = req.Status
	h.store.UpdateAppointment(appt)
	return c.JSON(fiber.Map{"appointment": appt})
}

// DeleteAppointment handles DELETE /api/appointments/:id (client cancel).
func (h *SchedulingHandler) DeleteAppointment(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)

	appt, ok := h.store.AppointmentByID(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("appointment", nil)
	}
	if principal.Role == auth.RoleClient {
		pet, ok := h.store.PetByID(appt.PetID)
		if !ok || pet.OwnerID != principal.User.ID {
			return apperrors.NewForbidden("not your appointment")
		}
	}
	h.store.DeleteAppointment(appt.ID)
	return c.SendStatus(http.StatusNoContent)
}

// GetAvailability handles GET /api/vets/:id/availability.
func (h *SchedulingHandler) GetAvailability(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"availability": h.store.AvailabilityFor(c.Params("id"))})
}

// PutAvailability handles PUT /api/vets/:id/availability. Vets may only edit
// their own template; admins may edit any.
func (h *SchedulingHandler) PutAvailability(c *fiber.Ctx) error {
	principal, _ := PrincipalFromContext(c)
	vetID := c.Params("id")

	if principal.Role == auth.RoleVeterinarian && principal.User.ID != vetID {
		return apperrors.NewForbidden("cannot edit another vet's availability")
	}
	if principal.Role == auth.RoleClient {
		return apperrors.NewForbidden("insufficient role")
	}

	var req struct {
		Availability domain.WeeklyAvailability `json:"availability"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	h.store.SetAvailability(vetID, req.Availability)
	return c.SendStatus(http.StatusNoContent)
}

// BookedTimes handles GET /api/vets/:id/booked?date=YYYY-MM-DD.
func (h *SchedulingHandler) BookedTimes(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return apperrors.NewBadRequest("date query parameter required")
	}
	return c.JSON(fiber.Map{"times": h.store.BookedTimes(c.Params("id"), date)})
}
