package stub

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vetdesk-app/vetdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Auth           *AuthHandler
	Directory      *DirectoryHandler
	Scheduling     *SchedulingHandler
	AuthMiddleware *AuthMiddleware
}

// RegisterRoutes wires the REST surface the front-end consumes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive", "service": "vetdesk-stub"})
	})

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/menu/client", cfg.Directory.ClientMenu)

	protected.Get("/clinics", cfg.Directory.ListClinics)
	protected.Get("/clinics/:id", cfg.Directory.GetClinic)
	admins := []auth.CanonicalRole{auth.RoleClinicAdmin, auth.RoleSuperAdmin}
	protected.Post("/clinics", RequireRole(auth.RoleSuperAdmin), cfg.Directory.CreateClinic)
	protected.Put("/clinics/:id", RequireRole(admins...), cfg.Directory.UpdateClinic)
	protected.Delete("/clinics/:id", RequireRole(auth.RoleSuperAdmin), cfg.Directory.DeleteClinic)

	protected.Get("/users", cfg.Directory.ListUsers)
	protected.Post("/users", RequireRole(admins...), cfg.Directory.CreateUser)
	protected.Put("/users/:id", cfg.Directory.UpdateUser)
	protected.Delete("/users/:id", RequireRole(admins...), cfg.Directory.DeleteUser)

	protected.Get("/pets", cfg.Directory.ListPets)
	protected.Post("/pets", cfg.Directory.CreatePet)
	protected.Put("/pets/:id", cfg.Directory.UpdatePet)
	protected.Delete("/pets/:id", cfg.Directory.DeletePet)

	protected.Get("/catalog/species", cfg.Directory.ListSpecies)
	protected.Get("/catalog/breeds", cfg.Directory.ListBreeds)
	protected.Get("/catalog/services", cfg.Directory.ListServices)

	protected.Get("/appointments", cfg.Scheduling.ListAppointments)
	protected.Post("/appointments", cfg.Scheduling.CreateAppointment)
	protected.Put("/appointments/:id/status", cfg.Scheduling.UpdateAppointmentStatus)
	protected.Delete("/appointments/:id", cfg.Scheduling.DeleteAppointment)

	protected.Get("/vets/:id/availability", cfg.Scheduling.GetAvailability)
	protected.Put("/vets/:id/availability", cfg.Scheduling.PutAvailability)
	protected.Get("/vets/:id/booked", cfg.Scheduling.BookedTimes)
}
