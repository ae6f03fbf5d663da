package stub

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vetdesk-app/vetdesk/internal/config"
)

// NewApp assembles the stub backend. The returned store is exposed so tests
// and the CLI seeder can inspect or extend fixtures.
func NewApp(cfg config.StubConfig, logger *zap.Logger) (*fiber.App, *Store, error) {
	store := NewStore()
	if cfg.SeedFixtures {
		if err := store.Seed(cfg.BcryptCost); err != nil {
			return nil, nil, err
		}
	}

	tokens := NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterMiddlewares(app, logger)
	RegisterRoutes(app, RouteConfig{
		Auth:           NewAuthHandler(store, tokens, cfg.BcryptCost),
		Directory:      NewDirectoryHandler(store, cfg.BcryptCost),
		Scheduling:     NewSchedulingHandler(store),
		AuthMiddleware: NewAuthMiddleware(tokens, store),
	})

	return app, store, nil
}
