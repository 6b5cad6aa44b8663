package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/agro-link/agro_link/internal/chat"
	"github.com/agro-link/agro_link/internal/config"
	"github.com/agro-link/agro_link/internal/delivery"
	"github.com/agro-link/agro_link/internal/geo"
	"github.com/agro-link/agro_link/internal/middleware"
	"github.com/agro-link/agro_link/internal/notification"
	"github.com/agro-link/agro_link/internal/registration"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Session())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	var draftStore registration.DraftStore
	if d.Cache != nil {
		draftStore = registration.NewRedisDraftStore(d.Cache, d.Cfg.DraftSecret, d.Cfg.DraftTTL)
	} else {
		draftStore = registration.NewMemoryStore()
	}

	var registrar registration.Registrar
	if d.Cfg.RegistrarURL != "" {
		registrar = registration.NewHTTPRegistrar(d.Cfg.RegistrarURL, nil)
	} else {
		registrar = registration.StaticRegistrar{}
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	flow := registration.NewFlow(draftStore, registrar, notifier, d.Logger)
	registrationHandler := registration.NewHandler(flow)

	var listingRepo delivery.Repository
	if d.DB != nil {
		listingRepo = delivery.NewPostgresRepository(d.DB)
	} else {
		listingRepo = delivery.NewMemoryRepository()
	}
	deliveryHandler := delivery.NewHandler(delivery.NewService(listingRepo, geo.SriLankaBounds))

	chatHandler := chat.NewHandler(chat.NewService(d.Cache, chat.StaticSource{}, d.Logger))

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	rateLimiter := middleware.SubmitRateLimit(d.Cache, 5)
	RegisterRegistrationRoutes(api, registrationHandler, rateLimiter)
	RegisterDeliveryRoutes(api, deliveryHandler)
	RegisterChatRoutes(api, chatHandler)

	return nil
}
