package routes

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/configs"
	"chilume_backend/internals/constants"
	"chilume_backend/internals/docstore"
	eventService "chilume_backend/internals/features/events/service"
	regService "chilume_backend/internals/features/registrations/service"
	"chilume_backend/internals/features/users/auth/identity"
	"chilume_backend/internals/logger"
	"chilume_backend/internals/metrics"
	authMiddleware "chilume_backend/internals/middlewares/auth"
	routeDetails "chilume_backend/internals/route/details"
)

var startTime time.Time

// Deps are the collaborators built once at startup.
type Deps struct {
	Config   configs.AppConfig
	Store    docstore.Store
	Identity identity.Provider
	Notifier regService.Notifier
	Metrics  *metrics.Metrics
}

func SetupRoutes(app *fiber.App, deps Deps) {
	startTime = time.Now()

	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}
	BaseRoutes(app, deps)

	catalog := eventService.NewCatalog(deps.Store, deps.Config.SnapshotTTL)

	opts := []regService.Option{}
	if deps.Notifier != nil {
		opts = append(opts, regService.WithNotifier(deps.Notifier))
	}
	if deps.Metrics != nil {
		opts = append(opts, regService.WithRecorder(deps.Metrics))
	}
	registrations := regService.NewService(catalog, deps.Store, deps.Store, opts...)

	// ===================== PUBLIC / AUTH =====================
	logger.LogI("mounting public and auth routes")
	public := app.Group("/api/public")
	routeDetails.PublicRoutes(public, deps.Store, catalog, registrations)

	auth := app.Group("/api/auth")
	routeDetails.AuthRoutes(auth, deps.Identity, deps.Store, deps.Config)

	// ===================== ADMIN =====================
	logger.LogI("mounting admin routes")
	const adminPrefix = "/api/a"
	admin := app.Group(adminPrefix,
		segmentScoped(adminPrefix, authMiddleware.AuthMiddleware(deps.Identity, deps.Store)),
		segmentScoped(adminPrefix, authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("the organizer dashboard"), constants.AdminRoles)),
	)
	routeDetails.AdminRoutes(admin, deps.Store, catalog)
}

// segmentScoped runs h only under whole path segments of prefix. Group
// middleware is matched by plain string prefix, so "/api/a" also sees
// "/api/auth/..." and "/api/abc".
func segmentScoped(prefix string, h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := c.Path()
		if !c.App().Config().CaseSensitive {
			p = strings.ToLower(p)
		}
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return h(c)
		}
		return c.Next()
	}
}
