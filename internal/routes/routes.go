package routes

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"event-rental/internal/controllers"
	"event-rental/internal/repositories"
	"event-rental/internal/services"
	"event-rental/pkg/api"
	"event-rental/pkg/config"
	"event-rental/pkg/filestorage"
	"event-rental/pkg/metrics"
	"event-rental/pkg/middleware"
	"event-rental/pkg/service"
	"event-rental/pkg/validation"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth        services.AuthServiceInterface
	Principals  services.PrincipalServiceInterface
	Venues      services.VenueServiceInterface
	Customers   services.CustomerServiceInterface
	Taxonomy    services.TaxonomyServiceInterface
	Equipment   services.EquipmentServiceInterface
	Export      services.InventoryExportServiceInterface
	Events      services.EventServiceInterface
	Attachments services.AttachmentServiceInterface
}

// NewServices wires repositories and services over the pool and cache.
func NewServices(
	dbConn *pgxpool.Pool,
	cache repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	fileStorage filestorage.FileStorageInterface,
	m *metrics.Metrics,
	validator *validation.CustomValidator,
	cfg *config.Config,
	logger *zap.Logger,
) *Services {
	txManager := repositories.NewTxManager(dbConn)

	// --- repositories ---
	venueRepo := repositories.NewVenueRepository(dbConn, logger)
	customerRepo := repositories.NewCustomerRepository(dbConn, logger)
	employeeRepo := repositories.NewEmployeeRepository(dbConn, logger)
	taxonomyRepo := repositories.NewTaxonomyRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	eventRepo := repositories.NewEventRepository(dbConn, logger)
	attachmentRepo := repositories.NewAttachmentRepository(dbConn, logger)

	// --- services ---
	resolver := services.NewTaxonomyResolver(taxonomyRepo, m.Taxonomy, logger)
	assembler := services.NewAssembler(validator, resolver, venueRepo, customerRepo, employeeRepo, equipmentRepo)
	principals := services.NewPrincipalService(employeeRepo, cache, cfg.Auth.PrincipalCacheTTL, logger)

	return &Services{
		Auth: services.NewAuthService(employeeRepo, cache, jwtSvc, principals, m.Auth,
			cfg.Auth.MaxLoginAttempts, cfg.Auth.LockoutDuration, logger),
		Principals:  principals,
		Venues:      services.NewVenueService(venueRepo, txManager, assembler, logger),
		Customers:   services.NewCustomerService(customerRepo, txManager, assembler, logger),
		Taxonomy:    services.NewTaxonomyService(taxonomyRepo, resolver, txManager, assembler, logger),
		Equipment:   services.NewEquipmentService(equipmentRepo, txManager, assembler, logger),
		Export:      services.NewInventoryExportService(equipmentRepo, logger),
		Events:      services.NewEventService(eventRepo, attachmentRepo, txManager, assembler, fileStorage, logger),
		Attachments: services.NewAttachmentService(attachmentRepo, eventRepo, txManager, fileStorage, logger),
	}
}

// crud holds the five handlers of a list/detail resource.
type crud struct {
	list, find, create, update, remove echo.HandlerFunc
}

// mount registers a resource with and without the trailing slash.
func mount(g *echo.Group, prefix string, h crud, m ...echo.MiddlewareFunc) {
	for _, base := range []string{prefix, prefix + "/"} {
		g.GET(base, h.list, m...)
		g.POST(base, h.create, m...)
	}
	for _, item := range []string{prefix + "/:id", prefix + "/:id/"} {
		g.GET(item, h.find, m...)
		g.PUT(item, h.update, m...)
		g.PATCH(item, h.update, m...)
		g.DELETE(item, h.remove, m...)
	}
}

func InitRouter(
	e *echo.Echo,
	svc *Services,
	jwtSvc service.JWTService,
	m *metrics.Metrics,
	health map[string]controllers.Pinger,
	uploadDir string,
	logger *zap.Logger,
) {
	logger.Info("registering routes")

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if api.StatusFor(err) >= http.StatusInternalServerError {
			logger.Error("unhandled error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		}
		_ = api.ErrorResponse(c, err)
	}

	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	if uploadDir != "" {
		e.Static("/uploads", uploadDir)
	}

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, svc.Principals, logger)
	secureGroup := api.Group("", authMW.Auth)

	api.GET("/health", controllers.NewHealthController(health, logger).Health)

	runAuthRouter(api, secureGroup, svc.Auth, logger)
	runVenueRouter(secureGroup, svc.Venues, logger)
	runClientRouter(secureGroup, svc.Customers, logger)
	runInventoryRouter(secureGroup, svc.Taxonomy, svc.Equipment, svc.Export, logger)
	runEventRouter(secureGroup, svc.Events, svc.Attachments, logger)

	logger.Info("routes registered", zap.Int("count", len(e.Routes())))
}
