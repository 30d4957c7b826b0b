package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"event-rental/internal/authz"
	"event-rental/internal/controllers"
	"event-rental/internal/services"
	"event-rental/pkg/middleware"
)

func runVenueRouter(secureGroup *echo.Group, venueService services.VenueServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewVenueController(venueService, logger)
	access := middleware.RequireAccess(authz.NewGatekeeper(), authz.ResourceVenue, logger)

	mount(secureGroup, "/venue", crud{
		list:   ctrl.GetVenues,
		find:   ctrl.FindVenue,
		create: ctrl.CreateVenue,
		update: ctrl.UpdateVenue,
		remove: ctrl.DeleteVenue,
	}, access)
}

func runClientRouter(secureGroup *echo.Group, customerService services.CustomerServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewCustomerController(customerService, logger)
	access := middleware.RequireAccess(authz.NewGatekeeper(), authz.ResourceCustomer, logger)

	mount(secureGroup, "/client", crud{
		list:   ctrl.GetCustomers,
		find:   ctrl.FindCustomer,
		create: ctrl.CreateCustomer,
		update: ctrl.UpdateCustomer,
		remove: ctrl.DeleteCustomer,
	}, access)
}
