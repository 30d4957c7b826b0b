package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"event-rental/internal/authz"
	"event-rental/internal/controllers"
	"event-rental/internal/entities"
	"event-rental/internal/services"
	"event-rental/pkg/middleware"
)

func runInventoryRouter(
	secureGroup *echo.Group,
	taxonomyService services.TaxonomyServiceInterface,
	equipmentService services.EquipmentServiceInterface,
	exportService services.InventoryExportServiceInterface,
	logger *zap.Logger,
) {
	gk := authz.NewGatekeeper()
	inventory := secureGroup.Group("/inventory")

	taxonomyAccess := middleware.RequireAccess(gk, authz.ResourceTaxonomy, logger)
	for _, kind := range entities.TaxonomyKinds {
		ctrl := controllers.NewTaxonomyController(taxonomyService, kind, logger)
		mount(inventory, "/"+string(kind), crud{
			list:   ctrl.GetItems,
			find:   ctrl.FindItem,
			create: ctrl.CreateItem,
			update: ctrl.UpdateItem,
			remove: ctrl.DeleteItem,
		}, taxonomyAccess)
	}

	equipmentAccess := middleware.RequireAccess(gk, authz.ResourceEquipment, logger)
	ctrl := controllers.NewEquipmentController(equipmentService, exportService, logger)
	inventory.GET("/equipment/export", ctrl.ExportEquipment, equipmentAccess)
	inventory.GET("/equipment/export/", ctrl.ExportEquipment, equipmentAccess)
	mount(inventory, "/equipment", crud{
		list:   ctrl.GetEquipment,
		find:   ctrl.FindEquipment,
		create: ctrl.CreateEquipment,
		update: ctrl.UpdateEquipment,
		remove: ctrl.DeleteEquipment,
	}, equipmentAccess)
}
