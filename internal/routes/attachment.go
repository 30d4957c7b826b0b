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

func runEventRouter(
	secureGroup *echo.Group,
	eventService services.EventServiceInterface,
	attachmentService services.AttachmentServiceInterface,
	logger *zap.Logger,
) {
	gk := authz.NewGatekeeper()
	events := secureGroup.Group("/event")

	eventCtrl := controllers.NewEventController(eventService, logger)
	mount(events, "/event", crud{
		list:   eventCtrl.GetEvents,
		find:   eventCtrl.FindEvent,
		create: eventCtrl.CreateEvent,
		update: eventCtrl.UpdateEvent,
		remove: eventCtrl.DeleteEvent,
	}, middleware.RequireAccess(gk, authz.ResourceEvent, logger))

	attachments := []struct {
		path     string
		kind     entities.EventAttachmentKind
		resource string
	}{
		{"/event_photo", entities.EventPhotoKind, authz.ResourceEventPhoto},
		{"/event_file", entities.EventFileKind, authz.ResourceEventFile},
	}
	for _, a := range attachments {
		ctrl := controllers.NewAttachmentController(attachmentService, a.kind, logger)
		mount(events, a.path, crud{
			list:   ctrl.GetAttachments,
			find:   ctrl.FindAttachment,
			create: ctrl.CreateAttachment,
			update: ctrl.UpdateAttachment,
			remove: ctrl.DeleteAttachment,
		}, middleware.RequireAccess(gk, a.resource, logger))
	}
}
