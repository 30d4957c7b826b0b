package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"event-rental/internal/controllers"
	"event-rental/internal/services"
)

func runAuthRouter(public, secure *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(authService, logger)

	for _, p := range []string{"/user/token", "/user/token/"} {
		public.POST(p, authCtrl.Login)
	}
	for _, p := range []string{"/user/token/refresh", "/user/token/refresh/"} {
		public.POST(p, authCtrl.RefreshToken)
	}
	for _, p := range []string{"/user/me", "/user/me/"} {
		secure.GET(p, authCtrl.Me)
	}
}
