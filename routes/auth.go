package routes

import (
	"github.com/gin-gonic/gin"
	menucontroller "github.com/junaidrashid-git/biryani-house/controllers/menu"
	qrcontroller "github.com/junaidrashid-git/biryani-house/controllers/qr"
)

// SetupPublicRoutes registers endpoints that need no token.
func SetupPublicRoutes(r *gin.Engine, d Deps) {
	r.GET("/menu", menucontroller.GetMenu())
	r.GET("/payment/qr", qrcontroller.GetPaymentQRHandler(d.PaymentQR))
}

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/google-user", d.Auth.GoogleUserLogin())
		authGroup.POST("/guest", d.Auth.CreateGuestUser())
	}
}
