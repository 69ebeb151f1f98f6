package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/auth"
	checkoutcontroller "github.com/junaidrashid-git/biryani-house/controllers/checkout"
	qrcontroller "github.com/junaidrashid-git/biryani-house/controllers/qr"
	userControllers "github.com/junaidrashid-git/biryani-house/controllers/user"
	"github.com/junaidrashid-git/biryani-house/orders"
	"github.com/junaidrashid-git/biryani-house/session"
	"go.uber.org/zap"
)

// Deps is everything the route groups need.
type Deps struct {
	Auth      *auth.Service
	Sessions  *session.Registry
	Orders    orders.Store
	QRFiles   qrcontroller.Store
	Users     userControllers.Store
	PaymentQR checkoutcontroller.PaymentQRFunc
	JWTSecret string
	APIKey    string
	UploadDir string
	PublicURL string
	Logger    *zap.Logger
}

// SetupRoutes is the single entry-point that wires up the public, user and
// admin route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	SetupPublicRoutes(r, d)
	SetupAuthRoutes(r, d)
	SetupUserRoutes(r, d)
	SetupAdminRoutes(r, d)
}
