package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/biryani-house/controllers/order"
	qrcontroller "github.com/junaidrashid-git/biryani-house/controllers/qr"
	userControllers "github.com/junaidrashid-git/biryani-house/controllers/user"
	"github.com/junaidrashid-git/biryani-house/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.APIKey))
	{
		adminGroup.GET("/users", userControllers.GetAllUsers(d.Users))

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(d.Orders))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(d.Orders))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(d.Orders, d.Logger))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(d.Orders, d.Logger))
		}

		// ─────────── Payment QR ───────────
		qrAdmin := adminGroup.Group("/qr")
		{
			qrAdmin.POST("/upload", qrcontroller.HandleQRFileUpload(d.QRFiles, d.UploadDir, d.PublicURL, d.Logger))
			qrAdmin.GET("", qrcontroller.ListQRFilesHandler(d.QRFiles))
			qrAdmin.DELETE("/:id", qrcontroller.DeleteQRFileHandler(d.QRFiles, d.UploadDir, d.Logger))
		}
	}
}
