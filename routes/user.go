package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/biryani-house/controllers/cart"
	checkoutcontroller "github.com/junaidrashid-git/biryani-house/controllers/checkout"
	orderControllers "github.com/junaidrashid-git/biryani-house/controllers/order"
	userControllers "github.com/junaidrashid-git/biryani-house/controllers/user"
	"github.com/junaidrashid-git/biryani-house/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires a JWT with a live session.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(d.JWTSecret, d.Sessions))
	{
		userGroup.POST("/logout", d.Auth.Logout())

		// ──────────────── Profile ────────────────
		userGroup.GET("/profile", userControllers.GetUser(d.Users))
		userGroup.PUT("/profile", userControllers.UpdateUser(d.Users))

		// ──────────────── Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart())
			cartGroup.POST("", cartControllers.AddCartItem())
			cartGroup.PUT("/:item_id", cartControllers.UpdateCartItem())
			cartGroup.DELETE("/:item_id", cartControllers.DeleteCartItem())
		}

		// ──────────────── Checkout ────────────────
		checkoutGroup := userGroup.Group("/checkout")
		{
			checkoutGroup.GET("", checkoutcontroller.GetCheckout(d.PaymentQR))
			checkoutGroup.POST("/open", checkoutcontroller.OpenCart())
			checkoutGroup.POST("/close", checkoutcontroller.CloseCart())
			checkoutGroup.POST("/details", checkoutcontroller.ProceedToDetails())
			checkoutGroup.POST("/back", checkoutcontroller.BackToCart())
			checkoutGroup.POST("/submit", checkoutcontroller.SubmitDetails(d.PaymentQR))
			checkoutGroup.POST("/payment/confirm", checkoutcontroller.ConfirmPayment())
			checkoutGroup.POST("/payment/back", checkoutcontroller.BackToDetails())
		}

		// ──────────────── Order history ────────────────
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(d.Orders))
		userGroup.GET("/orders/:orderID", orderControllers.GetOrderByIDHandler(d.Orders))
	}
}
