package checkoutcontroller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/checkout"
)

// PaymentQRFunc returns the payment QR image URL shown in the online payment
// step, or "" when none is configured.
type PaymentQRFunc func(ctx context.Context) string

func view(c *gin.Context, flow *checkout.Flow, paymentQR PaymentQRFunc) gin.H {
	snap := flow.Snapshot()
	resp := gin.H{"checkout": snap}
	if snap.State == checkout.StateAwaitingPaymentConfirmation && paymentQR != nil {
		resp["payment_qr_url"] = paymentQR(c.Request.Context())
	}
	return resp
}

// GET /user/checkout
func GetCheckout(paymentQR PaymentQRFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow := CurrentFlow(c)
		if flow == nil {
			return
		}
		c.JSON(http.StatusOK, view(c, flow, paymentQR))
	}
}

// transition wraps a flow step that has no input and no order result.
func transition(step func(*checkout.Flow) error, paymentQR PaymentQRFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow := CurrentFlow(c)
		if flow == nil {
			return
		}
		if err := step(flow); err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view(c, flow, paymentQR))
	}
}

// POST /user/checkout/open
func OpenCart() gin.HandlerFunc {
	return transition((*checkout.Flow).OpenCart, nil)
}

// POST /user/checkout/close
func CloseCart() gin.HandlerFunc {
	return transition((*checkout.Flow).CloseCart, nil)
}

// POST /user/checkout/details
func ProceedToDetails() gin.HandlerFunc {
	return transition((*checkout.Flow).ProceedToDetails, nil)
}

// POST /user/checkout/back
func BackToCart() gin.HandlerFunc {
	return transition((*checkout.Flow).BackToCart, nil)
}

// POST /user/checkout/payment/back
func BackToDetails() gin.HandlerFunc {
	return transition((*checkout.Flow).BackToDetails, nil)
}

// POST /user/checkout/submit
//
// Cash on delivery answers 201 with the stored order. Online payment answers
// 200 with the payment step and its QR reference.
func SubmitDetails(paymentQR PaymentQRFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow := CurrentFlow(c)
		if flow == nil {
			return
		}

		var form checkout.ContactForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := flow.SubmitDetails(c.Request.Context(), form)
		if err != nil {
			RespondError(c, err)
			return
		}
		if order == nil {
			c.JSON(http.StatusOK, view(c, flow, paymentQR))
			return
		}

		resp := view(c, flow, nil)
		resp["message"] = "Order placed successfully"
		resp["order"] = order
		c.JSON(http.StatusCreated, resp)
	}
}

// POST /user/checkout/payment/confirm
func ConfirmPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		flow := CurrentFlow(c)
		if flow == nil {
			return
		}

		order, err := flow.ConfirmPayment(c.Request.Context())
		if err != nil {
			RespondError(c, err)
			return
		}

		resp := view(c, flow, nil)
		resp["message"] = "Order placed successfully"
		resp["order"] = order
		c.JSON(http.StatusCreated, resp)
	}
}
