package checkoutcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/cart"
	"github.com/junaidrashid-git/biryani-house/checkout"
	"github.com/junaidrashid-git/biryani-house/middleware"
)

// RespondError writes the response for an error coming out of a checkout flow.
func RespondError(c *gin.Context, err error) {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Please correct the highlighted fields",
			"fields": verr.Fields,
		})
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "ignored": true})
	case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrSubmissionFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": checkout.SubmissionFailedNotice})
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// CurrentFlow returns the caller's flow or answers 401 and returns nil.
func CurrentFlow(c *gin.Context) *checkout.Flow {
	s := middleware.CurrentSession(c)
	if s == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return nil
	}
	return s.Flow
}
