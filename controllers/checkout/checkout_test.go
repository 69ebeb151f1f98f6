package checkoutcontroller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/cart"
	"github.com/junaidrashid-git/biryani-house/checkout"
	"github.com/junaidrashid-git/biryani-house/menu"
	"github.com/junaidrashid-git/biryani-house/middleware"
	"github.com/junaidrashid-git/biryani-house/models"
	"github.com/junaidrashid-git/biryani-house/orders"
	"github.com/junaidrashid-git/biryani-house/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubmitter struct {
	err   error
	calls int
}

func (s *stubSubmitter) Submit(_ context.Context, userID string, contact models.ContactInfo, lines []cart.Line) (*models.Order, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	order := orders.BuildRecord(userID, contact, lines)
	order.ID = "order-1"
	return order, nil
}

type checkoutResponse struct {
	Checkout     checkout.Snapshot `json:"checkout"`
	PaymentQRURL *string           `json:"payment_qr_url"`
	Order        *models.Order     `json:"order"`
	Error        string            `json:"error"`
	Fields       map[string]string `json:"fields"`
	Ignored      bool              `json:"ignored"`
}

const (
	codForm    = `{"name":"Asha Rao","address":"12 MG Road, Bengaluru","phone":"9876543210","payment_method":"cash-on-delivery"}`
	onlineForm = `{"name":"Asha Rao","address":"12 MG Road, Bengaluru","phone":"+919876543210","payment_method":"online"}`
)

func setup(t *testing.T, sub *stubSubmitter) (*gin.Engine, *session.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := session.NewRegistry(func(id string) *checkout.Flow {
		return checkout.NewFlow(checkout.Params{Owner: id, Submitter: sub})
	})
	s := reg.Start("uid-1")

	qr := func(context.Context) string { return "https://cdn.example.com/uploads/qr.png" }

	r := gin.New()
	g := r.Group("/user/checkout", middleware.WithSession(s))
	g.GET("", GetCheckout(qr))
	g.POST("/open", OpenCart())
	g.POST("/close", CloseCart())
	g.POST("/details", ProceedToDetails())
	g.POST("/back", BackToCart())
	g.POST("/submit", SubmitDetails(qr))
	g.POST("/payment/confirm", ConfirmPayment())
	g.POST("/payment/back", BackToDetails())
	return r, s
}

func call(t *testing.T, r http.Handler, path, body string) (int, checkoutResponse) {
	t.Helper()
	method := http.MethodPost
	if path == "/user/checkout" {
		method = http.MethodGet
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp checkoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func addThali(t *testing.T, s *session.Session) {
	t.Helper()
	item, ok := menu.Lookup(2)
	require.True(t, ok)
	require.NoError(t, s.Flow.AddLine(item, 1, models.PreparationFryPiece))
}

func TestCheckout_CashOnDelivery(t *testing.T) {
	sub := &stubSubmitter{}
	r, s := setup(t, sub)
	addThali(t, s)

	code, resp := call(t, r, "/user/checkout/open", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, checkout.StateReviewingCart, resp.Checkout.State)

	code, resp = call(t, r, "/user/checkout/details", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, checkout.StateEnteringDetails, resp.Checkout.State)

	code, resp = call(t, r, "/user/checkout/submit", codForm)
	require.Equal(t, http.StatusCreated, code)
	require.NotNil(t, resp.Order)
	assert.Equal(t, "order-1", resp.Order.ID)
	assert.Equal(t, 180, resp.Order.TotalAmount)
	assert.Equal(t, checkout.StateBrowsing, resp.Checkout.State)
	assert.Equal(t, checkout.OutcomeCompleted, resp.Checkout.LastOutcome)
	assert.Empty(t, resp.Checkout.Lines)
	assert.Equal(t, 1, sub.calls)
}

func TestCheckout_OnlinePayment(t *testing.T) {
	sub := &stubSubmitter{}
	r, s := setup(t, sub)
	addThali(t, s)
	call(t, r, "/user/checkout/open", "")
	call(t, r, "/user/checkout/details", "")

	code, resp := call(t, r, "/user/checkout/submit", onlineForm)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, checkout.StateAwaitingPaymentConfirmation, resp.Checkout.State)
	require.NotNil(t, resp.PaymentQRURL)
	assert.Equal(t, "https://cdn.example.com/uploads/qr.png", *resp.PaymentQRURL)
	assert.Zero(t, sub.calls)

	code, resp = call(t, r, "/user/checkout/payment/back", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, checkout.StateEnteringDetails, resp.Checkout.State)
	require.NotNil(t, resp.Checkout.Contact)
	assert.Equal(t, "Asha Rao", resp.Checkout.Contact.Name)

	call(t, r, "/user/checkout/submit", onlineForm)
	code, resp = call(t, r, "/user/checkout/payment/confirm", "")
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, models.PaymentOnline, resp.Order.PaymentMethod)
	assert.Equal(t, 1, sub.calls)
}

func TestCheckout_SubmissionFailureKeepsCart(t *testing.T) {
	sub := &stubSubmitter{err: &orders.SubmissionError{Err: errors.New("connection refused")}}
	r, s := setup(t, sub)
	addThali(t, s)
	call(t, r, "/user/checkout/open", "")
	call(t, r, "/user/checkout/details", "")

	code, resp := call(t, r, "/user/checkout/submit", codForm)
	require.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, checkout.SubmissionFailedNotice, resp.Error)
	assert.NotContains(t, resp.Error, "connection refused")

	_, resp = call(t, r, "/user/checkout", "")
	assert.Equal(t, checkout.StateEnteringDetails, resp.Checkout.State)
	assert.Equal(t, checkout.OutcomeSubmissionFailed, resp.Checkout.LastOutcome)
	assert.Equal(t, 180, resp.Checkout.TotalAmount)
}

func TestCheckout_ValidationErrors(t *testing.T) {
	r, s := setup(t, &stubSubmitter{})
	addThali(t, s)
	call(t, r, "/user/checkout/open", "")
	call(t, r, "/user/checkout/details", "")

	code, resp := call(t, r, "/user/checkout/submit", `{"name":"A","address":"short","phone":"12345","payment_method":"card"}`)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, resp.Fields, "name")
	assert.Contains(t, resp.Fields, "address")
	assert.Contains(t, resp.Fields, "phone")
	assert.Contains(t, resp.Fields, "payment_method")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user/checkout/submit", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout_Refusals(t *testing.T) {
	r, _ := setup(t, &stubSubmitter{})

	code, _ := call(t, r, "/user/checkout/close", "")
	assert.Equal(t, http.StatusConflict, code)

	call(t, r, "/user/checkout/open", "")
	code, resp := call(t, r, "/user/checkout/details", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, checkout.ErrEmptyCart.Error(), resp.Error)

	code, _ = call(t, r, "/user/checkout/payment/confirm", "")
	assert.Equal(t, http.StatusConflict, code)
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := map[string]struct {
		err  error
		want int
	}{
		"in flight":     {checkout.ErrSubmissionInFlight, http.StatusConflict},
		"bad quantity":  {cart.ErrInvalidQuantity, http.StatusBadRequest},
		"missing line":  {cart.ErrLineNotFound, http.StatusNotFound},
		"unknown error": {errors.New("boom"), http.StatusInternalServerError},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			RespondError(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, checkout.ErrSubmissionInFlight)
	assert.Contains(t, w.Body.String(), `"ignored":true`)
}
