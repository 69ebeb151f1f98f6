// Package checkout drives one session's cart through review, contact details,
// the payment branch and order submission.
package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/junaidrashid-git/biryani-house/cart"
	"github.com/junaidrashid-git/biryani-house/models"
	"go.uber.org/zap"
)

const DefaultSubmitTimeout = 15 * time.Second

var errNoSubmitter = errors.New("no submitter configured")

// Submitter writes a finished order. The lines are a snapshot the flow will not
// touch until Submit returns.
type Submitter interface {
	Submit(ctx context.Context, userID string, contact models.ContactInfo, lines []cart.Line) (*models.Order, error)
}

type Params struct {
	Owner         string
	Cart          *cart.Cart
	Validator     Validator
	Submitter     Submitter
	Logger        *zap.Logger
	SubmitTimeout time.Duration
}

// Flow is the checkout state machine for a single session. Every method is
// safe to call from concurrent requests; the store call runs without the lock
// held so reads keep working while an order is in flight.
type Flow struct {
	mu        sync.Mutex
	owner     string
	cart      *cart.Cart
	validator Validator
	submitter Submitter
	logger    *zap.Logger
	timeout   time.Duration

	state   State
	resume  State
	contact *models.ContactInfo
	outcome Outcome
	touched time.Time
}

func NewFlow(p Params) *Flow {
	c := p.Cart
	if c == nil {
		c = cart.New()
	}
	v := p.Validator
	if v == nil {
		v = NewContactValidator()
	}
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timeout := p.SubmitTimeout
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	return &Flow{
		owner:     p.Owner,
		cart:      c,
		validator: v,
		submitter: p.Submitter,
		logger:    log.Named("checkout").With(zap.String("session", p.Owner)),
		timeout:   timeout,
		state:     StateBrowsing,
		outcome:   OutcomeNone,
		touched:   time.Now(),
	}
}

// Snapshot is a read-only view of the flow and its cart.
type Snapshot struct {
	State       State               `json:"state"`
	LastOutcome Outcome             `json:"last_outcome"`
	Lines       []cart.Line         `json:"lines"`
	TotalAmount int                 `json:"total_amount"`
	ItemCount   int                 `json:"item_count"`
	CanCheckout bool                `json:"can_checkout"`
	Contact     *models.ContactInfo `json:"contact,omitempty"`
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{
		State:       f.state,
		LastOutcome: f.outcome,
		Lines:       f.cart.Lines(),
		TotalAmount: f.cart.TotalAmount(),
		ItemCount:   f.cart.LineCount(),
		CanCheckout: f.cart.LineCount() > 0,
	}
	if f.contact != nil {
		contact := *f.contact
		snap.Contact = &contact
	}
	return snap
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastActivity is when the flow was last mutated.
func (f *Flow) LastActivity() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched
}

func (f *Flow) AddLine(item models.MenuItem, quantity int, variant models.PreparationType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	f.touched = time.Now()
	return f.cart.AddLine(item, quantity, variant)
}

func (f *Flow) RemoveLine(itemID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	f.touched = time.Now()
	f.cart.RemoveLine(itemID)
	return nil
}

func (f *Flow) SetQuantity(itemID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	f.touched = time.Now()
	return f.cart.SetQuantity(itemID, quantity)
}

func (f *Flow) OpenCart() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateReviewingCart:
		return nil
	case StateBrowsing:
		f.moveTo(StateReviewingCart)
		return nil
	}
	return f.refuse()
}

func (f *Flow) CloseCart() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateReviewingCart {
		return f.refuse()
	}
	f.moveTo(StateBrowsing)
	return nil
}

// ProceedToDetails needs at least one portion in the cart.
func (f *Flow) ProceedToDetails() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateReviewingCart {
		return f.refuse()
	}
	if f.cart.LineCount() == 0 {
		return ErrEmptyCart
	}
	f.moveTo(StateEnteringDetails)
	return nil
}

// BackToCart abandons the form. The cart is kept.
func (f *Flow) BackToCart() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEnteringDetails {
		return f.refuse()
	}
	f.contact = nil
	f.moveTo(StateReviewingCart)
	return nil
}

// SubmitDetails validates the form. Cash on delivery submits straight away and
// returns the stored order; online payment stops at the confirmation step and
// returns a nil order.
func (f *Flow) SubmitDetails(ctx context.Context, form ContactForm) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return nil, ErrSubmissionInFlight
	}
	if f.state != StateEnteringDetails {
		return nil, f.refuse()
	}
	if f.cart.LineCount() == 0 {
		return nil, ErrEmptyCart
	}

	contact, fields := f.validator.Validate(form)
	if len(fields) > 0 {
		f.logger.Debug("contact form rejected", zap.Int("fields", len(fields)))
		f.contact = nil
		return nil, &ValidationError{Fields: fields}
	}
	f.contact = &contact

	if contact.PaymentMethod == models.PaymentOnline {
		f.moveTo(StateAwaitingPaymentConfirmation)
		return nil, nil
	}
	return f.submit(ctx)
}

// BackToDetails leaves the payment step. The contact stays for re-display.
func (f *Flow) BackToDetails() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateAwaitingPaymentConfirmation {
		return f.refuse()
	}
	f.moveTo(StateEnteringDetails)
	return nil
}

// ConfirmPayment is the customer saying they paid. Nothing is verified.
func (f *Flow) ConfirmPayment(ctx context.Context) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return nil, ErrSubmissionInFlight
	}
	if f.state != StateAwaitingPaymentConfirmation {
		return nil, f.refuse()
	}
	return f.submit(ctx)
}

// submit must be called with f.mu held. It releases the lock for the duration
// of the store call and holds it again on return.
func (f *Flow) submit(ctx context.Context) (*models.Order, error) {
	if f.submitter == nil {
		f.logger.Error("order submission failed", zap.Error(errNoSubmitter))
		f.outcome = OutcomeSubmissionFailed
		return nil, ErrSubmissionFailed
	}
	f.resume = f.state
	f.moveTo(StateSubmitting)
	contact := *f.contact
	lines := f.cart.Lines()

	f.mu.Unlock()
	order, err := f.callSubmitter(ctx, contact, lines)
	f.mu.Lock()

	if err != nil {
		f.logger.Error("order submission failed",
			zap.Error(err),
			zap.String("resume_state", f.resume.String()),
			zap.Int("total_amount", totalOf(lines)))
		f.outcome = OutcomeSubmissionFailed
		f.moveTo(f.resume)
		return nil, ErrSubmissionFailed
	}

	f.logger.Info("order submitted",
		zap.String("order_id", order.ID),
		zap.Int("total_amount", order.TotalAmount),
		zap.String("payment_method", string(contact.PaymentMethod)))
	f.cart.Clear()
	f.contact = nil
	f.outcome = OutcomeCompleted
	f.moveTo(StateBrowsing)
	return order, nil
}

func (f *Flow) callSubmitter(ctx context.Context, contact models.ContactInfo, lines []cart.Line) (*models.Order, error) {
	// Once issued, a submission runs to completion or timeout. The caller
	// going away does not cancel it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
	defer cancel()

	order, err := f.submitter.Submit(ctx, f.owner, contact, lines)
	if err == nil && order == nil {
		err = errors.New("store returned no order")
	}
	return order, err
}

func (f *Flow) moveTo(next State) {
	if next != f.state {
		f.logger.Debug("checkout transition",
			zap.String("from", f.state.String()),
			zap.String("to", next.String()))
	}
	f.state = next
	f.touched = time.Now()
}

func (f *Flow) refuse() error {
	f.logger.Debug("checkout action refused", zap.String("state", f.state.String()))
	return ErrInvalidTransition
}

func totalOf(lines []cart.Line) int {
	total := 0
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
