package checkout

type State string

const (
	StateBrowsing                    State = "browsing"
	StateReviewingCart               State = "reviewing_cart"
	StateEnteringDetails             State = "entering_details"
	StateAwaitingPaymentConfirmation State = "awaiting_payment_confirmation"
	StateSubmitting                  State = "submitting"
)

func (s State) String() string {
	return string(s)
}

// Outcome records how the most recent submission ended.
type Outcome string

const (
	OutcomeNone             Outcome = "none"
	OutcomeCompleted        Outcome = "completed"
	OutcomeSubmissionFailed Outcome = "submission_failed"
)
