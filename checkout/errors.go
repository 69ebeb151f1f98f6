package checkout

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidTransition  = errors.New("action not available in current checkout step")
	ErrSubmissionInFlight = errors.New("order submission already in progress")
	ErrSubmissionFailed   = errors.New("order submission failed")
)

// SubmissionFailedNotice is the only thing a customer is told about a failed submission.
const SubmissionFailedNotice = "There was an error placing your order. Please try again."

// ValidationError carries one human readable message per rejected form field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid contact details: %s", strings.Join(names, ", "))
}
