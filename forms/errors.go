package forms

import "errors"

var (
	ErrFieldNotEditable    = errors.New("field is not editable")
	ErrPaymentDateInPast   = errors.New("payment date is before today")
	ErrPaymentDateRequired = errors.New("payment date is required")
	ErrInvalidDate         = errors.New("payment date is not a calendar date")
	ErrFormClosed          = errors.New("form already navigated away")
)

// ValidationError is a user-facing rejection of an edit or a submit.
// Message is what the page shows in its alert.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field string, err error, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg, Err: err}
}

// AlertMessage returns the text to show the operator for err, if any.
func AlertMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return ""
}
