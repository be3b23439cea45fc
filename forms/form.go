// Package forms holds the billing edit form: its declared fields, the
// payment date rules and the submit/cancel flow. It renders nothing and
// persists nothing; navigation and diagnostics are handed to collaborators.
package forms

import (
	"time"
)

// DateLayout is the ISO calendar date format used by date inputs.
const DateLayout = "2006-01-02"

// Navigator moves the operator to another route.
type Navigator interface {
	Navigate(route string)
}

// Diagnostics records a message for developer inspection.
type Diagnostics interface {
	Record(msg string, rec Record)
}

// Form is the state of one billing edit page. It is owned by a single
// request and is not safe for concurrent use.
type Form struct {
	record Record
	now    func() time.Time
	nav    Navigator
	diag   Diagnostics
	closed bool
}

// Option configures a Form.
type Option func(*Form)

// WithClock sets the time source used to compute today's date.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		f.now = now
	}
}

// New builds a form over a copy of rec.
func New(rec Record, nav Navigator, diag Diagnostics, opts ...Option) *Form {
	f := &Form{
		record: rec.Clone(),
		now:    time.Now,
		nav:    nav,
		diag:   diag,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Record returns a copy of the current values.
func (f *Form) Record() Record {
	return f.record.Clone()
}

// Value returns the current value of a field.
func (f *Form) Value(name string) string {
	return f.record[name]
}

// Today is the current calendar date in DateLayout, in the clock's location.
func (f *Form) Today() string {
	return f.now().Format(DateLayout)
}

// Change applies an operator edit. Rejected edits leave the form untouched.
func (f *Form) Change(name, value string) error {
	if f.closed {
		return ErrFormClosed
	}

	field, ok := Lookup(name)
	if !ok || !field.Editable {
		return newValidationError(name, ErrFieldNotEditable, "El campo no se puede modificar.")
	}

	if name == FieldPaymentDate {
		// ISO dates compare correctly as strings.
		if value < f.Today() {
			return newValidationError(name, ErrPaymentDateInPast,
				"La fecha de pago no puede ser anterior a la fecha actual.")
		}
		if _, err := time.Parse(DateLayout, value); err != nil {
			return newValidationError(name, ErrInvalidDate,
				"La fecha de pago no es una fecha válida.")
		}
	}

	f.record[name] = value
	return nil
}

// Clear empties an editable field. The required check is left to Submit.
func (f *Form) Clear(name string) error {
	if f.closed {
		return ErrFormClosed
	}
	field, ok := Lookup(name)
	if !ok || !field.Editable {
		return newValidationError(name, ErrFieldNotEditable, "El campo no se puede modificar.")
	}
	f.record[name] = ""
	return nil
}

// Submit hands the record to diagnostics and navigates to the listing.
// Nothing is stored.
func (f *Form) Submit() error {
	if f.closed {
		return ErrFormClosed
	}
	if f.record[FieldPaymentDate] == "" {
		return newValidationError(FieldPaymentDate, ErrPaymentDateRequired,
			"El campo 'Fecha de Pago' no puede estar vacío.")
	}

	f.diag.Record("Formulario actualizado", f.Record())
	f.closed = true
	f.nav.Navigate(ListingRoute)
	return nil
}

// Cancel discards edits and navigates to the listing.
func (f *Form) Cancel() {
	f.closed = true
	f.nav.Navigate(ListingRoute)
}

// FieldView is everything a template needs to draw one input.
type FieldView struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Min         string
	Disabled    bool
	Muted       bool
}

// View lists the inputs of the page in declaration order.
func (f *Form) View() []FieldView {
	out := make([]FieldView, 0, len(Fields))
	for _, field := range Fields {
		var earliest string
		if field.Editable && field.Kind == KindDate {
			earliest = f.minDate(f.record[field.Name])
		}
		out = append(out, FieldView{
			Name:        field.Name,
			Label:       field.Label,
			Type:        string(field.Kind),
			Value:       f.record[field.Name],
			Placeholder: field.Placeholder(),
			Min:         earliest,
			Disabled:    !field.Editable,
			Muted:       !field.Editable,
		})
	}
	return out
}

// minDate is the earliest date the input offers: today, or an already
// stored earlier value so it can be kept.
func (f *Form) minDate(current string) string {
	today := f.Today()
	if current != "" && current < today {
		return current
	}
	return today
}
