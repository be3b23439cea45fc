package forms

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type navSpy struct {
	routes []string
}

func (n *navSpy) Navigate(route string) {
	n.routes = append(n.routes, route)
}

type diagSpy struct {
	msgs    []string
	records []Record
}

func (d *diagSpy) Record(msg string, rec Record) {
	d.msgs = append(d.msgs, msg)
	d.records = append(d.records, rec)
}

func fixedClock() time.Time {
	return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
}

func newTestForm() (*Form, *navSpy, *diagSpy) {
	nav := &navSpy{}
	diag := &diagSpy{}
	return New(DefaultRecord(), nav, diag, WithClock(fixedClock)), nav, diag
}

func TestForm_SubmitWithoutPaymentDate(t *testing.T) {
	f, nav, diag := newTestForm()

	err := f.Submit()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPaymentDateRequired))
	assert.Equal(t, "El campo 'Fecha de Pago' no puede estar vacío.", AlertMessage(err))
	assert.Empty(t, nav.routes)
	assert.Empty(t, diag.msgs)
}

func TestForm_ChangePaymentDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{name: "far past", value: "2020-01-01", wantErr: ErrPaymentDateInPast},
		{name: "yesterday", value: "2026-10-17", wantErr: ErrPaymentDateInPast},
		{name: "empty", value: "", wantErr: ErrPaymentDateInPast},
		{name: "today", value: "2026-10-18"},
		{name: "future", value: "2099-01-01"},
		{name: "not a date", value: "2099-13-45", wantErr: ErrInvalidDate},
		{name: "garbage after today", value: "zzz", wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, nav, _ := newTestForm()
			before := f.Record()

			err := f.Change(FieldPaymentDate, tt.value)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.NotEmpty(t, AlertMessage(err))
				assert.Equal(t, before, f.Record())
				return
			}

			require.NoError(t, err)
			after := f.Record()
			assert.Equal(t, tt.value, after[FieldPaymentDate])
			delete(after, FieldPaymentDate)
			delete(before, FieldPaymentDate)
			assert.Equal(t, before, after)
			assert.Empty(t, nav.routes)
		})
	}
}

func TestForm_PastDateRejectedKeepsEmpty(t *testing.T) {
	f, _, _ := newTestForm()

	err := f.Change(FieldPaymentDate, "2020-01-01")
	require.Error(t, err)
	assert.Equal(t, "La fecha de pago no puede ser anterior a la fecha actual.", AlertMessage(err))
	assert.Equal(t, "", f.Value(FieldPaymentDate))
}

func TestForm_ReadOnlyFieldsIgnoreEdits(t *testing.T) {
	for _, field := range Fields {
		if field.Editable {
			continue
		}
		t.Run(field.Name, func(t *testing.T) {
			f, _, _ := newTestForm()
			before := f.Record()

			err := f.Change(field.Name, "2099-01-01")
			assert.True(t, errors.Is(err, ErrFieldNotEditable))
			assert.Equal(t, before, f.Record())
		})
	}

	f, _, _ := newTestForm()
	assert.True(t, errors.Is(f.Change("unknown", "x"), ErrFieldNotEditable))
}

func TestForm_SubmitAfterValidChange(t *testing.T) {
	f, nav, diag := newTestForm()

	require.NoError(t, f.Change(FieldPaymentDate, "2099-01-01"))
	require.NoError(t, f.Submit())

	assert.Equal(t, []string{ListingRoute}, nav.routes)
	require.Len(t, diag.records, 1)
	assert.Equal(t, "Formulario actualizado", diag.msgs[0])

	want := DefaultRecord()
	want[FieldPaymentDate] = "2099-01-01"
	assert.Equal(t, want, diag.records[0])
}

func TestForm_Cancel(t *testing.T) {
	t.Run("untouched", func(t *testing.T) {
		f, nav, diag := newTestForm()
		f.Cancel()
		assert.Equal(t, []string{ListingRoute}, nav.routes)
		assert.Empty(t, diag.msgs)
	})

	t.Run("after edit", func(t *testing.T) {
		f, nav, diag := newTestForm()
		require.NoError(t, f.Change(FieldPaymentDate, "2099-01-01"))
		f.Cancel()
		assert.Equal(t, []string{ListingRoute}, nav.routes)
		assert.Empty(t, diag.msgs)
	})
}

func TestForm_ClosedAfterNavigation(t *testing.T) {
	f, nav, _ := newTestForm()
	require.NoError(t, f.Change(FieldPaymentDate, "2099-01-01"))
	require.NoError(t, f.Submit())

	assert.ErrorIs(t, f.Submit(), ErrFormClosed)
	assert.ErrorIs(t, f.Change(FieldPaymentDate, "2099-02-01"), ErrFormClosed)
	assert.Len(t, nav.routes, 1)
}

func TestForm_RecordIsACopy(t *testing.T) {
	rec := DefaultRecord()
	f := New(rec, &navSpy{}, &diagSpy{}, WithClock(fixedClock))

	rec["valor"] = "999"
	assert.Equal(t, "500", f.Value("valor"))

	out := f.Record()
	out["valor"] = "1"
	assert.Equal(t, "500", f.Value("valor"))
}

func TestForm_View(t *testing.T) {
	f, _, _ := newTestForm()
	view := f.View()
	require.Len(t, view, len(Fields))

	for i, v := range view {
		assert.Equal(t, Fields[i].Name, v.Name)
		assert.Equal(t, Fields[i].Label, v.Label)
		if v.Name == FieldPaymentDate {
			assert.False(t, v.Disabled)
			assert.False(t, v.Muted)
			assert.Equal(t, "date", v.Type)
			assert.Equal(t, "2026-10-18", v.Min)
			continue
		}
		assert.True(t, v.Disabled)
		assert.True(t, v.Muted)
		assert.Empty(t, v.Min)
	}
	assert.Equal(t, "FAC123", view[0].Value)
	assert.Equal(t, "text", view[0].Type)
}

func TestForm_ViewMinKeepsStoredPastDate(t *testing.T) {
	rec := DefaultRecord()
	rec[FieldPaymentDate] = "2025-03-01"
	f := New(rec, &navSpy{}, &diagSpy{}, WithClock(fixedClock))

	for _, v := range f.View() {
		if v.Name == FieldPaymentDate {
			assert.Equal(t, "2025-03-01", v.Min)
			assert.Equal(t, "2025-03-01", v.Value)
		}
	}
}

func TestForm_Clear(t *testing.T) {
	rec := DefaultRecord()
	rec[FieldPaymentDate] = "2027-01-01"
	nav, diag := &navSpy{}, &diagSpy{}
	f := New(rec, nav, diag, WithClock(fixedClock))

	err := f.Clear("valor")
	assert.True(t, errors.Is(err, ErrFieldNotEditable))
	assert.Equal(t, "500", f.Value("valor"))

	require.NoError(t, f.Clear(FieldPaymentDate))
	assert.Equal(t, "", f.Value(FieldPaymentDate))

	err = f.Submit()
	assert.True(t, errors.Is(err, ErrPaymentDateRequired))
	assert.Empty(t, nav.routes)
	assert.Empty(t, diag.msgs)
}
