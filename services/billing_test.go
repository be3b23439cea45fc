package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"facturacion-admin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func date(s string) datatypes.Date {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(t)
}

func validBilling() models.MerchantBilling {
	return models.MerchantBilling{
		Code:           "FAC123",
		MerchantCode:   "COM001",
		StartDate:      date("2023-01-01"),
		EndDate:        date("2023-12-31"),
		Processed:      100,
		Authorized:     90,
		Rejected:       10,
		Reversed:       5,
		CommissionCode: "COM123",
		Value:          500,
		Status:         models.StatusActive,
		BillingCode:    "COD001",
	}
}

func validInput() CreateBillingInput {
	return CreateBillingInput{
		Code:         "FAC200",
		MerchantCode: "COM002",
		StartDate:    "2024-01-01",
		EndDate:      "2024-01-31",
		Processed:    10,
		Value:        12.3456,
		BillingCode:  "COD200",
		BillingDate:  "2024-02-01",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(b *models.MerchantBilling)
		wantErr bool
	}{
		{name: "valid", mutate: func(b *models.MerchantBilling) {}},
		{name: "same day period", mutate: func(b *models.MerchantBilling) { b.EndDate = b.StartDate }},
		{name: "start after end", mutate: func(b *models.MerchantBilling) { b.StartDate = date("2024-01-01") }, wantErr: true},
		{name: "zero value", mutate: func(b *models.MerchantBilling) { b.Value = 0 }, wantErr: true},
		{name: "negative value", mutate: func(b *models.MerchantBilling) { b.Value = -1 }, wantErr: true},
		{name: "four decimals", mutate: func(b *models.MerchantBilling) { b.Value = 1.2345 }},
		{name: "five decimals", mutate: func(b *models.MerchantBilling) { b.Value = 1.23456 }, wantErr: true},
		{name: "too many integer digits", mutate: func(b *models.MerchantBilling) { b.Value = 1e17 }, wantErr: true},
		{name: "billing code symbols", mutate: func(b *models.MerchantBilling) { b.BillingCode = "COD-1" }, wantErr: true},
		{name: "billing code empty", mutate: func(b *models.MerchantBilling) { b.BillingCode = "" }, wantErr: true},
		{name: "billing code too long", mutate: func(b *models.MerchantBilling) { b.BillingCode = "ABCDEFGHIJKLMNOPQRSTU" }, wantErr: true},
		{name: "negative counter", mutate: func(b *models.MerchantBilling) { b.Rejected = -1 }, wantErr: true},
		{name: "max counter", mutate: func(b *models.MerchantBilling) { b.Processed = MaxTransactions }},
		{name: "counter over 9 digits", mutate: func(b *models.MerchantBilling) { b.Reversed = MaxTransactions + 1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBilling()
			tt.mutate(&b)

			err := Validate(&b)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalid))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBillingService_Create(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewBillingService(store, nil)

	in := validInput()
	b, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.Equal(t, models.StatusActive, b.Status)
	assert.Equal(t, "2024-02-01", FormatDate(b.BillingDate))
	assert.Nil(t, b.PaymentDate)

	_, err = svc.Create(ctx, in)
	assert.True(t, errors.Is(err, ErrInvalid), "duplicate code")

	in = validInput()
	in.Code = "FAC201"
	in.EndDate = "2023-12-31"
	_, err = svc.Create(ctx, in)
	assert.True(t, errors.Is(err, ErrInvalid), "inverted period")

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBillingService_Update(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(validBilling())
	svc := NewBillingService(store, nil)

	value := 750.5
	status := models.StatusBilled
	b, err := svc.Update(ctx, 1, UpdateBillingInput{Value: &value, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 750.5, b.Value)
	assert.Equal(t, models.StatusBilled, b.Status)
	assert.Equal(t, "COD001", b.BillingCode)

	bad := -3
	_, err = svc.Update(ctx, 1, UpdateBillingInput{Processed: &bad})
	assert.True(t, errors.Is(err, ErrInvalid))

	stored, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.Processed, "rejected update is not saved")

	_, err = svc.Update(ctx, 42, UpdateBillingInput{Value: &value})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBillingService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return time.Date(2026, 10, 18, 15, 4, 5, 0, time.UTC) }

	billed := validBilling()
	billed.Code = "FAC124"
	billed.Status = models.StatusBilled

	store := NewMemoryStore(validBilling(), billed)
	svc := NewBillingService(store, now)

	_, err := svc.MarkPaid(ctx, 1)
	assert.True(t, errors.Is(err, ErrInvalidState))

	b, err := svc.MarkPaid(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, b.Status)
	assert.Equal(t, "2026-10-18", FormatDate(b.PaymentDate))

	_, err = svc.MarkPaid(ctx, 2)
	assert.True(t, errors.Is(err, ErrInvalidState), "already paid")

	_, err = svc.MarkPaid(ctx, 99)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBillingService_Pending(t *testing.T) {
	ctx := context.Background()

	billed := validBilling()
	billed.Code = "FAC124"
	billed.Status = models.StatusBilled

	svc := NewBillingService(NewMemoryStore(validBilling(), billed), nil)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "FAC124", pending[0].Code)

	b, err := svc.GetByCode(ctx, "FAC123")
	require.NoError(t, err)
	assert.Equal(t, uint(1), b.ID)

	_, err = svc.GetByCode(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_ListPaging(t *testing.T) {
	ctx := context.Background()
	var seed []models.MerchantBilling
	for _, code := range []string{"A1", "A2", "A3"} {
		b := validBilling()
		b.Code = code
		seed = append(seed, b)
	}
	store := NewMemoryStore(seed...)

	page, err := store.List(ctx, ListFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "A2", page[0].Code)
	assert.Equal(t, "A3", page[1].Code)

	page, err = store.List(ctx, ListFilter{Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, page)
}
