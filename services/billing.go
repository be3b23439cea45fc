package services

import (
	"context"
	"time"

	"facturacion-admin/models"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// ListFilter narrows a billing listing. Empty Status means all.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

// Store persists merchant billings.
type Store interface {
	Get(ctx context.Context, id uint) (*models.MerchantBilling, error)
	GetByCode(ctx context.Context, code string) (*models.MerchantBilling, error)
	List(ctx context.Context, filter ListFilter) ([]models.MerchantBilling, error)
	Create(ctx context.Context, b *models.MerchantBilling) error
	// Transition loads the billing, applies fn and saves the result atomically.
	// Nothing is saved when fn returns an error.
	Transition(ctx context.Context, id uint, fn func(b *models.MerchantBilling) error) (*models.MerchantBilling, error)
}

// CreateBillingInput is the API payload for a new billing.
type CreateBillingInput struct {
	Code           string  `json:"cod_facturacion_comercio" validate:"required,max=20"`
	MerchantCode   string  `json:"cod_comercio" validate:"required,max=10"`
	StartDate      string  `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	EndDate        string  `json:"fecha_fin" validate:"required,datetime=2006-01-02"`
	Processed      int     `json:"transacciones_procesadas" validate:"min=0,max=999999999"`
	Authorized     int     `json:"transacciones_autorizadas" validate:"min=0,max=999999999"`
	Rejected       int     `json:"transacciones_rechazadas" validate:"min=0,max=999999999"`
	Reversed       int     `json:"transacciones_reversadas" validate:"min=0,max=999999999"`
	CommissionCode string  `json:"cod_comision" validate:"omitempty,max=10"`
	Value          float64 `json:"valor" validate:"gt=0,maxdecimals=4,maxintdigits=16"`
	BillingCode    string  `json:"codigo_facturacion" validate:"required,alphanum,max=20"`
	BillingDate    string  `json:"fecha_facturacion" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateBillingInput carries only the fields to change.
type UpdateBillingInput struct {
	StartDate   *string  `json:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string  `json:"fecha_fin" validate:"omitempty,datetime=2006-01-02"`
	Processed   *int     `json:"transacciones_procesadas" validate:"omitempty,min=0,max=999999999"`
	Authorized  *int     `json:"transacciones_autorizadas" validate:"omitempty,min=0,max=999999999"`
	Rejected    *int     `json:"transacciones_rechazadas" validate:"omitempty,min=0,max=999999999"`
	Reversed    *int     `json:"transacciones_reversadas" validate:"omitempty,min=0,max=999999999"`
	Value       *float64 `json:"valor" validate:"omitempty,gt=0,maxdecimals=4,maxintdigits=16"`
	Status      *string  `json:"estado" validate:"omitempty,oneof=ACT FAC PAG"`
	BillingCode *string  `json:"codigo_facturacion" validate:"omitempty,alphanum,max=20"`
	BillingDate *string  `json:"fecha_facturacion" validate:"omitempty,datetime=2006-01-02"`
	PaymentDate *string  `json:"fecha_pago" validate:"omitempty,datetime=2006-01-02"`
}

// BillingService implements the merchant billing rules on top of a Store.
type BillingService struct {
	store Store
	now   func() time.Time
}

func NewBillingService(store Store, now func() time.Time) *BillingService {
	if now == nil {
		now = time.Now
	}
	return &BillingService{store: store, now: now}
}

func (s *BillingService) Get(ctx context.Context, id uint) (*models.MerchantBilling, error) {
	return s.store.Get(ctx, id)
}

func (s *BillingService) GetByCode(ctx context.Context, code string) (*models.MerchantBilling, error) {
	return s.store.GetByCode(ctx, code)
}

func (s *BillingService) List(ctx context.Context, filter ListFilter) ([]models.MerchantBilling, error) {
	return s.store.List(ctx, filter)
}

// Pending lists the billings waiting for payment.
func (s *BillingService) Pending(ctx context.Context) ([]models.MerchantBilling, error) {
	return s.store.List(ctx, ListFilter{Status: models.StatusBilled})
}

// Create stores a new billing in the active state.
func (s *BillingService) Create(ctx context.Context, in CreateBillingInput) (*models.MerchantBilling, error) {
	const op = "create"

	start, err := parseDate(op, "fecha_inicio", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(op, "fecha_fin", in.EndDate)
	if err != nil {
		return nil, err
	}

	b := &models.MerchantBilling{
		Code:           in.Code,
		MerchantCode:   in.MerchantCode,
		StartDate:      start,
		EndDate:        end,
		Processed:      in.Processed,
		Authorized:     in.Authorized,
		Rejected:       in.Rejected,
		Reversed:       in.Reversed,
		CommissionCode: in.CommissionCode,
		Value:          in.Value,
		Status:         models.StatusActive,
		BillingCode:    in.BillingCode,
	}
	if in.BillingDate != "" {
		d, err := parseDate(op, "fecha_facturacion", in.BillingDate)
		if err != nil {
			return nil, err
		}
		b.BillingDate = &d
	}

	if err := Validate(b); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update merges the provided fields into the billing and re-validates it.
func (s *BillingService) Update(ctx context.Context, id uint, in UpdateBillingInput) (*models.MerchantBilling, error) {
	const op = "update"

	return s.store.Transition(ctx, id, func(b *models.MerchantBilling) error {
		if in.StartDate != nil {
			d, err := parseDate(op, "fecha_inicio", *in.StartDate)
			if err != nil {
				return err
			}
			b.StartDate = d
		}
		if in.EndDate != nil {
			d, err := parseDate(op, "fecha_fin", *in.EndDate)
			if err != nil {
				return err
			}
			b.EndDate = d
		}
		if in.Processed != nil {
			b.Processed = *in.Processed
		}
		if in.Authorized != nil {
			b.Authorized = *in.Authorized
		}
		if in.Rejected != nil {
			b.Rejected = *in.Rejected
		}
		if in.Reversed != nil {
			b.Reversed = *in.Reversed
		}
		if in.Value != nil {
			b.Value = *in.Value
		}
		if in.Status != nil {
			b.Status = *in.Status
		}
		if in.BillingCode != nil {
			b.BillingCode = *in.BillingCode
		}
		if in.BillingDate != nil {
			d, err := parseDate(op, "fecha_facturacion", *in.BillingDate)
			if err != nil {
				return err
			}
			b.BillingDate = &d
		}
		if in.PaymentDate != nil {
			d, err := parseDate(op, "fecha_pago", *in.PaymentDate)
			if err != nil {
				return err
			}
			b.PaymentDate = &d
		}
		return Validate(b)
	})
}

// MarkPaid moves a billed record to paid and stamps today's date.
func (s *BillingService) MarkPaid(ctx context.Context, id uint) (*models.MerchantBilling, error) {
	return s.store.Transition(ctx, id, func(b *models.MerchantBilling) error {
		if b.Status != models.StatusBilled {
			return &BillingError{
				Op:     "mark paid",
				Reason: "solo se pueden marcar como pagadas las facturaciones en estado 'FAC'",
				Err:    ErrInvalidState,
			}
		}
		today := Today(s.now())
		b.Status = models.StatusPaid
		b.PaymentDate = &today
		return nil
	})
}

// Today truncates t to its calendar date, keeping t's location.
func Today(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, t.Location()))
}

// FormatDate renders a stored date as YYYY-MM-DD; nil renders empty.
func FormatDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format(dateLayout)
}

func parseDate(op, field, s string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return datatypes.Date{}, invalid(op, field+" no es una fecha válida")
	}
	return datatypes.Date(t), nil
}
