package database

import (
	"context"
	"errors"

	"facturacion-admin/models"
	"facturacion-admin/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps merchant billings in Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, id uint) (*models.MerchantBilling, error) {
	var b models.MerchantBilling
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (s *GormStore) GetByCode(ctx context.Context, code string) (*models.MerchantBilling, error) {
	var b models.MerchantBilling
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (s *GormStore) List(ctx context.Context, filter services.ListFilter) ([]models.MerchantBilling, error) {
	q := s.db.WithContext(ctx).Model(&models.MerchantBilling{}).Order("id")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var out []models.MerchantBilling
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) Create(ctx context.Context, b *models.MerchantBilling) error {
	return duplicated(s.db.WithContext(ctx).Create(b).Error, b.Code)
}

// Transition locks the row for the duration of fn.
func (s *GormStore) Transition(ctx context.Context, id uint, fn func(b *models.MerchantBilling) error) (*models.MerchantBilling, error) {
	var b models.MerchantBilling
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error; err != nil {
			return notFound(err)
		}
		if err := fn(&b); err != nil {
			return err
		}
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return services.ErrNotFound
	}
	return err
}

// duplicated turns a unique violation on code into the same rule error the
// in-memory store returns. It needs TranslateError on the connection.
func duplicated(err error, code string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &services.BillingError{
			Op:     "create",
			Reason: "ya existe una facturación con el código " + code,
			Err:    services.ErrInvalid,
		}
	}
	return err
}
