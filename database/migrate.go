package database

import (
	"errors"
	"fmt"
	"time"

	"facturacion-admin/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns)
// - Value column type (NUMERIC(20,4))
// - CHECK constraints mirroring the billing rules
// - Default billing seed
func Migrate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.MerchantBilling{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		if err := tx.Exec(`ALTER TABLE merchant_billings ALTER COLUMN value TYPE numeric(20,4)`).Error; err != nil {
			return fmt.Errorf("money type migration failed: %w", err)
		}

		checks := map[string]string{
			"chk_merchant_billings_period":   `start_date <= end_date`,
			"chk_merchant_billings_value":    `value > 0`,
			"chk_merchant_billings_status":   `status IN ('ACT', 'FAC', 'PAG')`,
			"chk_merchant_billings_counters": `processed BETWEEN 0 AND 999999999 AND authorized BETWEEN 0 AND 999999999 AND rejected BETWEEN 0 AND 999999999 AND reversed BETWEEN 0 AND 999999999`,
		}
		for name, expr := range checks {
			stmt := fmt.Sprintf(`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = 'merchant_billings'::regclass
		  AND conname  = '%s'
	) THEN
		ALTER TABLE merchant_billings
		ADD CONSTRAINT %s CHECK (%s);
	END IF;
END $$;`, name, name, expr)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint %s failed: %w", name, err)
			}
		}

		return seedDefault(tx)
	})
}

// DefaultBilling is the record the edit page shows out of the box.
func DefaultBilling() models.MerchantBilling {
	billed := mustDate("2023-11-01")
	return models.MerchantBilling{
		Code:           "FAC123",
		MerchantCode:   "COM001",
		StartDate:      mustDate("2023-01-01"),
		EndDate:        mustDate("2023-12-31"),
		Processed:      100,
		Authorized:     90,
		Rejected:       10,
		Reversed:       5,
		CommissionCode: "COM123",
		Value:          500,
		Status:         models.StatusActive,
		BillingCode:    "COD001",
		BillingDate:    &billed,
	}
}

func seedDefault(tx *gorm.DB) error {
	var existing models.MerchantBilling
	err := tx.Where("code = ?", "FAC123").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed lookup failed: %w", err)
	}
	seed := DefaultBilling()
	if err := tx.Create(&seed).Error; err != nil {
		return fmt.Errorf("seed insert failed: %w", err)
	}
	return nil
}

func mustDate(s string) datatypes.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(t)
}
