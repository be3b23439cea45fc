package services

import (
	"fmt"
	"regexp"
	"time"

	"facturacion-admin/models"
	"facturacion-admin/utils"
)

const (
	MaxTransactions    = 999_999_999 // 9 digits
	MaxValueDecimals   = 4
	MaxValueIntDigits  = 16
	MaxBillingCodeSize = 20
)

var billingCodeRe = regexp.MustCompile(fmt.Sprintf(`^[a-zA-Z0-9]{1,%d}$`, MaxBillingCodeSize))

// Validate checks the business rules every stored billing must satisfy.
func Validate(b *models.MerchantBilling) error {
	const op = "validate"

	if time.Time(b.StartDate).After(time.Time(b.EndDate)) {
		return invalid(op, "la fecha de inicio no puede ser posterior a la fecha de fin")
	}
	if b.Value <= 0 {
		return invalid(op, "el valor de la facturación debe ser mayor a cero")
	}
	if utils.DecimalPlaces(b.Value) > MaxValueDecimals {
		return invalid(op, fmt.Sprintf("el valor no puede tener más de %d decimales", MaxValueDecimals))
	}
	if utils.IntegerDigits(b.Value) > MaxValueIntDigits {
		return invalid(op, fmt.Sprintf("el valor no puede tener más de %d dígitos enteros", MaxValueIntDigits))
	}
	if !billingCodeRe.MatchString(b.BillingCode) {
		return invalid(op, fmt.Sprintf("el código de facturación debe ser alfanumérico y no exceder los %d caracteres", MaxBillingCodeSize))
	}

	counters := []struct {
		name  string
		value int
	}{
		{"procesadas", b.Processed},
		{"autorizadas", b.Authorized},
		{"rechazadas", b.Rejected},
		{"reversadas", b.Reversed},
	}
	for _, c := range counters {
		if c.value < 0 || c.value > MaxTransactions {
			return invalid(op, fmt.Sprintf("el número de transacciones %s no puede ser negativo ni exceder los 9 dígitos", c.name))
		}
	}
	return nil
}
