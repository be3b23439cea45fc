package models

import (
	"time"

	"gorm.io/datatypes"
)

// Billing states.
const (
	StatusActive = "ACT"
	StatusBilled = "FAC"
	StatusPaid   = "PAG"
)

// StatusLabel maps a stored status to the text shown to operators.
func StatusLabel(status string) string {
	switch status {
	case StatusActive:
		return "Activo"
	case StatusBilled:
		return "Facturado"
	case StatusPaid:
		return "Pagado"
	}
	return status
}

// MerchantBilling is one billing period of a merchant on the gateway.
type MerchantBilling struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Code           string          `json:"cod_facturacion_comercio" gorm:"size:20;not null;uniqueIndex"`
	MerchantCode   string          `json:"cod_comercio" gorm:"size:10;not null;index"`
	StartDate      datatypes.Date  `json:"fecha_inicio" gorm:"not null"`
	EndDate        datatypes.Date  `json:"fecha_fin" gorm:"not null"`
	Processed      int             `json:"transacciones_procesadas"`
	Authorized     int             `json:"transacciones_autorizadas"`
	Rejected       int             `json:"transacciones_rechazadas"`
	Reversed       int             `json:"transacciones_reversadas"`
	CommissionCode string          `json:"cod_comision" gorm:"size:10"`
	Value          float64         `json:"valor" gorm:"type:numeric(20,4)"`
	Status         string          `json:"estado" gorm:"size:3;not null;index"`
	BillingCode    string          `json:"codigo_facturacion" gorm:"size:20"`
	BillingDate    *datatypes.Date `json:"fecha_facturacion"`
	PaymentDate    *datatypes.Date `json:"fecha_pago"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
