package forms

import "strings"

// InputKind selects the HTML control used for a field.
type InputKind string

const (
	KindText InputKind = "text"
	KindDate InputKind = "date"
)

// ListingRoute is where the edit page goes after submit or cancel.
const ListingRoute = "/GtwFacturacionComercio/components"

// FieldPaymentDate is the only field an operator may change.
const FieldPaymentDate = "fechaPago"

// Field describes one input of the billing edit page.
type Field struct {
	Name     string
	Label    string
	Kind     InputKind
	Editable bool
}

// Placeholder is the hint shown inside the input.
func (f Field) Placeholder() string {
	return "Ingrese " + strings.ToLower(f.Label)
}

// Fields is the ordered field list of the billing edit page.
var Fields = []Field{
	{Name: "codFacturacionComercio", Label: "Cod Facturacion Comercio", Kind: KindText},
	{Name: "codComercio", Label: "Cod Comercio", Kind: KindText},
	{Name: "fechaInicio", Label: "Fecha Inicio", Kind: KindDate},
	{Name: "fechaFin", Label: "Fecha Fin", Kind: KindDate},
	{Name: "transaccionesProcesadas", Label: "Transacciones Procesadas", Kind: KindText},
	{Name: "transaccionesAutorizadas", Label: "Transacciones Autorizadas", Kind: KindText},
	{Name: "transaccionesRechazadas", Label: "Transacciones Rechazadas", Kind: KindText},
	{Name: "transaccionesReversadas", Label: "Transacciones Reversadas", Kind: KindText},
	{Name: "codComision", Label: "Cod Comision", Kind: KindText},
	{Name: "valor", Label: "Valor", Kind: KindText},
	{Name: "estado", Label: "Estado", Kind: KindText},
	{Name: "codigoFacturacion", Label: "Codigo Facturacion", Kind: KindText},
	{Name: "fechaFacturacion", Label: "Fecha Facturacion", Kind: KindDate},
	{Name: FieldPaymentDate, Label: "Fecha Pago", Kind: KindDate, Editable: true},
}

// Lookup returns the declared field with the given name.
func Lookup(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Record is the flat set of named values shown on the edit page.
type Record map[string]string

// DefaultRecord returns the values the edit page starts with when no stored billing is selected.
func DefaultRecord() Record {
	return Record{
		"codFacturacionComercio":   "FAC123",
		"codComercio":              "COM001",
		"fechaInicio":              "2023-01-01",
		"fechaFin":                 "2023-12-31",
		"transaccionesProcesadas":  "100",
		"transaccionesAutorizadas": "90",
		"transaccionesRechazadas":  "10",
		"transaccionesReversadas":  "5",
		"codComision":              "COM123",
		"valor":                    "500",
		"estado":                   "Activo",
		"codigoFacturacion":        "COD001",
		"fechaFacturacion":         "2023-11-01",
		FieldPaymentDate:           "",
	}
}

// Clone copies only the declared fields; unknown keys are dropped.
func (r Record) Clone() Record {
	out := make(Record, len(Fields))
	for _, f := range Fields {
		out[f.Name] = r[f.Name]
	}
	return out
}
