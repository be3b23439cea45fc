// Package views renders the billing admin pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"html/template"

	"facturacion-admin/forms"
)

//go:embed templates/*.html
var files embed.FS

// PagePrefix is the path prefix of every HTML page.
const PagePrefix = "/GtwFacturacionComercio"

var pages = template.Must(template.ParseFS(files, "templates/*.html"))

// UpdatePage is the data behind the billing edit page.
type UpdatePage struct {
	Action       string
	ChangeAction string
	CancelAction string
	Alert        string
	Fields       []forms.FieldView
}

// ListRow is one billing in the listing.
type ListRow struct {
	Code         string
	MerchantCode string
	StartDate    string
	EndDate      string
	Value        string
	Status       string
	PaymentDate  string
	EditURL      string
}

// ListPage is the data behind the billing listing.
type ListPage struct {
	Rows []ListRow
}

// ErrorPage is shown when a page request fails.
type ErrorPage struct {
	Status  int
	Message string
	BackURL string
}

func RenderUpdate(p UpdatePage) ([]byte, error) {
	return render("update.html", p)
}

func RenderList(p ListPage) ([]byte, error) {
	return render("list.html", p)
}

func RenderError(p ErrorPage) ([]byte, error) {
	return render("error.html", p)
}

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
