package controllers

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"facturacion-admin/forms"
	"facturacion-admin/logger"
	"facturacion-admin/models"
	"facturacion-admin/services"
	"facturacion-admin/utils"
	"facturacion-admin/views"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const (
	UpdateRoute = views.PagePrefix + "/update"
	ChangeRoute = UpdateRoute + "/change"
	CancelRoute = UpdateRoute + "/cancel"
)

// redirectNavigator remembers where the form asked to go; the handler turns it into a 303.
type redirectNavigator struct {
	route string
}

func (n *redirectNavigator) Navigate(route string) {
	n.route = route
}

// logDiagnostics writes the submitted record to the application log.
type logDiagnostics struct {
	log zerolog.Logger
}

func (d logDiagnostics) Record(msg string, rec forms.Record) {
	dict := zerolog.Dict()
	for _, f := range forms.Fields {
		dict = dict.Str(f.Name, rec[f.Name])
	}
	d.log.Info().Dict("form", dict).Msg(msg)
}

// BillingFormController serves the billing edit page. Submitting the page
// never writes to the store.
type BillingFormController struct {
	billings *services.BillingService
	now      func() time.Time
	log      zerolog.Logger
}

func NewBillingFormController(billings *services.BillingService, now func() time.Time) *BillingFormController {
	return &BillingFormController{
		billings: billings,
		now:      now,
		log:      logger.WithComponent("billing-form"),
	}
}

// ShowUpdate renders the edit page.
func (h *BillingFormController) ShowUpdate(c *fiber.Ctx) error {
	form, _, err := h.loadForm(c)
	if err != nil {
		return err
	}
	return h.renderUpdate(c, form, fiber.StatusOK, "")
}

// ChangeField applies one field edit and renders the page with the result.
func (h *BillingFormController) ChangeField(c *fiber.Ctx) error {
	form, _, err := h.loadForm(c)
	if err != nil {
		return err
	}
	// The page posts the whole form with name= set by the clicked button;
	// an explicit value= takes precedence.
	name := c.FormValue("name")
	value, ok := postedValue(c, "value")
	if !ok {
		value = c.FormValue(name)
	}
	if err := form.Change(name, value); err != nil {
		return h.rejected(c, form, err)
	}
	return h.renderUpdate(c, form, fiber.StatusOK, "")
}

// SubmitUpdate validates the payment date, logs the record and redirects
// to the listing. Posted values of read-only fields are ignored. A payment
// date equal to the stored one is not a new entry and is not re-checked.
func (h *BillingFormController) SubmitUpdate(c *fiber.Ctx) error {
	form, nav, err := h.loadForm(c)
	if err != nil {
		return err
	}

	if v, ok := postedValue(c, forms.FieldPaymentDate); ok && v != form.Value(forms.FieldPaymentDate) {
		if v == "" {
			err = form.Clear(forms.FieldPaymentDate)
		} else {
			err = form.Change(forms.FieldPaymentDate, v)
		}
		if err != nil {
			return h.rejected(c, form, err)
		}
	}
	if err := form.Submit(); err != nil {
		return h.rejected(c, form, err)
	}
	return c.Redirect(nav.route, fiber.StatusSeeOther)
}

// CancelUpdate drops any edit and returns to the listing.
func (h *BillingFormController) CancelUpdate(c *fiber.Ctx) error {
	nav := &redirectNavigator{}
	forms.New(forms.Record{}, nav, logDiagnostics{log: h.log}).Cancel()
	return c.Redirect(nav.route, fiber.StatusSeeOther)
}

// ShowListing renders the billing listing, optionally filtered by ?estado=.
func (h *BillingFormController) ShowListing(c *fiber.Ctx) error {
	list, err := h.billings.List(c.UserContext(), services.ListFilter{Status: c.Query("estado")})
	if err != nil {
		return err
	}

	rows := make([]views.ListRow, 0, len(list))
	for _, b := range list {
		rows = append(rows, views.ListRow{
			Code:         b.Code,
			MerchantCode: b.MerchantCode,
			StartDate:    services.FormatDate(&b.StartDate),
			EndDate:      services.FormatDate(&b.EndDate),
			Value:        utils.FormatAmount(b.Value),
			Status:       models.StatusLabel(b.Status),
			PaymentDate:  services.FormatDate(b.PaymentDate),
			EditURL:      UpdateRoute + "?codigo=" + url.QueryEscape(b.Code),
		})
	}

	body, err := views.RenderList(views.ListPage{Rows: rows})
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(body)
}

// loadForm builds the form over the stored billing named by ?codigo=, or
// over the default record when none is given.
func (h *BillingFormController) loadForm(c *fiber.Ctx) (*forms.Form, *redirectNavigator, error) {
	rec := forms.DefaultRecord()
	if code := c.Query("codigo"); code != "" {
		b, err := h.billings.GetByCode(c.UserContext(), code)
		if errors.Is(err, services.ErrNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "facturación no encontrada")
		}
		if err != nil {
			return nil, nil, err
		}
		rec = RecordFromBilling(b)
	}

	nav := &redirectNavigator{}
	form := forms.New(rec, nav, logDiagnostics{log: h.log}, forms.WithClock(h.now))
	return form, nav, nil
}

func (h *BillingFormController) rejected(c *fiber.Ctx, form *forms.Form, err error) error {
	msg := forms.AlertMessage(err)
	if msg == "" {
		return err
	}
	h.log.Debug().Err(err).Msg("form edit rejected")
	return h.renderUpdate(c, form, fiber.StatusUnprocessableEntity, msg)
}

func (h *BillingFormController) renderUpdate(c *fiber.Ctx, form *forms.Form, status int, alert string) error {
	query := ""
	if code := c.Query("codigo"); code != "" {
		query = "?codigo=" + url.QueryEscape(code)
	}

	body, err := views.RenderUpdate(views.UpdatePage{
		Action:       UpdateRoute + query,
		ChangeAction: ChangeRoute + query,
		CancelAction: CancelRoute,
		Alert:        alert,
		Fields:       form.View(),
	})
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(body)
}

// postedValue reports whether key was sent in the request body at all,
// so an emptied input can be told apart from a missing one.
func postedValue(c *fiber.Ctx, key string) (string, bool) {
	if args := c.Request().PostArgs(); args.Has(key) {
		return string(args.Peek(key)), true
	}
	if mf, err := c.MultipartForm(); err == nil {
		if vs, ok := mf.Value[key]; ok && len(vs) > 0 {
			return vs[0], true
		}
	}
	return "", false
}

// RecordFromBilling lays a stored billing out as edit page values.
func RecordFromBilling(b *models.MerchantBilling) forms.Record {
	return forms.Record{
		"codFacturacionComercio":   b.Code,
		"codComercio":              b.MerchantCode,
		"fechaInicio":              services.FormatDate(&b.StartDate),
		"fechaFin":                 services.FormatDate(&b.EndDate),
		"transaccionesProcesadas":  strconv.Itoa(b.Processed),
		"transaccionesAutorizadas": strconv.Itoa(b.Authorized),
		"transaccionesRechazadas":  strconv.Itoa(b.Rejected),
		"transaccionesReversadas":  strconv.Itoa(b.Reversed),
		"codComision":              b.CommissionCode,
		"valor":                    utils.FormatAmount(b.Value),
		"estado":                   models.StatusLabel(b.Status),
		"codigoFacturacion":        b.BillingCode,
		"fechaFacturacion":         services.FormatDate(b.BillingDate),
		forms.FieldPaymentDate:     services.FormatDate(b.PaymentDate),
	}
}
