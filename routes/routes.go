package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"facturacion-admin/controllers"
	"facturacion-admin/forms"
	"facturacion-admin/middlewares"
	"facturacion-admin/services"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Billings  *services.BillingService
	DB        *gorm.DB // nil disables idempotency (in-memory runs)
	JWTSecret []byte
	Now       func() time.Time
}

// Register wires all HTTP routes.
func Register(app *fiber.App, d Deps) {
	pages := controllers.NewBillingFormController(d.Billings, d.Now)

	// Admin pages
	app.Get(controllers.UpdateRoute, pages.ShowUpdate)
	app.Post(controllers.UpdateRoute, pages.SubmitUpdate)
	app.Post(controllers.ChangeRoute, pages.ChangeField)
	app.Post(controllers.CancelRoute, pages.CancelUpdate)
	app.Get(forms.ListingRoute, pages.ShowListing)

	// JSON API (JWT auth)
	api := app.Group("/api")
	api.Use(middlewares.IsAuthenticatedHeader(d.JWTSecret))
	if d.DB != nil {
		api.Use(middlewares.Idempotency(d.DB))
	}

	billings := controllers.NewBillingController(d.Billings)
	api.Get("/billings", billings.List)
	api.Get("/billings/pending", billings.Pending)
	api.Get("/billings/:id", billings.Get)
	api.Post("/billings", billings.Create)
	api.Put("/billings/:id", billings.Update)
	api.Put("/billings/:id/pay", billings.MarkPaid)
}
