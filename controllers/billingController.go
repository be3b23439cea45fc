package controllers

import (
	"facturacion-admin/middlewares"
	"facturacion-admin/services"
	"facturacion-admin/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// BillingController exposes merchant billings as JSON.
type BillingController struct {
	billings *services.BillingService
}

func NewBillingController(billings *services.BillingService) *BillingController {
	return &BillingController{billings: billings}
}

func (h *BillingController) List(c *fiber.Ctx) error {
	filter := services.ListFilter{
		Status: c.Query("estado"),
		Limit:  utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), defaultPageSize), 1, maxPageSize),
		Offset: utils.ParseIntDefault(c.Query("offset"), 0),
	}
	list, err := h.billings.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"billings": list,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

func (h *BillingController) Pending(c *fiber.Ctx) error {
	list, err := h.billings.Pending(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"billings": list})
}

func (h *BillingController) Get(c *fiber.Ctx) error {
	id, err := billingID(c)
	if err != nil {
		return err
	}
	b, err := h.billings.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(b)
}

func (h *BillingController) Create(c *fiber.Ctx) error {
	var in services.CreateBillingInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	b, err := h.billings.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

func (h *BillingController) Update(c *fiber.Ctx) error {
	id, err := billingID(c)
	if err != nil {
		return err
	}
	var in services.UpdateBillingInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	b, err := h.billings.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(b)
}

func (h *BillingController) MarkPaid(c *fiber.Ctx) error {
	id, err := billingID(c)
	if err != nil {
		return err
	}
	b, err := h.billings.MarkPaid(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(b)
}

func billingID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid billing id")
	}
	return uint(id), nil
}
