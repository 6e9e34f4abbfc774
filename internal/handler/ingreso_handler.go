package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ariasbenraq/gastometro-backend/internal/service"
	"github.com/ariasbenraq/gastometro-backend/pkg/validator"
)

type IngresoHandler struct {
	ingresoService *service.IngresoService
	validator      *validator.Validator
}

func NewIngresoHandler(ingresoService *service.IngresoService, validator *validator.Validator) *IngresoHandler {
	return &IngresoHandler{
		ingresoService: ingresoService,
		validator:      validator,
	}
}

// Create records a deposit
// POST /ingresos
func (h *IngresoHandler) Create(c *fiber.Ctx) error {
	var req service.CreateIngresoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ingreso, err := h.ingresoService.Create(c.Context(), actorFromCtx(c), req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(ingreso)
}

// List returns deposits matching the query filters
// GET /ingresos
func (h *IngresoHandler) List(c *fiber.Ctx) error {
	var req service.ListRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid query parameters",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.ingresoService.List(c.Context(), actorFromCtx(c), req)
	if err != nil {
		return serviceError(c, err)
	}

	if result.Meta == nil {
		return c.JSON(result.Data)
	}
	return c.JSON(result)
}

// Get returns one deposit
// GET /ingresos/:id
func (h *IngresoHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ingreso, err := h.ingresoService.Get(c.Context(), actorFromCtx(c), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(ingreso)
}

// Update patches a deposit
// PATCH /ingresos/:id
func (h *IngresoHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req service.UpdateIngresoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ingreso, err := h.ingresoService.Update(c.Context(), actorFromCtx(c), id, req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(ingreso)
}

// Delete removes a deposit
// DELETE /ingresos/:id
func (h *IngresoHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.ingresoService.Delete(c.Context(), actorFromCtx(c), id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
