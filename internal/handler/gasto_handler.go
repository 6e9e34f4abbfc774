package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ariasbenraq/gastometro-backend/internal/service"
	"github.com/ariasbenraq/gastometro-backend/pkg/validator"
)

type GastoHandler struct {
	gastoService *service.GastoService
	validator    *validator.Validator
}

func NewGastoHandler(gastoService *service.GastoService, validator *validator.Validator) *GastoHandler {
	return &GastoHandler{
		gastoService: gastoService,
		validator:    validator,
	}
}

// Create records an expense
// POST /gastos
func (h *GastoHandler) Create(c *fiber.Ctx) error {
	var req service.CreateGastoRequest
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

	gasto, err := h.gastoService.Create(c.Context(), actorFromCtx(c), req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(gasto)
}

// List returns expenses matching the query filters
// GET /gastos
func (h *GastoHandler) List(c *fiber.Ctx) error {
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

	result, err := h.gastoService.List(c.Context(), actorFromCtx(c), req)
	if err != nil {
		return serviceError(c, err)
	}

	if result.Meta == nil {
		return c.JSON(result.Data)
	}
	return c.JSON(result)
}

// Get returns one expense
// GET /gastos/:id
func (h *GastoHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	gasto, err := h.gastoService.Get(c.Context(), actorFromCtx(c), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(gasto)
}

// Update patches an expense
// PATCH /gastos/:id
func (h *GastoHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req service.UpdateGastoRequest
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

	gasto, err := h.gastoService.Update(c.Context(), actorFromCtx(c), id, req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(gasto)
}

// Delete removes an expense
// DELETE /gastos/:id
func (h *GastoHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.gastoService.Delete(c.Context(), actorFromCtx(c), id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
