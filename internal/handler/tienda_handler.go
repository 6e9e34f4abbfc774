package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ariasbenraq/gastometro-backend/internal/service"
	"github.com/ariasbenraq/gastometro-backend/pkg/validator"
)

type TiendaHandler struct {
	tiendaService *service.TiendaService
	validator     *validator.Validator
}

func NewTiendaHandler(tiendaService *service.TiendaService, validator *validator.Validator) *TiendaHandler {
	return &TiendaHandler{
		tiendaService: tiendaService,
		validator:     validator,
	}
}

// Create registers a store
// POST /tiendas-ibk
func (h *TiendaHandler) Create(c *fiber.Ctx) error {
	var req service.CreateTiendaRequest
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

	tienda, err := h.tiendaService.Create(c.Context(), req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tienda)
}

// List returns all stores
// GET /tiendas-ibk
func (h *TiendaHandler) List(c *fiber.Ctx) error {
	tiendas, err := h.tiendaService.List(c.Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(tiendas)
}

// Get returns one store
// GET /tiendas-ibk/:id
func (h *TiendaHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tienda, err := h.tiendaService.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(tienda)
}

// Update patches a store
// PATCH /tiendas-ibk/:id
func (h *TiendaHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req service.UpdateTiendaRequest
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

	tienda, err := h.tiendaService.Update(c.Context(), id, req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(tienda)
}

// Delete removes a store
// DELETE /tiendas-ibk/:id
func (h *TiendaHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.tiendaService.Delete(c.Context(), id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
