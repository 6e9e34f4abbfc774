package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ariasbenraq/gastometro-backend/internal/service"
	"github.com/ariasbenraq/gastometro-backend/pkg/validator"
)

type MovilidadHandler struct {
	movilidadService *service.MovilidadService
	validator        *validator.Validator
}

func NewMovilidadHandler(movilidadService *service.MovilidadService, validator *validator.Validator) *MovilidadHandler {
	return &MovilidadHandler{
		movilidadService: movilidadService,
		validator:        validator,
	}
}

// Create records a trip claim
// POST /registro-movilidades
func (h *MovilidadHandler) Create(c *fiber.Ctx) error {
	var req service.CreateMovilidadRequest
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

	registro, err := h.movilidadService.Create(c.Context(), actorFromCtx(c), req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(registro)
}

// List returns trip claims matching the query filters
// GET /registro-movilidades
func (h *MovilidadHandler) List(c *fiber.Ctx) error {
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

	result, err := h.movilidadService.List(c.Context(), actorFromCtx(c), req)
	if err != nil {
		return serviceError(c, err)
	}

	if result.Meta == nil {
		return c.JSON(result.Data)
	}
	return c.JSON(result)
}

// Get returns one trip claim
// GET /registro-movilidades/:id
func (h *MovilidadHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	registro, err := h.movilidadService.Get(c.Context(), actorFromCtx(c), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(registro)
}

// Update patches a trip claim
// PATCH /registro-movilidades/:id
func (h *MovilidadHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req service.UpdateMovilidadRequest
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

	registro, err := h.movilidadService.Update(c.Context(), actorFromCtx(c), id, req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(registro)
}

// Delete removes a trip claim
// DELETE /registro-movilidades/:id
func (h *MovilidadHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.movilidadService.Delete(c.Context(), actorFromCtx(c), id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
