package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ariasbenraq/gastometro-backend/internal/service"
	"github.com/ariasbenraq/gastometro-backend/pkg/validator"
)

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validator
}

func NewUserHandler(userService *service.UserService, validator *validator.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

// List returns all users
// GET /usuarios
func (h *UserHandler) List(c *fiber.Ctx) error {
	usuarios, err := h.userService.List(c.Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(usuarios)
}

// Get returns one user
// GET /usuarios/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	usuario, err := h.userService.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(usuario)
}

// Update patches profile fields
// PATCH /usuarios/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req service.UpdateUserRequest
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

	usuario, err := h.userService.UpdateBasic(c.Context(), actorFromCtx(c), id, req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(usuario)
}

// Approve activates a balance-analyst account
// PATCH /usuarios/:id/approve
func (h *UserHandler) Approve(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	usuario, err := h.userService.ApproveAnalyst(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(usuario)
}
