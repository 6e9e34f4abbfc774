package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ariasbenraq/gastometro-backend/internal/service"
	"github.com/ariasbenraq/gastometro-backend/pkg/validator"
)

type PasswordHandler struct {
	resetService *service.PasswordResetService
	validator    *validator.Validator
}

func NewPasswordHandler(resetService *service.PasswordResetService, validator *validator.Validator) *PasswordHandler {
	return &PasswordHandler{
		resetService: resetService,
		validator:    validator,
	}
}

type resetRequestBody struct {
	Email string `json:"email" validate:"required,email"`
}

type resetVerifyBody struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type resetConfirmBody struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required,min=8"`
}

// Request issues a reset code. The response body is identical whether or not
// the account exists.
// POST /auth/password-reset/request
func (h *PasswordHandler) Request(c *fiber.Ctx) error {
	var req resetRequestBody
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

	if err := h.resetService.Request(c.Context(), req.Email); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Si el correo existe, se ha enviado un código de recuperación",
	})
}

// Verify checks a code without consuming it
// POST /auth/password-reset/verify
func (h *PasswordHandler) Verify(c *fiber.Ctx) error {
	var req resetVerifyBody
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

	if err := h.resetService.Verify(c.Context(), req.Email, req.Code); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"valid": true,
	})
}

// Confirm rotates the password and revokes every session of the user
// POST /auth/password-reset/confirm
func (h *PasswordHandler) Confirm(c *fiber.Ctx) error {
	var req resetConfirmBody
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

	if err := h.resetService.Confirm(c.Context(), req.Email, req.Code, req.Password); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Contraseña actualizada correctamente",
	})
}
