package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ariasbenraq/gastometro-backend/internal/service"
	"github.com/ariasbenraq/gastometro-backend/pkg/validator"
)

type BalanceHandler struct {
	balanceService *service.BalanceService
	validator      *validator.Validator
}

func NewBalanceHandler(balanceService *service.BalanceService, validator *validator.Validator) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
		validator:      validator,
	}
}

func (h *BalanceHandler) parseRequest(c *fiber.Ctx) (service.BalanceRequest, error) {
	var req service.BalanceRequest
	if err := c.QueryParser(&req); err != nil {
		return req, err
	}
	if err := h.validator.Validate(req); err != nil {
		return req, err
	}
	return req, nil
}

// Get returns the all-time balance
// GET /balance
func (h *BalanceHandler) Get(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.balanceService.Get(c.Context(), actorFromCtx(c), req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(report)
}

// GetMonthly returns the balance for one calendar month
// GET /balance/mensual?year=&month=
func (h *BalanceHandler) GetMonthly(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	year := c.QueryInt("year")
	month := c.QueryInt("month")

	report, err := h.balanceService.GetMonthly(c.Context(), actorFromCtx(c), req, year, month)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(report)
}

// GetAnnual returns the balance for one calendar year
// GET /balance/anual?year=
func (h *BalanceHandler) GetAnnual(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	year := c.QueryInt("year")

	report, err := h.balanceService.GetAnnual(c.Context(), actorFromCtx(c), req, year)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(report)
}
