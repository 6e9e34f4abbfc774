package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/handler/middleware"
)

func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	passwordHandler *PasswordHandler,
	userHandler *UserHandler,
	gastoHandler *GastoHandler,
	ingresoHandler *IngresoHandler,
	movilidadHandler *MovilidadHandler,
	tiendaHandler *TiendaHandler,
	balanceHandler *BalanceHandler,
	healthHandler *HealthHandler,
	authMiddleware fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	// Auth routes (public)
	auth := app.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/signin", authHandler.SignIn)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/password-reset/request", passwordHandler.Request)
	auth.Post("/password-reset/verify", passwordHandler.Verify)
	auth.Post("/password-reset/confirm", passwordHandler.Confirm)

	requireAdmin := middleware.RequireRoles(domain.RoleAdmin)
	anyRole := middleware.RequireRoles(domain.RoleAdmin, domain.RoleAnalystBalance, domain.RoleUser)

	// User management (protected)
	usuarios := app.Group("/usuarios", authMiddleware)
	usuarios.Get("/", requireAdmin, userHandler.List)
	usuarios.Get("/:id", anyRole, userHandler.Get)
	usuarios.Patch("/:id", anyRole, userHandler.Update)
	usuarios.Patch("/:id/approve", requireAdmin, userHandler.Approve)

	// Ledger routes (protected, ownership enforced in the services)
	gastos := app.Group("/gastos", authMiddleware, anyRole)
	gastos.Post("/", gastoHandler.Create)
	gastos.Get("/", gastoHandler.List)
	gastos.Get("/:id", gastoHandler.Get)
	gastos.Patch("/:id", gastoHandler.Update)
	gastos.Delete("/:id", gastoHandler.Delete)

	ingresos := app.Group("/ingresos", authMiddleware, anyRole)
	ingresos.Post("/", ingresoHandler.Create)
	ingresos.Get("/", ingresoHandler.List)
	ingresos.Get("/:id", ingresoHandler.Get)
	ingresos.Patch("/:id", ingresoHandler.Update)
	ingresos.Delete("/:id", ingresoHandler.Delete)

	movilidades := app.Group("/registro-movilidades", authMiddleware, anyRole)
	movilidades.Post("/", movilidadHandler.Create)
	movilidades.Get("/", movilidadHandler.List)
	movilidades.Get("/:id", movilidadHandler.Get)
	movilidades.Patch("/:id", movilidadHandler.Update)
	movilidades.Delete("/:id", movilidadHandler.Delete)

	// Store catalog (protected; writes are admin-only)
	tiendas := app.Group("/tiendas-ibk", authMiddleware)
	tiendas.Get("/", anyRole, tiendaHandler.List)
	tiendas.Get("/:id", anyRole, tiendaHandler.Get)
	tiendas.Post("/", requireAdmin, tiendaHandler.Create)
	tiendas.Patch("/:id", requireAdmin, tiendaHandler.Update)
	tiendas.Delete("/:id", requireAdmin, tiendaHandler.Delete)

	// Balance reporting (protected)
	balance := app.Group("/balance", authMiddleware, anyRole)
	balance.Get("/", balanceHandler.Get)
	balance.Get("/mensual", balanceHandler.GetMonthly)
	balance.Get("/anual", balanceHandler.GetAnnual)
}
