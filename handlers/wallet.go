// handlers/wallet.go
package handlers

import (
	"errors"

	"minniemissions/middleware"
	"minniemissions/services"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App, walletService *services.WalletService) {
	userCtx := middleware.UserContextMiddleware()

	app.Post("/wallet/connect", userCtx, func(c *fiber.Ctx) error {
		sessionID := c.Locals("user_id").(string)

		var req struct {
			Name         string `json:"name"`
			ReferralCode string `json:"referral_code"`
		}
		_ = c.BodyParser(&req) // both fields optional

		session, err := walletService.Connect(c.Context(), sessionID, req.Name, req.ReferralCode)
		if err != nil {
			kind := services.CategorizeConnectError(err)
			status := fiber.StatusBadGateway
			message := "Failed to connect wallet"
			switch kind {
			case services.ConnectErrExtensionMissing:
				message = "Please install the Polkadot{.js} extension to continue"
			case services.ConnectErrNoAccounts:
				message = "No accounts found in your Polkadot wallet"
			}
			return c.Status(status).JSON(fiber.Map{
				"error": message,
				"kind":  kind,
				"cause": err.Error(),
			})
		}
		return c.JSON(session)
	})

	app.Post("/wallet/disconnect", userCtx, func(c *fiber.Ctx) error {
		sessionID := c.Locals("user_id").(string)
		walletService.Disconnect(sessionID)
		return c.JSON(fiber.Map{"connected": false})
	})

	app.Get("/wallet", userCtx, func(c *fiber.Ctx) error {
		sessionID := c.Locals("user_id").(string)
		return c.JSON(walletService.Session(sessionID))
	})

	app.Post("/wallet/convert", userCtx, func(c *fiber.Ctx) error {
		sessionID := c.Locals("user_id").(string)

		var req struct {
			Amount   int    `json:"amount"`
			Currency string `json:"currency"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		tokens, err := walletService.ConvertToToken(c.Context(), sessionID, req.Amount, services.Currency(req.Currency))
		if err != nil {
			return walletError(c, err)
		}
		return c.JSON(fiber.Map{
			"amount":   req.Amount,
			"currency": req.Currency,
			"tokens":   tokens,
		})
	})

	app.Post("/verification", userCtx, func(c *fiber.Ctx) error {
		sessionID := c.Locals("user_id").(string)

		verified, err := walletService.SimulateVerification(c.Context(), sessionID)
		if err != nil {
			return walletError(c, err)
		}
		return c.JSON(fiber.Map{"verified": verified})
	})
}

// walletError maps wallet/session failures onto the handler error taxonomy:
// validation → 400, missing session → 401, everything else → 502.
func walletError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotConnected):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "wallet not connected"})
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrUnknownCurrency),
		errors.Is(err, services.ErrNotVerified),
		errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
}
