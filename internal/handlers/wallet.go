package handlers

import (
	"dilspay/internal/services/wallet"
	"dilspay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// Me returns the authenticated user's wallet.
func (h *WalletHandler) Me(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetByUser(c.Context(), claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}

	return c.JSON(fiber.Map{
		"id":        w.ID,
		"user_id":   w.UserID,
		"saldo":     w.Balance.StringFixed(2),
		"criado_em": w.CreatedAt,
	})
}

// List returns all wallets. Administrative endpoint.
func (h *WalletHandler) List(c *fiber.Ctx) error {
	wallets, err := h.walletService.List(c.Context())
	if err != nil {
		return response.Domain(c, err)
	}

	out := make([]fiber.Map, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, fiber.Map{
			"id":        w.ID,
			"user_id":   w.UserID,
			"saldo":     w.Balance.StringFixed(2),
			"criado_em": w.CreatedAt,
		})
	}
	return c.JSON(out)
}
