package handlers

import (
	"dilspay/internal/services/settlement"
	"dilspay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	settlementService settlement.Service
}

func NewWebhookHandler(settlementService settlement.Service) *WebhookHandler {
	return &WebhookHandler{
		settlementService: settlementService,
	}
}

// Settlement receives PSP payment confirmations. The signature covers the
// raw body, so it is read before any parsing. Success is 204 for first
// deliveries and replays alike.
func (h *WebhookHandler) Settlement(c *fiber.Ctx) error {
	raw := c.Body()
	signature := c.Get("X-Signature")

	if err := h.settlementService.HandleWebhook(c.Context(), raw, signature); err != nil {
		return response.Domain(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
