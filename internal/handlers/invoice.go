package handlers

import (
	"dilspay/internal/services/invoice"
	"dilspay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type InvoiceHandler struct {
	invoiceService invoice.Service
}

func NewInvoiceHandler(invoiceService invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var input struct {
		UserID uint            `json:"user_id"`
		Valor  decimal.Decimal `json:"valor"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	// Only admins may issue invoices on behalf of another user.
	userID := claims.UserID
	if input.UserID != 0 && claims.Role == "admin" {
		userID = input.UserID
	}

	inv, qr, err := h.invoiceService.Create(c.Context(), userID, input.Valor)
	if err != nil {
		return response.Domain(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"txid":    inv.Txid,
		"valor":   inv.Valor.StringFixed(2),
		"status":  inv.Status,
		"qr_data": qr,
	})
}

func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	txid := c.Params("txid")

	inv, err := h.invoiceService.Get(c.Context(), txid)
	if err != nil {
		return response.Domain(c, err)
	}

	return c.JSON(fiber.Map{
		"txid":   inv.Txid,
		"valor":  inv.Valor.StringFixed(2),
		"status": inv.Status,
	})
}

func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	txid := c.Params("txid")

	inv, err := h.invoiceService.Cancel(c.Context(), txid)
	if err != nil {
		return response.Domain(c, err)
	}

	return c.JSON(fiber.Map{
		"txid":   inv.Txid,
		"valor":  inv.Valor.StringFixed(2),
		"status": inv.Status,
	})
}
