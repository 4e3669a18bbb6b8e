package handlers

import (
	"bufio"
	"context"
	"log"
	"strconv"

	"dilspay/internal/services/ledger"
	"dilspay/internal/services/statement"
	"dilspay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type LedgerHandler struct {
	ledgerService    ledger.Service
	statementService statement.Service
}

func NewLedgerHandler(ledgerService ledger.Service, statementService statement.Service) *LedgerHandler {
	return &LedgerHandler{
		ledgerService:    ledgerService,
		statementService: statementService,
	}
}

func walletIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("wallet_id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

// Statement serves the paginated ledger listing. The aggregate totals over
// the whole filtered set travel in response headers; the body carries only
// the requested page. format=csv switches to a streamed export.
func (h *LedgerHandler) Statement(c *fiber.Ctx) error {
	walletID, err := walletIDParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid wallet id")
	}

	params := statement.Params{
		Tipo:     c.Query("tipo"),
		Start:    c.Query("start"),
		End:      c.Query("end"),
		OrderBy:  c.Query("order_by", "data"),
		OrderDir: c.Query("order_dir", "desc"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", statement.DefaultPageSize),
	}

	if c.Query("format") == "csv" {
		return h.exportCSV(c, walletID, params)
	}

	st, err := h.statementService.Query(c.Context(), walletID, params)
	if err != nil {
		return response.Domain(c, err)
	}

	c.Set("X-Total", strconv.FormatInt(st.TotalCount, 10))
	c.Set("X-Total-Count", strconv.FormatInt(st.TotalCount, 10))
	c.Set("X-Total-Pages", strconv.FormatInt(st.TotalPages, 10))
	c.Set("X-Page", strconv.Itoa(st.Page))
	c.Set("X-Page-Size", strconv.Itoa(st.PageSize))
	c.Set("X-Total-Credito", st.TotalCredito.StringFixed(2))
	c.Set("X-Total-Debito", st.TotalDebito.StringFixed(2))
	c.Set("X-Total-Saldo", st.Saldo.StringFixed(2))

	return c.JSON(st.Items)
}

func (h *LedgerHandler) exportCSV(c *fiber.Ctx, walletID uint, params statement.Params) error {
	opts := statement.CSVOptions{
		Separator:   statement.ParseSeparator(c.Query("sep")),
		DecimalMark: c.Query("decimal", "dot"),
	}

	// Validate before any byte of the body is committed, so an unknown
	// wallet or a bad filter still produces the proper error status.
	export, err := h.statementService.Export(c.Context(), walletID, params, opts)
	if err != nil {
		return response.Domain(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="extrato.csv"`)

	// The body is produced after the handler returns, so the stream runs on
	// its own context rather than the recycled request one.
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		if err := export.Write(context.Background(), w); err != nil {
			log.Printf("csv export aborted: %v", err)
		}
	})
	return nil
}

// Entry serves a single ledger entry by id, scoped to the wallet in the
// path.
func (h *LedgerHandler) Entry(c *fiber.Ctx) error {
	walletID, err := walletIDParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid wallet id")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return response.BadRequest(c, "invalid transaction id")
	}

	entry, err := h.statementService.Entry(c.Context(), walletID, uint(id))
	if err != nil {
		return response.Domain(c, err)
	}
	return c.JSON(entry)
}

// Append is the administrative path for direct manual ledger entries. It is
// subject to the same writer contract as settlement credits.
func (h *LedgerHandler) Append(c *fiber.Ctx) error {
	walletID, err := walletIDParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid wallet id")
	}

	var input struct {
		Tipo      string          `json:"tipo"`
		Valor     decimal.Decimal `json:"valor"`
		Descricao string          `json:"descricao"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	tx, err := h.ledgerService.Append(c.Context(), walletID, input.Tipo, input.Valor, input.Descricao)
	if err != nil {
		return response.Domain(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": tx.ID,
	})
}

// Verify recomputes the ledger sums and checks them against the cached
// balance. Debug/operations endpoint.
func (h *LedgerHandler) Verify(c *fiber.Ctx) error {
	walletID, err := walletIDParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid wallet id")
	}

	if err := h.ledgerService.VerifyBalance(c.Context(), walletID); err != nil {
		return response.Domain(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
