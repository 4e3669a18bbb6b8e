package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 500

	defaultOrderBy  = "data"
	defaultOrderDir = "desc"
)

// orderColumns whitelists the sortable API fields and maps them to their
// transactions columns. Anything else falls back to timestamp descending.
var orderColumns = map[string]string{
	"id":        "id",
	"data":      "created_at",
	"tipo":      "tipo",
	"valor":     "valor",
	"descricao": "referencia",
}

// Params are the raw query knobs as they arrive from the API.
type Params struct {
	Tipo     string
	Start    string
	End      string
	OrderBy  string
	OrderDir string
	Page     int
	PageSize int
}

// Entry is one statement line. Valor is a fixed-point decimal string, never
// a floating approximation; Descricao is empty, not null, when absent.
type Entry struct {
	ID        uint   `json:"id"`
	Data      string `json:"data"`
	Tipo      string `json:"tipo"`
	Valor     string `json:"valor"`
	Descricao string `json:"descricao"`
}

// Statement is one page of a wallet's ledger plus the aggregates over the
// entire filtered set.
type Statement struct {
	Items        []Entry
	Page         int
	PageSize     int
	TotalCount   int64
	TotalPages   int64
	TotalCredito decimal.Decimal
	TotalDebito  decimal.Decimal
	Saldo        decimal.Decimal
}

// CSVOptions control the export rendering for locale compatibility.
type CSVOptions struct {
	Separator   rune   // field delimiter, default ','
	DecimalMark string // "dot" or "comma", default "dot"
}

// parseTime accepts an ISO-8601 datetime or a bare calendar date. A bare
// date used as the end bound extends through the end of that day. Invalid
// values are ignored rather than failing the whole query.
func parseTime(s string, endOfDay bool) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t
	}
	return nil
}
