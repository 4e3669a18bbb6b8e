package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BuildQRPayload produces the simplified PIX copy-and-paste payload shown to
// the payer. The format embeds the txid and the amount with two decimal
// places; it is stable so clients can render it deterministically.
func BuildQRPayload(txid string, valor decimal.Decimal) string {
	return fmt.Sprintf("0002012636BR.GOV.BCB.PIX01DILSPAY02%s520400005303986540%s5802BR",
		txid, valor.StringFixed(2))
}
