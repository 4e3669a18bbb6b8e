package errors

var (
	ErrInvalidAmount = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_AMOUNT",
		Message: "amount must be greater than zero",
	}
	ErrInvalidTipo = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_TIPO",
		Message: "tipo must be CREDITO or DEBITO",
	}
	ErrWalletNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrInvoiceNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "INVOICE_NOT_FOUND",
		Message: "invoice not found",
	}
	ErrInvoiceFinal = &DomainError{
		Kind:    KindConflict,
		Code:    "INVOICE_FINAL",
		Message: "invoice is in a terminal status",
	}
	ErrBalanceMismatch = &DomainError{
		Kind:    KindIntegrity,
		Code:    "BALANCE_MISMATCH",
		Message: "wallet balance does not match its ledger",
	}
)
