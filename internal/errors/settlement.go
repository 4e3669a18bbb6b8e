package errors

var (
	ErrMissingSignature = &DomainError{
		Kind:    KindValidation,
		Code:    "MISSING_SIGNATURE",
		Message: "missing webhook signature",
	}
	ErrInvalidSignature = &DomainError{
		Kind:    KindAuth,
		Code:    "INVALID_SIGNATURE",
		Message: "invalid webhook signature",
	}
	ErrInvalidPayload = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_PAYLOAD",
		Message: "invalid webhook payload",
	}
	ErrPaymentNotConfirmed = &DomainError{
		Kind:    KindValidation,
		Code:    "PAYMENT_NOT_CONFIRMED",
		Message: "payment status is not a confirmation",
	}
)
