// Package errors defines the domain error taxonomy shared by services and
// handlers. Every user-visible failure carries a stable machine-readable
// code plus a human-readable message; handlers map the Kind to an HTTP
// status.
package errors

import "errors"

type Kind string

const (
	KindValidation Kind = "validation" // malformed or out-of-range input
	KindAuth       Kind = "auth"       // missing or invalid signature/credentials
	KindNotFound   Kind = "not_found"  // unknown wallet/invoice/txid
	KindConflict   Kind = "conflict"   // duplicate-write race lost at the storage layer
	KindIntegrity  Kind = "integrity"  // balance invariant violated
)

type DomainError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *DomainError) Error() string { return e.Message }

func Validation(code, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: message}
}

func Auth(code, message string) *DomainError {
	return &DomainError{Kind: KindAuth, Code: code, Message: message}
}

func NotFound(code, message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) *DomainError {
	return &DomainError{Kind: KindConflict, Code: code, Message: message}
}

func Integrity(code, message string) *DomainError {
	return &DomainError{Kind: KindIntegrity, Code: code, Message: message}
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}

// AsDomain extracts a DomainError from err if present.
func AsDomain(err error) (*DomainError, bool) {
	var de *DomainError
	ok := errors.As(err, &de)
	return de, ok
}
