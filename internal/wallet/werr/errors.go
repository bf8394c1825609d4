// Package werr defines the error taxonomy shared by the wallet controllers.
package werr

import (
	"errors"
	"fmt"
)

// Kind classifies where a failure came from.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindServer     Kind = "server"
	KindTransport  Kind = "transport"
	KindStorage    Kind = "storage"
	KindSession    Kind = "session"
)

// Validation codes. Each identifies the local check that rejected the input.
const (
	CodeMissingSeedPhrase   = "missing_seed_phrase"
	CodeWordCount           = "word_count"
	CodeInvalidPhrase       = "invalid_phrase"
	CodeMissingFields       = "missing_fields"
	CodeInvalidAmount       = "invalid_amount"
	CodeNonPositiveAmount   = "non_positive_amount"
	CodeInsufficientBalance = "insufficient_balance"
	CodeInvalidAddress      = "invalid_address"
	CodeIncompleteWords     = "incomplete_words"
	CodeWordsMismatch       = "words_mismatch"
	CodeTermsNotAccepted    = "terms_not_accepted"
	CodeBackupUnconfirmed   = "backup_unconfirmed"
)

// Error is a user-facing failure. Message is always safe to show.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Validation builds a local, pre-network rejection.
func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func Server(message string) *Error {
	return &Error{Kind: KindServer, Message: message}
}

func Transport(message string) *Error {
	return &Error{Kind: KindTransport, Message: message}
}

func Session(message string) *Error {
	return &Error{Kind: KindSession, Message: message}
}

func Storage(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: message, Cause: cause}
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// CodeOf returns the validation code of err, or "" if it has none.
func CodeOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
