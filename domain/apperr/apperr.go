// Package apperr carries domain errors across request-reply boundaries.
// Services put a Fault in their response instead of returning the error, so
// the caller can rebuild an error that still matches the original sentinel
// with errors.Is.
package apperr

import (
	"errors"

	"github.com/example/furniture-configurator/domain/cart"
	"github.com/example/furniture-configurator/domain/catalog"
	"github.com/example/furniture-configurator/domain/configurator"
)

// Code is a machine-readable error class.
type Code string

const (
	CodeNotFound          Code = "not_found"
	CodeInvalidSelection  Code = "invalid_selection"
	CodeNoProductSelected Code = "no_product_selected"
	CodeIncompatible      Code = "incompatible_configuration"
	CodeInvalidQuantity   Code = "invalid_quantity"
	CodeInvalidSetting    Code = "invalid_setting"
	CodeInternal          Code = "internal"
)

// sentinels maps each domain sentinel to its code and a reason unique
// within the table. Several sentinels share CodeNotFound; the reason tells
// them apart on the far side of a service call.
var sentinels = []struct {
	code   Code
	reason string
	err    error
}{
	{CodeNotFound, "catalog_entry", catalog.ErrNotFound},
	{CodeNotFound, "session", configurator.ErrSessionNotFound},
	{CodeNotFound, "cart_item", cart.ErrItemNotFound},
	{CodeInvalidSelection, "", configurator.ErrInvalidSelection},
	{CodeNoProductSelected, "", configurator.ErrNoProductSelected},
	{CodeIncompatible, "", cart.ErrIncompatibleConfiguration},
	{CodeInvalidQuantity, "", cart.ErrInvalidQuantity},
	{CodeInvalidSetting, "", configurator.ErrInvalidSetting},
}

// CodeOf classifies err. Unknown errors are CodeInternal.
func CodeOf(err error) Code {
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	return CodeInternal
}

// Error is an error rebuilt from a Fault.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Fault is embedded in service responses.
type Fault struct {
	ErrorCode Code   `json:"error_code,omitempty"`
	Reason    string `json:"error_reason,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewFault describes err for the wire.
func NewFault(err error) Fault {
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return Fault{ErrorCode: s.code, Reason: s.reason, Error: err.Error()}
		}
	}
	return Fault{ErrorCode: CodeInternal, Error: err.Error()}
}

// Err rebuilds the error, or returns nil when the response carries none.
// The rebuilt error matches the sentinel named by code and reason; a fault
// without a reason matches the first sentinel of its code.
func (f Fault) Err() error {
	if f.ErrorCode == "" {
		return nil
	}
	e := &Error{Code: f.ErrorCode, Message: f.Error}
	for _, s := range sentinels {
		if s.code == f.ErrorCode && (f.Reason == "" || s.reason == f.Reason) {
			e.cause = s.err
			break
		}
	}
	return e
}
