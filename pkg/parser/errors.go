package parser

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a swap link was rejected
type ErrorKind int

const (
	KindMissingField ErrorKind = iota + 1
	KindMalformedIdentifier
	KindInvalidAddress
	KindUnsupportedChain
	KindInvalidAmount
	KindInvalidCurrencyField
)

// Sentinels matched by errors.Is against a *ValidationError of the same kind
var (
	ErrMissingField         = errors.New("missing field")
	ErrMalformedIdentifier  = errors.New("malformed currency identifier")
	ErrInvalidAddress       = errors.New("invalid token address")
	ErrUnsupportedChain     = errors.New("unsupported chain")
	ErrInvalidAmount        = errors.New("invalid swap amount")
	ErrInvalidCurrencyField = errors.New("invalid currency field")
)

var kindSentinels = map[ErrorKind]error{
	KindMissingField:         ErrMissingField,
	KindMalformedIdentifier:  ErrMalformedIdentifier,
	KindInvalidAddress:       ErrInvalidAddress,
	KindUnsupportedChain:     ErrUnsupportedChain,
	KindInvalidAmount:        ErrInvalidAmount,
	KindInvalidCurrencyField: ErrInvalidCurrencyField,
}

func (k ErrorKind) String() string {
	switch k {
	case KindMissingField:
		return "MissingField"
	case KindMalformedIdentifier:
		return "MalformedIdentifier"
	case KindInvalidAddress:
		return "InvalidAddress"
	case KindUnsupportedChain:
		return "UnsupportedChain"
	case KindInvalidAmount:
		return "InvalidAmount"
	case KindInvalidCurrencyField:
		return "InvalidCurrencyField"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Side names which currency identifier an error refers to
type Side string

const (
	SideInput  Side = "input"
	SideOutput Side = "output"
)

// param returns the query parameter that carries the side's currency id
func (s Side) param() string {
	return string(s) + "CurrencyId"
}

// ValidationError is the single error type returned by the validator
type ValidationError struct {
	Kind ErrorKind
	// Field is set for KindMissingField
	Field string
	// Side is set for identifier, address and chain errors
	Side Side
	// Value is the offending raw value, when there is one
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("no %s", e.Field)
	case KindMalformedIdentifier:
		return fmt.Sprintf("invalid %s %q: must be of format `<chainId>-<tokenAddress>`", e.Side.param(), e.Value)
	case KindInvalidAddress:
		return fmt.Sprintf("invalid tokenAddress %q provided within %s", e.Value, e.Side.param())
	case KindUnsupportedChain:
		return fmt.Sprintf("invalid %s: chain ID %s is not supported", e.Side.param(), e.Value)
	case KindInvalidAmount:
		return fmt.Sprintf("invalid swap amount %q", e.Value)
	case KindInvalidCurrencyField:
		return fmt.Sprintf("invalid currencyField %q: must be either `input` or `output`", e.Value)
	default:
		return "invalid swap link"
	}
}

// Unwrap exposes the kind sentinel so errors.Is works on wrapped errors
func (e *ValidationError) Unwrap() error {
	return kindSentinels[e.Kind]
}

// KindOf returns the validation kind of err, or zero if err is not a
// validation error.
func KindOf(err error) ErrorKind {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return 0
}
