package parser

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"swap-link/pkg/chains"
	"swap-link/pkg/currency"
	"swap-link/pkg/types"
)

// Query parameters of a swap deep link
const (
	ParamInputCurrencyID  = "inputCurrencyId"
	ParamOutputCurrencyID = "outputCurrencyId"
	ParamCurrencyField    = "currencyField"
	ParamAmount           = "amount"
)

// DefaultAmount is used when a link carries no amount parameter
const DefaultAmount = "0"

// Validator turns swap deep links into validated swap parameters
type Validator struct {
	chains *chains.Registry
}

// NewValidator creates a validator that accepts chains from the given
// allow-list. A nil registry accepts every known chain.
func NewValidator(registry *chains.Registry) *Validator {
	if registry == nil {
		registry = chains.Default()
	}
	return &Validator{chains: registry}
}

// ParseSwapLink parses a raw deep link and validates it
func (v *Validator) ParseSwapLink(raw string) (*types.SwapLinkParams, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse swap link: %w", err)
	}
	return v.Validate(u)
}

// Validate checks the query parameters of a swap deep link in a fixed order
// and returns the first violation as a *ValidationError.
func (v *Validator) Validate(u *url.URL) (*types.SwapLinkParams, error) {
	query := u.Query()

	inputCurrencyID := query.Get(ParamInputCurrencyID)
	if inputCurrencyID == "" {
		return nil, &ValidationError{Kind: KindMissingField, Field: ParamInputCurrencyID}
	}

	outputCurrencyID := query.Get(ParamOutputCurrencyID)
	if outputCurrencyID == "" {
		return nil, &ValidationError{Kind: KindMissingField, Field: ParamOutputCurrencyID}
	}

	inputChain, inputAddress := currency.ParseCurrencyID(inputCurrencyID)
	outputChain, outputAddress := currency.ParseCurrencyID(outputCurrencyID)

	if inputChain == 0 || inputAddress == "" {
		return nil, &ValidationError{Kind: KindMalformedIdentifier, Side: SideInput, Value: inputCurrencyID}
	}
	if outputChain == 0 || outputAddress == "" {
		return nil, &ValidationError{Kind: KindMalformedIdentifier, Side: SideOutput, Value: outputCurrencyID}
	}

	if !currency.ValidAddress(inputChain, inputAddress) {
		return nil, &ValidationError{Kind: KindInvalidAddress, Side: SideInput, Value: inputAddress}
	}
	if !currency.ValidAddress(outputChain, outputAddress) {
		return nil, &ValidationError{Kind: KindInvalidAddress, Side: SideOutput, Value: outputAddress}
	}

	if !v.chains.Supported(inputChain) {
		return nil, &ValidationError{Kind: KindUnsupportedChain, Side: SideInput, Value: strconv.Itoa(int(inputChain))}
	}
	if !v.chains.Supported(outputChain) {
		return nil, &ValidationError{Kind: KindUnsupportedChain, Side: SideOutput, Value: strconv.Itoa(int(outputChain))}
	}

	amount := DefaultAmount
	if query.Has(ParamAmount) {
		amount = query.Get(ParamAmount)
	}
	if _, err := ParseAmount(amount); err != nil {
		return nil, &ValidationError{Kind: KindInvalidAmount, Value: amount}
	}

	rawField := query.Get(ParamCurrencyField)
	exactField, err := types.ParseCurrencyField(rawField)
	if err != nil {
		return nil, &ValidationError{Kind: KindInvalidCurrencyField, Value: rawField}
	}

	return &types.SwapLinkParams{
		InputChainID:  inputChain,
		InputAddress:  inputAddress,
		OutputChainID: outputChain,
		OutputAddress: outputAddress,
		ExactField:    exactField,
		ExactAmount:   amount,
	}, nil
}

// ParseAmount parses a token amount as a finite, non-negative decimal in plain
// notation. Exponents are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, fmt.Errorf("invalid amount %q: exponent notation is not allowed", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid amount %q: must not be negative", s)
	}
	return d, nil
}

// BuildSwapLink renders params as a deep link rooted at base
func BuildSwapLink(base string, params types.SwapLinkParams) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid link base %q: %w", base, err)
	}

	query := u.Query()
	query.Set(ParamInputCurrencyID, currency.BuildCurrencyID(params.InputChainID, params.InputAddress))
	query.Set(ParamOutputCurrencyID, currency.BuildCurrencyID(params.OutputChainID, params.OutputAddress))
	query.Set(ParamCurrencyField, string(params.ExactField))
	if params.ExactAmount != "" {
		query.Set(ParamAmount, params.ExactAmount)
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}
