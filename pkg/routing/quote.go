package routing

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"swap-link/pkg/chains"
	"swap-link/pkg/currency"
	"swap-link/pkg/types"
)

// TradeType is the routing API's name for the exact side of a swap
type TradeType string

const (
	ExactIn  TradeType = "exactIn"
	ExactOut TradeType = "exactOut"
)

const (
	// DefaultDeadline is how long a routed trade stays valid
	DefaultDeadline = 30 * time.Minute
	// DefaultSlippageTolerance is a percentage
	DefaultSlippageTolerance = 0.5
)

// Protocols queried when none are given
var Protocols = []string{"v2", "v3", "mixed"}

// TradeQuoteRequest is the input of a routing API quote
type TradeQuoteRequest struct {
	Amount                 string
	Deadline               time.Duration
	EnableUniversalRouter  bool
	FetchSimulatedGasLimit bool
	Recipient              string
	SlippageTolerance      float64
	TokenInAddress         string
	TokenInChainID         chains.ID
	TokenOutAddress        string
	TokenOutChainID        chains.ID
	Type                   TradeType
}

// TradeTypeFor maps the exact side of a swap to a trade type
func TradeTypeFor(field types.CurrencyField) TradeType {
	if field == types.CurrencyFieldOutput {
		return ExactOut
	}
	return ExactIn
}

// NewTradeQuoteRequest builds a quote request from validated link params.
// amount must already be in the token's base units.
func NewTradeQuoteRequest(params *types.SwapLinkParams, amount string) *TradeQuoteRequest {
	return &TradeQuoteRequest{
		Amount:                amount,
		EnableUniversalRouter: true,
		TokenInAddress:        params.InputAddress,
		TokenInChainID:        params.InputChainID,
		TokenOutAddress:       params.OutputAddress,
		TokenOutChainID:       params.OutputChainID,
		Type:                  TradeTypeFor(params.ExactField),
	}
}

// TokenInIsNative reports whether the input token is a native asset
func (r *TradeQuoteRequest) TokenInIsNative() bool {
	return currency.IsNativeOn(r.TokenInChainID, r.TokenInAddress)
}

// TokenOutIsNative reports whether the output token is a native asset
func (r *TradeQuoteRequest) TokenOutIsNative() bool {
	return currency.IsNativeOn(r.TokenOutChainID, r.TokenOutAddress)
}

// Values serializes the request into routing API query parameters.
// Recipient-dependent fields are only sent when a recipient is set.
func (r *TradeQuoteRequest) Values() url.Values {
	v := url.Values{}
	v.Set("protocols", strings.Join(Protocols, ","))
	v.Set("amount", r.Amount)
	v.Set("enableUniversalRouter", strconv.FormatBool(r.EnableUniversalRouter))
	v.Set("tokenInAddress", r.TokenInAddress)
	v.Set("tokenInChainId", strconv.Itoa(int(r.TokenInChainID)))
	v.Set("tokenOutAddress", r.TokenOutAddress)
	v.Set("tokenOutChainId", strconv.Itoa(int(r.TokenOutChainID)))
	v.Set("type", string(r.Type))

	if r.Recipient != "" {
		deadline := r.Deadline
		if deadline == 0 {
			deadline = DefaultDeadline
		}
		slippage := r.SlippageTolerance
		if slippage == 0 {
			slippage = DefaultSlippageTolerance
		}

		v.Set("recipient", r.Recipient)
		v.Set("slippageTolerance", strconv.FormatFloat(slippage, 'f', -1, 64))
		v.Set("deadline", strconv.Itoa(int(deadline/time.Second)))

		if r.FetchSimulatedGasLimit {
			v.Set("simulateFromAddress", r.Recipient)
		}
	}

	return v
}

// QuotePath returns the routing API path for the request
func (r *TradeQuoteRequest) QuotePath() string {
	return "/v1/quote?" + r.Values().Encode()
}
