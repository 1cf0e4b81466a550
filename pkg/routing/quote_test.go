package routing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"swap-link/pkg/chains"
	"swap-link/pkg/types"
)

const usdcMainnet = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"

func params(field types.CurrencyField) *types.SwapLinkParams {
	return &types.SwapLinkParams{
		InputChainID:  chains.Ethereum,
		InputAddress:  chains.NativeAddressEVM,
		OutputChainID: chains.Ethereum,
		OutputAddress: usdcMainnet,
		ExactField:    field,
		ExactAmount:   "1",
	}
}

func TestTradeTypeFor(t *testing.T) {
	assert.Equal(t, ExactIn, TradeTypeFor(types.CurrencyFieldInput))
	assert.Equal(t, ExactOut, TradeTypeFor(types.CurrencyFieldOutput))
}

func TestValuesWithoutRecipient(t *testing.T) {
	req := NewTradeQuoteRequest(params(types.CurrencyFieldInput), "1000000000000000000")
	v := req.Values()

	assert.Equal(t, "v2,v3,mixed", v.Get("protocols"))
	assert.Equal(t, "1000000000000000000", v.Get("amount"))
	assert.Equal(t, "true", v.Get("enableUniversalRouter"))
	assert.Equal(t, chains.NativeAddressEVM, v.Get("tokenInAddress"))
	assert.Equal(t, "1", v.Get("tokenInChainId"))
	assert.Equal(t, usdcMainnet, v.Get("tokenOutAddress"))
	assert.Equal(t, "exactIn", v.Get("type"))

	assert.False(t, v.Has("recipient"))
	assert.False(t, v.Has("slippageTolerance"))
	assert.False(t, v.Has("deadline"))
	assert.False(t, v.Has("simulateFromAddress"))
}

func TestValuesWithRecipientAppliesDefaults(t *testing.T) {
	req := NewTradeQuoteRequest(params(types.CurrencyFieldOutput), "5")
	req.Recipient = usdcMainnet
	v := req.Values()

	assert.Equal(t, "exactOut", v.Get("type"))
	assert.Equal(t, usdcMainnet, v.Get("recipient"))
	assert.Equal(t, "0.5", v.Get("slippageTolerance"))
	assert.Equal(t, "1800", v.Get("deadline"))
	assert.False(t, v.Has("simulateFromAddress"))

	req.FetchSimulatedGasLimit = true
	req.SlippageTolerance = 1.25
	req.Deadline = 10 * time.Minute
	v = req.Values()

	assert.Equal(t, usdcMainnet, v.Get("simulateFromAddress"))
	assert.Equal(t, "1.25", v.Get("slippageTolerance"))
	assert.Equal(t, "600", v.Get("deadline"))
}

func TestNativeDetection(t *testing.T) {
	req := NewTradeQuoteRequest(params(types.CurrencyFieldInput), "1")
	assert.True(t, req.TokenInIsNative())
	assert.False(t, req.TokenOutIsNative())
}

func TestQuotePath(t *testing.T) {
	req := NewTradeQuoteRequest(params(types.CurrencyFieldInput), "1")
	assert.Contains(t, req.QuotePath(), "/v1/quote?")
	assert.Contains(t, req.QuotePath(), "type=exactIn")
}

func TestNativeDetectionIsPerChain(t *testing.T) {
	p := params(types.CurrencyFieldInput)
	p.InputChainID = chains.Solana
	req := NewTradeQuoteRequest(p, "1")
	assert.False(t, req.TokenInIsNative())

	p.InputAddress = chains.NativeAddressSVM
	req = NewTradeQuoteRequest(p, "1")
	assert.True(t, req.TokenInIsNative())
}
