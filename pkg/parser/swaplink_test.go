package parser

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swap-link/pkg/chains"
	"swap-link/pkg/types"
)

const (
	usdcMainnet = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	usdcPolygon = "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"
	usdcSolana  = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	badChecksum = "0xa0B86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
)

func link(values map[string]string) string {
	q := url.Values{}
	for k, v := range values {
		q.Set(k, v)
	}
	return "uniswap://swap?" + q.Encode()
}

func validLink() map[string]string {
	return map[string]string{
		ParamInputCurrencyID:  "1-" + chains.NativeAddressEVM,
		ParamOutputCurrencyID: "137-" + usdcPolygon,
		ParamCurrencyField:    "output",
		ParamAmount:           "500",
	}
}

func with(overrides map[string]string, drop ...string) string {
	values := validLink()
	for k, v := range overrides {
		values[k] = v
	}
	for _, k := range drop {
		delete(values, k)
	}
	return link(values)
}

func TestValidateSuccess(t *testing.T) {
	v := NewValidator(nil)

	params, err := v.ParseSwapLink(with(nil))
	require.NoError(t, err)

	assert.Equal(t, &types.SwapLinkParams{
		InputChainID:  chains.Ethereum,
		InputAddress:  chains.NativeAddressEVM,
		OutputChainID: chains.Polygon,
		OutputAddress: usdcPolygon,
		ExactField:    types.CurrencyFieldOutput,
		ExactAmount:   "500",
	}, params)
}

func TestValidateEchoesIdentifiers(t *testing.T) {
	v := NewValidator(nil)

	params, err := v.ParseSwapLink(with(map[string]string{
		ParamInputCurrencyID:  "8453-" + usdcMainnet,
		ParamOutputCurrencyID: "501000101-" + usdcSolana,
		ParamCurrencyField:    "input",
	}))
	require.NoError(t, err)

	assert.Equal(t, chains.Base, params.InputChainID)
	assert.Equal(t, usdcMainnet, params.InputAddress)
	assert.Equal(t, chains.Solana, params.OutputChainID)
	assert.Equal(t, usdcSolana, params.OutputAddress)
	assert.Equal(t, types.CurrencyFieldInput, params.ExactField)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		link  string
		kind  ErrorKind
		field string
		side  Side
	}{
		{
			name:  "missing input currency",
			link:  with(nil, ParamInputCurrencyID),
			kind:  KindMissingField,
			field: ParamInputCurrencyID,
		},
		{
			name:  "missing output currency",
			link:  with(nil, ParamOutputCurrencyID),
			kind:  KindMissingField,
			field: ParamOutputCurrencyID,
		},
		{
			name:  "missing both reports input first",
			link:  with(nil, ParamInputCurrencyID, ParamOutputCurrencyID),
			kind:  KindMissingField,
			field: ParamInputCurrencyID,
		},
		{
			name:  "empty input currency",
			link:  with(map[string]string{ParamInputCurrencyID: ""}),
			kind:  KindMissingField,
			field: ParamInputCurrencyID,
		},
		{
			name:  "missing output currency before malformed input",
			link:  with(map[string]string{ParamInputCurrencyID: "garbage"}, ParamOutputCurrencyID),
			kind:  KindMissingField,
			field: ParamOutputCurrencyID,
		},
		{
			name: "input without delimiter",
			link: with(map[string]string{ParamInputCurrencyID: "1" + usdcMainnet}),
			kind: KindMalformedIdentifier,
			side: SideInput,
		},
		{
			name: "output without address",
			link: with(map[string]string{ParamOutputCurrencyID: "137-"}),
			kind: KindMalformedIdentifier,
			side: SideOutput,
		},
		{
			name: "non numeric chain",
			link: with(map[string]string{ParamOutputCurrencyID: "polygon-" + usdcPolygon}),
			kind: KindMalformedIdentifier,
			side: SideOutput,
		},
		{
			name: "malformed input reported before invalid output address",
			link: with(map[string]string{ParamInputCurrencyID: "1", ParamOutputCurrencyID: "137-0xnope"}),
			kind: KindMalformedIdentifier,
			side: SideInput,
		},
		{
			name: "invalid input address",
			link: with(map[string]string{ParamInputCurrencyID: "1-0x1234"}),
			kind: KindInvalidAddress,
			side: SideInput,
		},
		{
			name: "bad checksum on output",
			link: with(map[string]string{ParamOutputCurrencyID: "1-" + badChecksum}),
			kind: KindInvalidAddress,
			side: SideOutput,
		},
		{
			name: "evm address on solana",
			link: with(map[string]string{ParamOutputCurrencyID: "501000101-" + usdcMainnet}),
			kind: KindInvalidAddress,
			side: SideOutput,
		},
		{
			name: "solana native sentinel on ethereum",
			link: with(map[string]string{ParamInputCurrencyID: "1-" + chains.NativeAddressSVM}),
			kind: KindInvalidAddress,
			side: SideInput,
		},
		{
			name: "evm native sentinel on solana",
			link: with(map[string]string{ParamOutputCurrencyID: "501000101-" + chains.NativeAddressEVM}),
			kind: KindInvalidAddress,
			side: SideOutput,
		},
		{
			name: "invalid address reported before unsupported chain",
			link: with(map[string]string{ParamInputCurrencyID: "999-" + usdcMainnet, ParamOutputCurrencyID: "1-0xbad"}),
			kind: KindInvalidAddress,
			side: SideOutput,
		},
		{
			name: "unsupported input chain with valid address",
			link: with(map[string]string{ParamInputCurrencyID: "999-" + usdcMainnet}),
			kind: KindUnsupportedChain,
			side: SideInput,
		},
		{
			name: "unsupported output chain",
			link: with(map[string]string{ParamOutputCurrencyID: "5-" + usdcMainnet}),
			kind: KindUnsupportedChain,
			side: SideOutput,
		},
		{
			name: "non numeric amount",
			link: with(map[string]string{ParamAmount: "abc"}),
			kind: KindInvalidAmount,
		},
		{
			name: "two decimal points",
			link: with(map[string]string{ParamAmount: "1.2.3"}),
			kind: KindInvalidAmount,
		},
		{
			name: "negative amount",
			link: with(map[string]string{ParamAmount: "-5"}),
			kind: KindInvalidAmount,
		},
		{
			name: "exponent amount",
			link: with(map[string]string{ParamAmount: "1e5"}),
			kind: KindInvalidAmount,
		},
		{
			name: "huge exponent amount",
			link: with(map[string]string{ParamAmount: "1E2000000000"}),
			kind: KindInvalidAmount,
		},
		{
			name: "empty amount",
			link: with(map[string]string{ParamAmount: ""}),
			kind: KindInvalidAmount,
		},
		{
			name: "invalid amount reported before currency field",
			link: with(map[string]string{ParamAmount: "abc", ParamCurrencyField: "both"}),
			kind: KindInvalidAmount,
		},
		{
			name: "unknown currency field",
			link: with(map[string]string{ParamCurrencyField: "both"}),
			kind: KindInvalidCurrencyField,
		},
		{
			name: "empty currency field",
			link: with(map[string]string{ParamCurrencyField: ""}),
			kind: KindInvalidCurrencyField,
		},
		{
			name: "absent currency field",
			link: with(nil, ParamCurrencyField),
			kind: KindInvalidCurrencyField,
		},
	}

	v := NewValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := v.ParseSwapLink(tt.link)
			require.Error(t, err)
			assert.Nil(t, params)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.kind, verr.Kind)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.side, verr.Side)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestValidateCurrencyFieldCaseInsensitive(t *testing.T) {
	v := NewValidator(nil)

	for raw, want := range map[string]types.CurrencyField{
		"input":  types.CurrencyFieldInput,
		"INPUT":  types.CurrencyFieldInput,
		"Input":  types.CurrencyFieldInput,
		"output": types.CurrencyFieldOutput,
		"OUTPUT": types.CurrencyFieldOutput,
		"oUtPuT": types.CurrencyFieldOutput,
	} {
		params, err := v.ParseSwapLink(with(map[string]string{ParamCurrencyField: raw}))
		require.NoError(t, err, raw)
		assert.Equal(t, want, params.ExactField, raw)
	}
}

func TestValidateAmountDefaultsToZero(t *testing.T) {
	v := NewValidator(nil)

	params, err := v.ParseSwapLink(with(nil, ParamAmount))
	require.NoError(t, err)
	assert.Equal(t, DefaultAmount, params.ExactAmount)
}

func TestValidateAcceptsDecimalAmount(t *testing.T) {
	v := NewValidator(nil)

	params, err := v.ParseSwapLink(with(map[string]string{ParamAmount: "0.25"}))
	require.NoError(t, err)
	assert.Equal(t, "0.25", params.ExactAmount)
}

func TestValidateRespectsAllowList(t *testing.T) {
	registry, err := chains.NewRegistry(chains.Ethereum)
	require.NoError(t, err)
	v := NewValidator(registry)

	_, err = v.ParseSwapLink(with(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedChain))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, SideOutput, verr.Side)
	assert.Equal(t, "137", verr.Value)
}

func TestErrorsIsMatchesKindSentinel(t *testing.T) {
	v := NewValidator(nil)

	_, err := v.ParseSwapLink(with(nil, ParamOutputCurrencyID))
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrMissingField))
	assert.False(t, errors.Is(err, ErrInvalidAmount))
	assert.Equal(t, "no outputCurrencyId", err.Error())
}

func TestParseSwapLinkRejectsUnparseableURL(t *testing.T) {
	v := NewValidator(nil)

	_, err := v.ParseSwapLink("://bad url")
	require.Error(t, err)
	assert.Equal(t, ErrorKind(0), KindOf(err))
}

func TestBuildSwapLinkRoundTrip(t *testing.T) {
	params := types.SwapLinkParams{
		InputChainID:  chains.Arbitrum,
		InputAddress:  chains.NativeAddressEVM,
		OutputChainID: chains.Ethereum,
		OutputAddress: usdcMainnet,
		ExactField:    types.CurrencyFieldInput,
		ExactAmount:   "1.5",
	}

	raw, err := BuildSwapLink("uniswap://swap", params)
	require.NoError(t, err)

	parsed, err := NewValidator(nil).ParseSwapLink(raw)
	require.NoError(t, err)
	assert.Equal(t, params, *parsed)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "MissingField", KindMissingField.String())
	assert.Equal(t, "InvalidCurrencyField", KindInvalidCurrencyField.String())
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}
