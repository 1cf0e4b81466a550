package types

import (
	"fmt"
	"strings"

	"swap-link/pkg/chains"
)

// CurrencyField identifies a side of a swap
type CurrencyField string

const (
	CurrencyFieldInput  CurrencyField = "input"
	CurrencyFieldOutput CurrencyField = "output"
)

// ParseCurrencyField accepts "input" or "output" in any case
func ParseCurrencyField(s string) (CurrencyField, error) {
	switch strings.ToLower(s) {
	case string(CurrencyFieldInput):
		return CurrencyFieldInput, nil
	case string(CurrencyFieldOutput):
		return CurrencyFieldOutput, nil
	default:
		return "", fmt.Errorf("invalid currency field %q", s)
	}
}

// SwapLinkParams is the validated content of a swap deep link
type SwapLinkParams struct {
	InputChainID  chains.ID     `json:"inputChainId"`
	InputAddress  string        `json:"inputAddress"`
	OutputChainID chains.ID     `json:"outputChainId"`
	OutputAddress string        `json:"outputAddress"`
	ExactField    CurrencyField `json:"exactField"`
	ExactAmount   string        `json:"exactAmount"`
}

// AssetType classifies a form asset
type AssetType string

const AssetTypeCurrency AssetType = "currency"

// CurrencyAsset is one side of a prefilled swap form
type CurrencyAsset struct {
	Address string    `json:"address"`
	ChainID chains.ID `json:"chainId"`
	Type    AssetType `json:"type"`
}

// SwapFormState is the prefill state carried by an open-swap event
type SwapFormState struct {
	Input              CurrencyAsset `json:"input"`
	Output             CurrencyAsset `json:"output"`
	ExactCurrencyField CurrencyField `json:"exactCurrencyField"`
	ExactAmountToken   string        `json:"exactAmountToken"`
}

// FormState converts validated link params into swap form prefill state
func (p *SwapLinkParams) FormState() *SwapFormState {
	return &SwapFormState{
		Input: CurrencyAsset{
			Address: p.InputAddress,
			ChainID: p.InputChainID,
			Type:    AssetTypeCurrency,
		},
		Output: CurrencyAsset{
			Address: p.OutputAddress,
			ChainID: p.OutputChainID,
			Type:    AssetTypeCurrency,
		},
		ExactCurrencyField: p.ExactField,
		ExactAmountToken:   p.ExactAmount,
	}
}

// EventSwap is the name of the event that opens the swap view
const EventSwap = "Swap"

// Event is emitted once per handled deep link. A nil InitialState opens an
// empty swap form.
type Event struct {
	Name         string         `json:"name"`
	InitialState *SwapFormState `json:"initialState,omitempty"`
}

// Prefilled reports whether the event carries swap form state
func (e Event) Prefilled() bool {
	return e.InitialState != nil
}
