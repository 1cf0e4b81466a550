package currency

import (
	"strconv"
	"strings"

	"swap-link/pkg/chains"
)

// Delimiter separates the chain id from the token address in a currency id
const Delimiter = "-"

// ParseCurrencyID splits a "<chainId>-<tokenAddress>" identifier.
// A zero chain id or an empty address means that segment is absent or could
// not be parsed; callers decide which error to raise.
func ParseCurrencyID(id string) (chains.ID, string) {
	chainPart, address, found := strings.Cut(id, Delimiter)
	if !found {
		return parseChainID(chainPart), ""
	}
	return parseChainID(chainPart), address
}

// BuildCurrencyID joins a chain id and address into a currency id
func BuildCurrencyID(chainID chains.ID, address string) string {
	return strconv.Itoa(int(chainID)) + Delimiter + address
}

func parseChainID(s string) chains.ID {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return chains.ID(n)
}
