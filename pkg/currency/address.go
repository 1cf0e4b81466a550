package currency

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"

	"swap-link/pkg/chains"
)

// IsNativeOn reports whether address is the native asset sentinel of chainID.
// Unknown chains use the EVM sentinel.
func IsNativeOn(chainID chains.ID, address string) bool {
	return isNativeFor(chains.PlatformOf(chainID), address)
}

func isNativeFor(platform chains.Platform, address string) bool {
	if platform == chains.PlatformSVM {
		return address == chains.NativeAddressSVM
	}
	return strings.EqualFold(address, chains.NativeAddressEVM)
}

// ValidAddress checks the format of a token address on chainID. Unknown chains
// are validated as EVM. Mixed-case EVM addresses must carry a valid EIP-55
// checksum.
func ValidAddress(chainID chains.ID, address string) bool {
	if IsNativeOn(chainID, address) {
		return true
	}

	switch chains.PlatformOf(chainID) {
	case chains.PlatformSVM:
		_, err := solana.PublicKeyFromBase58(address)
		return err == nil
	default:
		return validEVMAddress(address)
	}
}

func validEVMAddress(address string) bool {
	if !strings.HasPrefix(address, "0x") || !common.IsHexAddress(address) {
		return false
	}

	hex := address[2:]
	if hex == strings.ToLower(hex) || hex == strings.ToUpper(hex) {
		return true
	}

	return common.HexToAddress(address).Hex() == address
}
