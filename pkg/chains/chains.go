package chains

import (
	"fmt"
	"sort"
)

// ID is a network identifier as it appears in a currency identifier
type ID int

// Platform identifies the address family a chain uses
type Platform string

const (
	PlatformEVM Platform = "evm"
	PlatformSVM Platform = "svm"
)

// Native asset sentinels used in place of a token contract address
const (
	NativeAddressEVM = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"
	NativeAddressSVM = "So11111111111111111111111111111111111111112"
)

const (
	Ethereum   ID = 1
	Optimism   ID = 10
	BNB        ID = 56
	Unichain   ID = 130
	Polygon    ID = 137
	ZkSync     ID = 324
	WorldChain ID = 480
	Base       ID = 8453
	Arbitrum   ID = 42161
	Celo       ID = 42220
	Avalanche  ID = 43114
	Blast      ID = 81457
	Zora       ID = 7777777
	Solana     ID = 501000101
)

// Chain describes a network a swap link may reference
type Chain struct {
	ID           ID       `json:"id"`
	Name         string   `json:"name"`
	Platform     Platform `json:"platform"`
	NativeSymbol string   `json:"native_symbol"`
	// Blockchain is the network name used by the 1Click token list
	Blockchain string `json:"blockchain,omitempty"`
}

// NativeAddress returns the sentinel address of the chain's native asset
func (c Chain) NativeAddress() string {
	if c.Platform == PlatformSVM {
		return NativeAddressSVM
	}
	return NativeAddressEVM
}

var known = map[ID]Chain{
	Ethereum:   {ID: Ethereum, Name: "Ethereum", Platform: PlatformEVM, NativeSymbol: "ETH", Blockchain: "eth"},
	Optimism:   {ID: Optimism, Name: "Optimism", Platform: PlatformEVM, NativeSymbol: "ETH", Blockchain: "op"},
	BNB:        {ID: BNB, Name: "BNB Chain", Platform: PlatformEVM, NativeSymbol: "BNB", Blockchain: "bsc"},
	Unichain:   {ID: Unichain, Name: "Unichain", Platform: PlatformEVM, NativeSymbol: "ETH"},
	Polygon:    {ID: Polygon, Name: "Polygon", Platform: PlatformEVM, NativeSymbol: "POL", Blockchain: "pol"},
	ZkSync:     {ID: ZkSync, Name: "zkSync", Platform: PlatformEVM, NativeSymbol: "ETH"},
	WorldChain: {ID: WorldChain, Name: "World Chain", Platform: PlatformEVM, NativeSymbol: "ETH"},
	Base:       {ID: Base, Name: "Base", Platform: PlatformEVM, NativeSymbol: "ETH", Blockchain: "base"},
	Arbitrum:   {ID: Arbitrum, Name: "Arbitrum", Platform: PlatformEVM, NativeSymbol: "ETH", Blockchain: "arb"},
	Celo:       {ID: Celo, Name: "Celo", Platform: PlatformEVM, NativeSymbol: "CELO"},
	Avalanche:  {ID: Avalanche, Name: "Avalanche", Platform: PlatformEVM, NativeSymbol: "AVAX", Blockchain: "avax"},
	Blast:      {ID: Blast, Name: "Blast", Platform: PlatformEVM, NativeSymbol: "ETH"},
	Zora:       {ID: Zora, Name: "Zora", Platform: PlatformEVM, NativeSymbol: "ETH"},
	Solana:     {ID: Solana, Name: "Solana", Platform: PlatformSVM, NativeSymbol: "SOL", Blockchain: "sol"},
}

// Known returns the chain description for any chain this module knows about,
// whether or not it is part of an allow-list.
func Known(id ID) (Chain, bool) {
	c, ok := known[id]
	return c, ok
}

// PlatformOf returns the address platform for a chain id. Unknown chains are
// treated as EVM.
func PlatformOf(id ID) Platform {
	if c, ok := known[id]; ok {
		return c.Platform
	}
	return PlatformEVM
}

// Registry is the allow-list of chains a swap link may reference
type Registry struct {
	chains map[ID]Chain
}

// NewRegistry builds an allow-list from the given ids. With no ids every
// known chain is supported.
func NewRegistry(ids ...ID) (*Registry, error) {
	r := &Registry{chains: make(map[ID]Chain)}

	if len(ids) == 0 {
		for id, c := range known {
			r.chains[id] = c
		}
		return r, nil
	}

	for _, id := range ids {
		c, ok := known[id]
		if !ok {
			return nil, fmt.Errorf("unknown chain id: %d", id)
		}
		r.chains[id] = c
	}

	return r, nil
}

// Default returns a registry of every known chain
func Default() *Registry {
	r, _ := NewRegistry()
	return r
}

// Supported reports whether id is in the allow-list
func (r *Registry) Supported(id ID) bool {
	_, ok := r.chains[id]
	return ok
}

// Lookup returns the chain for id if it is in the allow-list
func (r *Registry) Lookup(id ID) (Chain, bool) {
	c, ok := r.chains[id]
	return c, ok
}

// List returns the supported chains ordered by id
func (r *Registry) List() []Chain {
	list := make([]Chain, 0, len(r.chains))
	for _, c := range r.chains {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
