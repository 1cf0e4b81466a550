package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistrySupportsAllKnownChains(t *testing.T) {
	r := Default()

	for id := range known {
		assert.True(t, r.Supported(id), "chain %d", id)
	}
	assert.False(t, r.Supported(ID(999999)))
	assert.False(t, r.Supported(ID(0)))
}

func TestNewRegistryRestrictsAllowList(t *testing.T) {
	r, err := NewRegistry(Ethereum, Polygon)
	require.NoError(t, err)

	assert.True(t, r.Supported(Ethereum))
	assert.True(t, r.Supported(Polygon))
	assert.False(t, r.Supported(Base))

	c, ok := r.Lookup(Polygon)
	require.True(t, ok)
	assert.Equal(t, "Polygon", c.Name)
	assert.Equal(t, "pol", c.Blockchain)

	_, ok = r.Lookup(Base)
	assert.False(t, ok)
}

func TestNewRegistryRejectsUnknownChain(t *testing.T) {
	_, err := NewRegistry(Ethereum, ID(12345))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "12345")
}

func TestListIsOrderedByID(t *testing.T) {
	r, err := NewRegistry(Arbitrum, Ethereum, Base)
	require.NoError(t, err)

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, Ethereum, list[0].ID)
	assert.Equal(t, Base, list[1].ID)
	assert.Equal(t, Arbitrum, list[2].ID)
}

func TestPlatformAndNativeAddress(t *testing.T) {
	assert.Equal(t, PlatformSVM, PlatformOf(Solana))
	assert.Equal(t, PlatformEVM, PlatformOf(Ethereum))
	assert.Equal(t, PlatformEVM, PlatformOf(ID(31337)))

	sol, ok := Known(Solana)
	require.True(t, ok)
	assert.Equal(t, NativeAddressSVM, sol.NativeAddress())

	eth, ok := Known(Ethereum)
	require.True(t, ok)
	assert.Equal(t, NativeAddressEVM, eth.NativeAddress())
}
