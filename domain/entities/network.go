package entities

import "fmt"

// NetworkType identifies the Monero network a wallet belongs to.
// The numeric values follow monero_network_type.
type NetworkType int32

const (
	Mainnet  NetworkType = 0
	Testnet  NetworkType = 1
	Stagenet NetworkType = 2
)

// addressPrefix holds the standard address network byte per network.
var addressPrefix = map[NetworkType]byte{
	Mainnet:  18,
	Testnet:  53,
	Stagenet: 24,
}

// ParseNetworkType converts a network name into a NetworkType.
func ParseNetworkType(s string) (NetworkType, error) {
	switch s {
	case "mainnet", "":
		return Mainnet, nil
	case "testnet":
		return Testnet, nil
	case "stagenet":
		return Stagenet, nil
	default:
		return 0, fmt.Errorf("unknown network type %q", s)
	}
}

// Valid reports whether n is one of the known networks.
func (n NetworkType) Valid() bool {
	_, ok := addressPrefix[n]
	return ok
}

// AddressPrefix returns the address network byte for n.
func (n NetworkType) AddressPrefix() byte {
	return addressPrefix[n]
}

// NetworkFromPrefix is the inverse of AddressPrefix.
func NetworkFromPrefix(b byte) (NetworkType, bool) {
	for n, p := range addressPrefix {
		if p == b {
			return n, true
		}
	}
	return 0, false
}

func (n NetworkType) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	case Stagenet:
		return "stagenet"
	default:
		return fmt.Sprintf("network(%d)", int32(n))
	}
}
