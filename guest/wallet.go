//go:build wasip1

package guest

import (
	"github.com/0-don/monero-ts/domain/entities"
	"github.com/0-don/monero-ts/internal/abi"
)

// UtilsDummyMethod calls utils_dummy_method.
func UtilsDummyMethod() int32 { return utilsDummyMethod() }

// DummyMethod calls dummy_method.
func DummyMethod() int32 { return dummyMethod() }

// CreateWalletRandom opens a wallet from a freshly generated mnemonic.
func CreateWalletRandom() entities.Handle {
	return entities.Handle(createWalletRandom())
}

// CreateWalletDummy opens the fixed test wallet.
func CreateWalletDummy() entities.Handle {
	return entities.Handle(createWalletDummy())
}

// Mnemonic returns the seed phrase of h.
func Mnemonic(h entities.Handle) string {
	return abi.ReadString(getMnemonic(uint32(h)))
}

// PrimaryAddress returns the standard address of h.
func PrimaryAddress(h entities.Handle) string {
	return abi.ReadString(getPrimaryAddress(uint32(h)))
}

// NetworkType returns the network h was created on.
func NetworkType(h entities.Handle) entities.NetworkType {
	return entities.NetworkType(getNetworkType(uint32(h)))
}

// CloseWallet releases h.
func CloseWallet(h entities.Handle) {
	closeWallet(uint32(h))
}

// ValidateMnemonic reports whether phrase is a well-formed seed phrase.
func ValidateMnemonic(phrase string) bool {
	packed := abi.PackString(phrase)
	defer abi.Release(packed)
	return utilsValidateMnemonic(packed) != 0
}

// ValidateAddress reports whether address decodes with a known prefix and a
// matching checksum.
func ValidateAddress(address string) bool {
	packed := abi.PackString(address)
	defer abi.Release(packed)
	return utilsValidateAddress(packed) != 0
}
