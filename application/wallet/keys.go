// Package wallet implements the native wallet module: key material,
// addresses and the handle table behind the wallet exports.
package wallet

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// MnemonicEntropyBits is the entropy size for 24-word mnemonics.
const MnemonicEntropyBits = 256

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// DummyMnemonic is the fixed phrase behind every dummy wallet.
const DummyMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// BIP-44 path m/44'/128'/0'/0/0.
const (
	PurposeBIP44   = bip32.FirstHardenedChild + 44
	CoinTypeXMR    = bip32.FirstHardenedChild + 128
	AccountFirst   = bip32.FirstHardenedChild + 0
	ChangeExternal = 0
	IndexFirst     = 0
)

// GenerateMnemonic creates a new 24-word BIP-39 mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks word count, word list membership and checksum.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// SpendPublicKey derives the compressed public key at the first receive
// index of mnemonic.
func SpendPublicKey(mnemonic string) ([]byte, error) {
	if !ValidateMnemonic(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("derive seed: %w", err)
	}
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	for _, idx := range []uint32{PurposeBIP44, CoinTypeXMR, AccountFirst, ChangeExternal, IndexFirst} {
		key, err = key.NewChildKey(idx)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", idx, err)
		}
	}

	// bip32 private keys may carry a leading 0x00 pad.
	raw := key.Key
	if len(raw) == 33 && raw[0] == 0 {
		raw = raw[1:]
	}
	priv := secp256k1.PrivKeyFromBytes(raw)
	return priv.PubKey().SerializeCompressed(), nil
}
