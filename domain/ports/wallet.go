package ports

import (
	"context"

	"github.com/0-don/monero-ts/domain/entities"
)

// WalletService is the native wallet module.
// Implementations must be safe for concurrent use.
type WalletService interface {
	// CreateWalletRandom creates a wallet from fresh entropy.
	CreateWalletRandom(ctx context.Context) (entities.Handle, error)

	// CreateWalletDummy creates a wallet from fixed key material.
	// Two dummy wallets share keys and address but get distinct handles.
	CreateWalletDummy(ctx context.Context) (entities.Handle, error)

	// DummyMethod is a stub retained to test the binding surface.
	DummyMethod(ctx context.Context) (int32, error)

	// Mnemonic returns the seed phrase of the wallet.
	Mnemonic(ctx context.Context, h entities.Handle) (string, error)

	// PrimaryAddress returns the wallet's primary address.
	PrimaryAddress(ctx context.Context, h entities.Handle) (string, error)

	// NetworkType returns the network the wallet was created for.
	NetworkType(ctx context.Context, h entities.Handle) (entities.NetworkType, error)

	// CloseWallet releases the handle. Later use of h fails.
	CloseWallet(ctx context.Context, h entities.Handle) error
}
