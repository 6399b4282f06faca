package monero

import (
	"context"

	"github.com/0-don/monero-ts/domain/entities"
	"github.com/0-don/monero-ts/domain/ports"
	"github.com/0-don/monero-ts/hostfuncs"
)

// Native module labels.
const (
	ModuleWallet = "wallet"
	ModuleUtils  = "utils"
)

// Exported names. These are a compatibility contract with host code.
const (
	ExportUtilsDummyMethod      = "utils_dummy_method"
	ExportCreateWalletRandom    = "create_wallet_random"
	ExportCreateWalletDummy     = "create_wallet_dummy"
	ExportDummyMethod           = "dummy_method"
	ExportGetMnemonic           = "get_mnemonic"
	ExportGetPrimaryAddress     = "get_primary_address"
	ExportGetNetworkType        = "get_network_type"
	ExportCloseWallet           = "close_wallet"
	ExportUtilsValidateMnemonic = "utils_validate_mnemonic"
	ExportUtilsValidateAddress  = "utils_validate_address"
)

// WalletBundle declares the wallet module's exports.
func WalletBundle(svc ports.WalletService) hostfuncs.Bundle {
	return hostfuncs.NewBundle(ModuleWallet,
		hostfuncs.Bind(ExportCreateWalletRandom, hostfuncs.Func0(svc.CreateWalletRandom)),
		hostfuncs.Bind(ExportCreateWalletDummy, hostfuncs.Func0(svc.CreateWalletDummy)),
		hostfuncs.Bind(ExportDummyMethod, hostfuncs.Func0(svc.DummyMethod)),
		hostfuncs.Bind(ExportGetMnemonic, hostfuncs.Func1(svc.Mnemonic)),
		hostfuncs.Bind(ExportGetPrimaryAddress, hostfuncs.Func1(svc.PrimaryAddress)),
		hostfuncs.Bind(ExportGetNetworkType, hostfuncs.Func1(
			func(ctx context.Context, h entities.Handle) (int32, error) {
				n, err := svc.NetworkType(ctx, h)
				return int32(n), err
			})),
		hostfuncs.Bind(ExportCloseWallet, hostfuncs.Proc1(svc.CloseWallet)),
	)
}

// UtilsBundle declares the utilities module's exports.
func UtilsBundle(svc ports.UtilsService) hostfuncs.Bundle {
	return hostfuncs.NewBundle(ModuleUtils,
		hostfuncs.Bind(ExportUtilsDummyMethod, hostfuncs.Func0(svc.UtilsDummyMethod)),
		hostfuncs.Bind(ExportUtilsValidateMnemonic, hostfuncs.Func1(svc.ValidateMnemonic)),
		hostfuncs.Bind(ExportUtilsValidateAddress, hostfuncs.Func1(svc.ValidateAddress)),
	)
}
