// Package monero is the export table of the monero-ts native bridge.
//
// A Module binds the wallet and utilities collaborators to a fixed set of
// host-visible names. The embedding glue creates one Module, calls Init once,
// and hands the resulting registry to a host adapter (WASM, JavaScript or
// HTTP):
//
//	mod := monero.New(wallet.NewService(), utils.NewService())
//	if err := mod.Init(); err != nil {
//	    log.Bridge.Fatal().Err(err).Msg("export registration failed")
//	}
//	reg, _ := mod.Registry()
//	handle, err := reg.Invoke(ctx, monero.ExportCreateWalletRandom)
package monero
