// Package wazero installs the export table as a wazero host module.
//
// Every registry export becomes a function of one host module with a native
// WASM signature derived from its kinds. The adapter handles:
//
//   - Converting between packed i64 pointer+length format and strings or bytes
//   - Reading arguments from guest memory
//   - Allocating and writing string results through the guest's "allocate" export
//   - Turning failed calls into traps that carry the original error
//
// # Basic Usage
//
//	mod := monero.New(wallet.NewService(), utils.NewService())
//	if err := mod.Init(); err != nil {
//	    return err
//	}
//	reg, _ := mod.Registry()
//
//	runtime := wazero.NewRuntime(ctx)
//	err := wazero.RegisterWithRuntime(ctx, runtime, reg,
//	    wazero.WithModuleName("monero"),
//	    wazero.WithGuestLogging(),
//	)
//
// A guest then imports e.g. (import "monero" "create_wallet_random" (func (result i32))).
package wazero
