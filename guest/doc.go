// Package guest is the Go binding for WebAssembly guests that import the
// monero host module. Build guests with GOOS=wasip1 GOARCH=wasm.
//
// Host-side failures (unknown handle, bad mnemonic) trap the guest, so the
// wrappers here return plain values.
package guest
