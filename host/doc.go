// Package host runs WebAssembly guests against the export table.
//
// It owns the wazero runtime, installs WASI and the export table as an
// importable host module, and loads guests that link against it. Guests call
// exports such as create_wallet_random as ordinary imports; string results
// are returned through the guest's "allocate" export.
package host
