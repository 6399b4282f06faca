// Package hostfuncs implements the export registry: the table that binds
// host-visible names to native Go functions with a fixed, statically derived
// signature, plus the marshaling and middleware every host adapter shares.
//
// The package has NO WASM or JS runtime dependencies. Adapters in
// infrastructure/ install a Registry into a concrete host.
package hostfuncs
