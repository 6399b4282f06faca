//go:build wasip1

package guest

//go:wasmimport monero utils_dummy_method
func utilsDummyMethod() int32

//go:wasmimport monero utils_validate_mnemonic
func utilsValidateMnemonic(packed uint64) uint32

//go:wasmimport monero utils_validate_address
func utilsValidateAddress(packed uint64) uint32

//go:wasmimport monero create_wallet_random
func createWalletRandom() uint32

//go:wasmimport monero create_wallet_dummy
func createWalletDummy() uint32

//go:wasmimport monero dummy_method
func dummyMethod() int32

//go:wasmimport monero get_mnemonic
func getMnemonic(handle uint32) uint64

//go:wasmimport monero get_primary_address
func getPrimaryAddress(handle uint32) uint64

//go:wasmimport monero get_network_type
func getNetworkType(handle uint32) int32

//go:wasmimport monero close_wallet
func closeWallet(handle uint32)

//go:wasmimport monero log_message
func logMessage(packed uint64)
