package entities

import "strconv"

// Handle is an opaque reference to a native object (a wallet) that crosses the
// host boundary as a plain 32-bit integer. The zero Handle is never issued.
type Handle uint32

// InvalidHandle is the zero Handle.
const InvalidHandle Handle = 0

// Valid reports whether h can refer to a live object.
func (h Handle) Valid() bool {
	return h != InvalidHandle
}

func (h Handle) String() string {
	return "handle#" + strconv.FormatUint(uint64(h), 10)
}
