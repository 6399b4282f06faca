//go:build wasip1

// Package abi manages guest linear memory for values exchanged with the
// monero host module. Strings and byte slices cross the boundary as a packed
// i64: pointer in the high 32 bits, length in the low 32 bits.
package abi

import (
	"fmt"
	"sync"
	"unsafe"
)

// MaxTotalAllocations caps the memory the host can request through allocate.
const MaxTotalAllocations = 16 * 1024 * 1024

// PtrHighBits is the shift of the pointer half of a packed value.
const PtrHighBits = 32

// pinned keeps host-requested buffers reachable until they are released.
var pinned = struct {
	sync.Mutex
	bufs  map[uint32][]byte
	total int
}{
	bufs: make(map[uint32][]byte),
}

// allocate reserves size bytes for the host to write a result into.
// Panics when the pinned total would exceed MaxTotalAllocations.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	pinned.Lock()
	defer pinned.Unlock()

	if pinned.total+int(size) > MaxTotalAllocations {
		panic(fmt.Sprintf("abi: allocation limit exceeded (requested %d, pinned %d, limit %d)",
			size, pinned.total, MaxTotalAllocations))
	}

	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	pinned.bufs[ptr] = buf
	pinned.total += int(size)
	return ptr
}

// deallocate releases a buffer handed out by allocate. Unknown pointers are
// ignored.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, _ uint32) {
	pinned.Lock()
	defer pinned.Unlock()

	buf, ok := pinned.bufs[ptr]
	if !ok {
		return
	}
	delete(pinned.bufs, ptr)
	pinned.total -= len(buf)
	if pinned.total < 0 {
		pinned.total = 0
	}
}

// FreeAllTracked drops every pinned buffer.
func FreeAllTracked() {
	pinned.Lock()
	defer pinned.Unlock()
	clear(pinned.bufs)
	pinned.total = 0
}

// Stats reports the number of pinned buffers and their total size.
func Stats() (count, bytes int) {
	pinned.Lock()
	defer pinned.Unlock()
	return len(pinned.bufs), pinned.total
}

// PackString pins s in linear memory and returns it packed for a host call.
// The caller releases it with Release once the call returns.
func PackString(s string) uint64 {
	if s == "" {
		return 0
	}
	size := uint32(len(s)) //nolint:gosec // G115: bounded by MaxTotalAllocations
	ptr := allocate(size)
	copyToMemory(ptr, []byte(s))
	return PackPtrLen(ptr, size)
}

// ReadString copies a host result out of linear memory and releases it.
func ReadString(packed uint64) string {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return ""
	}
	s := string(readFromMemory(ptr, length))
	deallocate(ptr, length)
	return s
}

// Release frees a value returned by PackString.
func Release(packed uint64) {
	ptr, length := UnpackPtrLen(packed)
	if ptr != 0 && length > 0 {
		deallocate(ptr, length)
	}
}

// PackPtrLen packs ptr and length into one i64.
// Panics on a null pointer with a non-zero length.
func PackPtrLen(ptr, length uint32) uint64 {
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: null pointer with length %d", length))
	}
	return (uint64(ptr) << PtrHighBits) | uint64(length)
}

// UnpackPtrLen is the inverse of PackPtrLen.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> PtrHighBits)
	length = uint32(packed)
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: null pointer with length %d", length))
	}
	return ptr, length
}

func copyToMemory(ptr uint32, data []byte) {
	//nolint:gosec // G103: linear memory offset to pointer
	dest := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), len(data))
	copy(dest, data)
}

func readFromMemory(ptr, length uint32) []byte {
	//nolint:gosec // G103: linear memory offset to pointer
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
	data := make([]byte, length)
	copy(data, src)
	return data
}
