package host

import (
	"context"
	"fmt"

	adapter "github.com/0-don/monero-ts/infrastructure/wazero"
	"github.com/tetratelabs/wazero/api"
)

// Guest is an instantiated WASM module linked against the export table.
type Guest struct {
	module  api.Module
	maxSize uint32
}

// Name returns the module name the guest was loaded under.
func (g *Guest) Name() string {
	return g.module.Name()
}

// Call invokes the guest export name with raw WASM parameters.
// A trap raised by a failing export is returned as the error; it unwraps to
// the export's original error.
func (g *Guest) Call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	f := g.module.ExportedFunction(name)
	if f == nil {
		return nil, fmt.Errorf("export %q not found", name)
	}
	return f.Call(adapter.WithGuestName(ctx, g.Name()), params...)
}

// CallString invokes an export returning a packed ptr+len and reads the
// referenced bytes from guest memory as a string.
func (g *Guest) CallString(ctx context.Context, name string, params ...uint64) (string, error) {
	results, err := g.Call(ctx, name, params...)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("export %q returned no result", name)
	}
	data, err := g.read(results[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close releases the guest instance.
func (g *Guest) Close(ctx context.Context) error {
	return g.module.Close(ctx)
}

func (g *Guest) read(packed uint64) ([]byte, error) {
	ptr := uint32(packed >> 32) //nolint:gosec // G115: Packed format stores 32-bit values
	length := uint32(packed)    //nolint:gosec // G115: Packed format stores 32-bit values
	if ptr == 0 && length == 0 {
		return nil, fmt.Errorf("null response from guest")
	}
	if length > g.maxSize {
		return nil, fmt.Errorf("response size %d exceeds maximum %d bytes", length, g.maxSize)
	}
	mem := g.module.Memory()
	if mem == nil {
		return nil, fmt.Errorf("guest %q has no memory", g.module.Name())
	}
	data, ok := mem.Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("failed to read response from memory")
	}
	out := make([]byte, length)
	copy(out, data)
	return out, nil
}
