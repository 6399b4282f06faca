package wazero

import (
	"context"
	"fmt"

	"github.com/0-don/monero-ts/domain/entities"
	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/tetratelabs/wazero/api"
)

// valueType maps a boundary kind to its WASM representation.
func valueType(k hostfuncs.Kind) api.ValueType {
	switch k {
	case hostfuncs.KindI64, hostfuncs.KindString, hostfuncs.KindBytes:
		return api.ValueTypeI64
	case hostfuncs.KindF64:
		return api.ValueTypeF64
	default:
		return api.ValueTypeI32
	}
}

// decodeParam reads one stack word as a value of kind k.
func decodeParam(mod api.Module, k hostfuncs.Kind, word uint64, maxSize uint32) (hostfuncs.Value, error) {
	switch k {
	case hostfuncs.KindBool:
		return hostfuncs.BoolValue(api.DecodeU32(word) != 0), nil
	case hostfuncs.KindI32:
		return hostfuncs.I32Value(api.DecodeI32(word)), nil
	case hostfuncs.KindHandle:
		return hostfuncs.HandleValue(entities.Handle(api.DecodeU32(word))), nil
	case hostfuncs.KindI64:
		return hostfuncs.I64Value(int64(word)), nil //nolint:gosec // G115: i64 is carried as raw bits
	case hostfuncs.KindF64:
		return hostfuncs.F64Value(api.DecodeF64(word)), nil
	case hostfuncs.KindString, hostfuncs.KindBytes:
		data, err := readGuest(mod, word, maxSize)
		if err != nil {
			return hostfuncs.Value{}, err
		}
		if k == hostfuncs.KindString {
			return hostfuncs.StringValue(string(data)), nil
		}
		return hostfuncs.BytesValue(data), nil
	default:
		return hostfuncs.Value{}, fmt.Errorf("cannot decode kind %s", k)
	}
}

// readGuest copies the packed ptr+len region out of guest memory.
func readGuest(mod api.Module, packed uint64, maxSize uint32) ([]byte, error) {
	ptr, length := unpackPtrLen(packed)
	if length > maxSize {
		return nil, fmt.Errorf("request size %d exceeds maximum %d bytes", length, maxSize)
	}
	mem := mod.Memory()
	if mem == nil {
		return nil, fmt.Errorf("guest module %q has no memory", mod.Name())
	}
	view, ok := mem.Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("out of range read at %d+%d", ptr, length)
	}
	// The view aliases guest memory; copy before the guest can reuse it.
	out := make([]byte, length)
	copy(out, view)
	return out, nil
}

// encodeResult turns v into one stack word.
func encodeResult(ctx context.Context, mod api.Module, v hostfuncs.Value) (uint64, error) {
	switch v.Kind() {
	case hostfuncs.KindBool:
		if v.AsBool() {
			return 1, nil
		}
		return 0, nil
	case hostfuncs.KindI32:
		return api.EncodeI32(v.AsI32()), nil
	case hostfuncs.KindHandle:
		return api.EncodeU32(uint32(v.AsHandle())), nil
	case hostfuncs.KindI64:
		return api.EncodeI64(v.AsI64()), nil
	case hostfuncs.KindF64:
		return api.EncodeF64(v.AsF64()), nil
	case hostfuncs.KindString:
		return writeResponse(ctx, mod, []byte(v.AsString()))
	case hostfuncs.KindBytes:
		return writeResponse(ctx, mod, v.AsBytes())
	default:
		return 0, fmt.Errorf("cannot encode kind %s", v.Kind())
	}
}
