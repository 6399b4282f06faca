package hostfuncs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/0-don/monero-ts/domain/entities"
	"github.com/0-don/monero-ts/domain/errors"
	"github.com/0-don/monero-ts/wireformat"
)

// DefaultMaxRequestSize limits the size of incoming requests (1MB).
// This prevents a guest from triggering OOM by claiming huge request sizes.
const DefaultMaxRequestSize = 1 * 1024 * 1024

var jsonNull = []byte("null")

// ByteHandler accepts raw bytes (JSON) and returns raw bytes (JSON).
// This is the shape data-oriented hosts (HTTP) consume.
type ByteHandler func(context.Context, []byte) ([]byte, error)

// NewJSONHandler wraps an export into a ByteHandler speaking
// wireformat.InvokeRequest / wireformat.InvokeResponse.
// Argument decoding failures are returned as *errors.ArgumentError; errors
// from the export itself are returned unmodified.
func NewJSONHandler(exp Export) ByteHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		var req wireformat.InvokeRequest
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, &errors.ArgumentError{Export: exp.Name, Index: -1, Reason: fmt.Sprintf("malformed request: %v", err)}
			}
		}

		if len(req.Args) != exp.Signature.Arity() {
			return nil, &errors.ArgumentError{
				Export: exp.Name,
				Index:  -1,
				Reason: fmt.Sprintf("want %d arguments, got %d", exp.Signature.Arity(), len(req.Args)),
			}
		}

		args := make([]Value, len(req.Args))
		for i, raw := range req.Args {
			v, err := DecodeJSONValue(exp.Signature.Params[i], raw)
			if err != nil {
				return nil, &errors.ArgumentError{Export: exp.Name, Index: i, Reason: err.Error()}
			}
			args[i] = v
		}

		res, err := exp.Call(ctx, args...)
		if err != nil {
			return nil, err
		}

		respBytes, err := json.Marshal(wireformat.InvokeResponse{
			Result: EncodeJSONValue(res),
			Kind:   res.Kind().String(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return respBytes, nil
	}
}

// DecodeJSONValue decodes raw as a value of kind k.
// Bytes are base64 strings, as encoding/json produces them.
// JSON null is rejected for every kind; encoding/json would leave the zero
// value in place and hide a missing argument.
func DecodeJSONValue(k Kind, raw json.RawMessage) (Value, error) {
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		if k == KindVoid || k > KindHandle {
			return Value{}, fmt.Errorf("cannot decode kind %s", k)
		}
		return Value{}, fmt.Errorf("want %s, got null", k)
	}

	var err error
	switch k {
	case KindBool:
		var b bool
		if err = json.Unmarshal(raw, &b); err == nil {
			return BoolValue(b), nil
		}
	case KindI32:
		var i int32
		if err = json.Unmarshal(raw, &i); err == nil {
			return I32Value(i), nil
		}
	case KindI64:
		var i int64
		if err = json.Unmarshal(raw, &i); err == nil {
			return I64Value(i), nil
		}
	case KindF64:
		var f float64
		if err = json.Unmarshal(raw, &f); err == nil {
			return F64Value(f), nil
		}
	case KindString:
		var s string
		if err = json.Unmarshal(raw, &s); err == nil {
			return StringValue(s), nil
		}
	case KindBytes:
		var b []byte
		if err = json.Unmarshal(raw, &b); err == nil {
			return BytesValue(b), nil
		}
	case KindHandle:
		var h uint32
		if err = json.Unmarshal(raw, &h); err == nil {
			return HandleValue(entities.Handle(h)), nil
		}
	default:
		return Value{}, fmt.Errorf("cannot decode kind %s", k)
	}
	return Value{}, fmt.Errorf("want %s: %w", k, err)
}

// EncodeJSONValue returns the JSON-marshalable form of v; nil for void.
func EncodeJSONValue(v Value) any {
	switch v.Kind() {
	case KindBool:
		return v.AsBool()
	case KindI32:
		return v.AsI32()
	case KindI64:
		return v.AsI64()
	case KindF64:
		return v.AsF64()
	case KindString:
		return v.AsString()
	case KindBytes:
		return v.AsBytes()
	case KindHandle:
		return uint32(v.AsHandle())
	default:
		return nil
	}
}
