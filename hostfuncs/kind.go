package hostfuncs

import (
	"fmt"
	"math"
	"strings"

	"github.com/0-don/monero-ts/domain/entities"
)

// Kind is the closed set of value kinds that can cross the host boundary.
type Kind uint8

const (
	// KindVoid is only legal as a result kind.
	KindVoid Kind = iota
	KindBool
	KindI32
	KindI64
	KindF64
	KindString
	KindBytes
	KindHandle
)

var kindNames = [...]string{
	KindVoid:   "void",
	KindBool:   "bool",
	KindI32:    "i32",
	KindI64:    "i64",
	KindF64:    "f64",
	KindString: "string",
	KindBytes:  "bytes",
	KindHandle: "handle",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

// Marshalable constrains the Go types a typed binding may use as parameter or
// result. Anything else is rejected at compile time.
type Marshalable interface {
	bool | int32 | int64 | float64 | string | []byte | entities.Handle
}

// KindOf returns the boundary kind of T.
func KindOf[T Marshalable]() Kind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return KindBool
	case int32:
		return KindI32
	case int64:
		return KindI64
	case float64:
		return KindF64
	case string:
		return KindString
	case []byte:
		return KindBytes
	case entities.Handle:
		return KindHandle
	}
	panic(fmt.Sprintf("hostfuncs: unreachable kind for %T", zero))
}

// Signature is the parameter and result shape of an export.
type Signature struct {
	Params []Kind
	Result Kind
}

func (s Signature) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.String()
	}
	return "(" + strings.Join(params, ", ") + ") -> " + s.Result.String()
}

// Arity returns the number of parameters.
func (s Signature) Arity() int {
	return len(s.Params)
}

// validate rejects kinds that cannot be marshaled.
func (s Signature) validate() error {
	for i, p := range s.Params {
		if p == KindVoid || !p.Valid() {
			return fmt.Errorf("parameter %d has illegal kind %s", i, p)
		}
	}
	if !s.Result.Valid() {
		return fmt.Errorf("result has illegal kind %s", s.Result)
	}
	return nil
}

// Value is a tagged value at the host boundary.
// The zero Value is the void value.
type Value struct {
	buf  []byte
	str  string
	bits uint64
	kind Kind
}

// Void returns the void value.
func Void() Value { return Value{} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.bits = 1
	}
	return v
}

// I32Value wraps an int32.
func I32Value(i int32) Value { return Value{kind: KindI32, bits: uint64(uint32(i))} }

// I64Value wraps an int64.
func I64Value(i int64) Value { return Value{kind: KindI64, bits: uint64(i)} }

// F64Value wraps a float64.
func F64Value(f float64) Value { return Value{kind: KindF64, bits: math.Float64bits(f)} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// BytesValue wraps a byte slice. The slice is not copied.
func BytesValue(b []byte) Value { return Value{kind: KindBytes, buf: b} }

// HandleValue wraps a Handle.
func HandleValue(h entities.Handle) Value { return Value{kind: KindHandle, bits: uint64(h)} }

// ValueOf wraps a typed Go value.
func ValueOf[T Marshalable](v T) Value {
	switch x := any(v).(type) {
	case bool:
		return BoolValue(x)
	case int32:
		return I32Value(x)
	case int64:
		return I64Value(x)
	case float64:
		return F64Value(x)
	case string:
		return StringValue(x)
	case []byte:
		return BytesValue(x)
	case entities.Handle:
		return HandleValue(x)
	}
	panic(fmt.Sprintf("hostfuncs: unreachable value type %T", v))
}

// ValueAs unwraps v into T. It reports false when v's kind is not T's kind.
func ValueAs[T Marshalable](v Value) (T, bool) {
	var out T
	if v.kind != KindOf[T]() {
		return out, false
	}
	switch p := any(&out).(type) {
	case *bool:
		*p = v.AsBool()
	case *int32:
		*p = v.AsI32()
	case *int64:
		*p = v.AsI64()
	case *float64:
		*p = v.AsF64()
	case *string:
		*p = v.AsString()
	case *[]byte:
		*p = v.AsBytes()
	case *entities.Handle:
		*p = v.AsHandle()
	}
	return out, true
}

// Kind returns the tag of v.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the payload of a bool value.
func (v Value) AsBool() bool { return v.bits != 0 }

// AsI32 returns the payload of an i32 value.
func (v Value) AsI32() int32 { return int32(uint32(v.bits)) }

// AsI64 returns the payload of an i64 value.
func (v Value) AsI64() int64 { return int64(v.bits) }

// AsF64 returns the payload of an f64 value.
func (v Value) AsF64() float64 { return math.Float64frombits(v.bits) }

// AsString returns the payload of a string value.
func (v Value) AsString() string { return v.str }

// AsBytes returns the payload of a bytes value.
func (v Value) AsBytes() []byte { return v.buf }

// AsHandle returns the payload of a handle value.
func (v Value) AsHandle() entities.Handle { return entities.Handle(uint32(v.bits)) }

func (v Value) String() string {
	switch v.kind {
	case KindVoid:
		return "void"
	case KindBool:
		return fmt.Sprintf("bool(%t)", v.AsBool())
	case KindI32:
		return fmt.Sprintf("i32(%d)", v.AsI32())
	case KindI64:
		return fmt.Sprintf("i64(%d)", v.AsI64())
	case KindF64:
		return fmt.Sprintf("f64(%g)", v.AsF64())
	case KindString:
		return fmt.Sprintf("string(%q)", v.str)
	case KindBytes:
		return fmt.Sprintf("bytes(%d)", len(v.buf))
	case KindHandle:
		return v.AsHandle().String()
	default:
		return v.kind.String()
	}
}
