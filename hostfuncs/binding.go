package hostfuncs

import (
	"context"
	"fmt"

	"github.com/0-don/monero-ts/domain/errors"
)

// Func is the type-erased form of an export. args always match the export's
// Signature when Func is reached through a Registry.
type Func func(ctx context.Context, args []Value) (Value, error)

// Binding pairs a Func with the Signature its marshaling code was generated for.
// Use the typed constructors (Func0, Func1, ...) so the signature is derived from
// the Go types and cannot drift from the function.
type Binding struct {
	Call      Func
	Signature Signature
}

// Func0 binds a function with no parameters and a result.
func Func0[R Marshalable](fn func(context.Context) (R, error)) Binding {
	b := Binding{Signature: Signature{Result: KindOf[R]()}}
	if fn == nil {
		return b
	}
	b.Call = func(ctx context.Context, _ []Value) (Value, error) {
		r, err := fn(ctx)
		if err != nil {
			return Value{}, err
		}
		return ValueOf(r), nil
	}
	return b
}

// Func1 binds a function with one parameter and a result.
func Func1[A, R Marshalable](fn func(context.Context, A) (R, error)) Binding {
	b := Binding{Signature: Signature{Params: []Kind{KindOf[A]()}, Result: KindOf[R]()}}
	if fn == nil {
		return b
	}
	b.Call = func(ctx context.Context, args []Value) (Value, error) {
		a, err := arg[A](ctx, args, 0)
		if err != nil {
			return Value{}, err
		}
		r, err := fn(ctx, a)
		if err != nil {
			return Value{}, err
		}
		return ValueOf(r), nil
	}
	return b
}

// Func2 binds a function with two parameters and a result.
func Func2[A, B, R Marshalable](fn func(context.Context, A, B) (R, error)) Binding {
	b := Binding{Signature: Signature{Params: []Kind{KindOf[A](), KindOf[B]()}, Result: KindOf[R]()}}
	if fn == nil {
		return b
	}
	b.Call = func(ctx context.Context, args []Value) (Value, error) {
		a, err := arg[A](ctx, args, 0)
		if err != nil {
			return Value{}, err
		}
		bb, err := arg[B](ctx, args, 1)
		if err != nil {
			return Value{}, err
		}
		r, err := fn(ctx, a, bb)
		if err != nil {
			return Value{}, err
		}
		return ValueOf(r), nil
	}
	return b
}

// Proc0 binds a function with no parameters and no result.
func Proc0(fn func(context.Context) error) Binding {
	b := Binding{Signature: Signature{Result: KindVoid}}
	if fn == nil {
		return b
	}
	b.Call = func(ctx context.Context, _ []Value) (Value, error) {
		return Value{}, fn(ctx)
	}
	return b
}

// Proc1 binds a function with one parameter and no result.
func Proc1[A Marshalable](fn func(context.Context, A) error) Binding {
	b := Binding{Signature: Signature{Params: []Kind{KindOf[A]()}, Result: KindVoid}}
	if fn == nil {
		return b
	}
	b.Call = func(ctx context.Context, args []Value) (Value, error) {
		a, err := arg[A](ctx, args, 0)
		if err != nil {
			return Value{}, err
		}
		return Value{}, fn(ctx, a)
	}
	return b
}

// arg unwraps args[i] as T.
func arg[T Marshalable](ctx context.Context, args []Value, i int) (T, error) {
	var zero T
	if i >= len(args) {
		return zero, &errors.ArgumentError{Export: exportName(ctx), Index: -1, Reason: fmt.Sprintf("missing argument %d", i)}
	}
	v, ok := ValueAs[T](args[i])
	if !ok {
		return zero, &errors.ArgumentError{
			Export: exportName(ctx),
			Index:  i,
			Reason: fmt.Sprintf("want %s, got %s", KindOf[T](), args[i].Kind()),
		}
	}
	return v, nil
}

func exportName(ctx context.Context) string {
	if hc, ok := ctx.(HostContext); ok {
		return hc.FunctionName()
	}
	return "unknown"
}

// CheckArgs verifies args against s for the export named name.
func (s Signature) CheckArgs(name string, args []Value) error {
	if len(args) != len(s.Params) {
		return &errors.ArgumentError{
			Export: name,
			Index:  -1,
			Reason: fmt.Sprintf("want %d arguments, got %d", len(s.Params), len(args)),
		}
	}
	for i, want := range s.Params {
		if got := args[i].Kind(); got != want {
			return &errors.ArgumentError{
				Export: name,
				Index:  i,
				Reason: fmt.Sprintf("want %s, got %s", want, got),
			}
		}
	}
	return nil
}
