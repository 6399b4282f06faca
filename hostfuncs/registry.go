package hostfuncs

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/0-don/monero-ts/domain/errors"
)

// identifier is the set of names every supported host can bind as a symbol.
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Export is a registered entry of the export table: a host-visible name bound
// to a native function with a fixed signature.
type Export struct {
	call      Func
	Name      string
	Module    string
	Signature Signature
}

// Call checks args against the signature and invokes the export through the
// registry's middleware. Errors returned by the native function are passed
// through unmodified.
func (e Export) Call(ctx context.Context, args ...Value) (Value, error) {
	if err := e.Signature.CheckArgs(e.Name, args); err != nil {
		return Value{}, err
	}
	return e.call(HostContextFrom(ctx, e.Name), args)
}

// Registry is an immutable export table.
// Once created via NewRegistry, exports cannot be added or removed, so
// lookups need no locking.
type Registry struct {
	exports    map[string]Export
	names      []string // sorted for consistent iteration
	middleware []Middleware
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	exports    map[string]Export
	middleware []Middleware
	errors     []error
}

// NewRegistry runs one registration pass and returns the resulting table.
// It fails on the first defect (empty or illegal name, duplicate name, nil
// function, illegal kind); no partial registry is ever returned.
//
// Example usage:
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware()),
//	    WithBundle(walletBundle),
//	    WithExport("utils_dummy_method", "utils", Func0(utils.UtilsDummyMethod)),
//	)
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{
		exports: make(map[string]Export),
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.exports))
	for name := range b.exports {
		names = append(names, name)
	}
	sort.Strings(names)

	// Apply middleware in reverse order so first middleware wraps outermost.
	wrapped := make(map[string]Export, len(b.exports))
	for name, exp := range b.exports {
		call := exp.call
		for i := len(b.middleware) - 1; i >= 0; i-- {
			call = b.middleware[i](call)
		}
		exp.call = call
		wrapped[name] = exp
	}

	return &Registry{
		exports:    wrapped,
		names:      names,
		middleware: b.middleware,
	}, nil
}

// Lookup returns the export registered under name.
func (r *Registry) Lookup(name string) (Export, error) {
	exp, ok := r.exports[name]
	if !ok {
		return Export{}, &errors.NotFoundError{Name: name}
	}
	return exp, nil
}

// Invoke dispatches a call by name.
func (r *Registry) Invoke(ctx context.Context, name string, args ...Value) (Value, error) {
	exp, err := r.Lookup(name)
	if err != nil {
		return Value{}, err
	}
	return exp.Call(ctx, args...)
}

// Has returns true if an export with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.exports[name]
	return ok
}

// Names returns a sorted list of all registered export names.
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// Exports returns all exports ordered by name.
func (r *Registry) Exports() []Export {
	result := make([]Export, 0, len(r.names))
	for _, name := range r.names {
		result = append(result, r.exports[name])
	}
	return result
}

// Len returns the number of exports.
func (r *Registry) Len() int {
	return len(r.names)
}

// add validates and records one entry.
func (b *registryBuilder) add(e Entry) error {
	if e.Name == "" {
		return &errors.SignatureError{Reason: "name cannot be empty"}
	}
	if !identifier.MatchString(e.Name) {
		return &errors.SignatureError{Name: e.Name, Reason: "name is not a legal identifier"}
	}
	if _, exists := b.exports[e.Name]; exists {
		return &errors.DuplicateExportError{Name: e.Name}
	}
	if e.Binding.Call == nil {
		return &errors.SignatureError{Name: e.Name, Reason: "nil function"}
	}
	if err := e.Binding.Signature.validate(); err != nil {
		return &errors.SignatureError{Name: e.Name, Reason: err.Error()}
	}
	b.exports[e.Name] = Export{
		Name:      e.Name,
		Module:    e.Module,
		Signature: e.Binding.Signature,
		call:      e.Binding.Call,
	}
	return nil
}

// WithExport registers a single binding under name, owned by module.
func WithExport(name, module string, binding Binding) RegistryOption {
	return func(b *registryBuilder) {
		if err := b.add(Entry{Name: name, Module: module, Binding: binding}); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// String renders the export as "module.name(params) -> result".
func (e Export) String() string {
	return fmt.Sprintf("%s.%s%s", e.Module, e.Name, e.Signature)
}
