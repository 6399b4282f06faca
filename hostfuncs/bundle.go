package hostfuncs

// Entry declares one export before registration.
type Entry struct {
	Binding Binding
	Name    string
	Module  string
}

// Bind declares an entry named name. The module is filled in by NewBundle.
func Bind(name string, binding Binding) Entry {
	return Entry{Name: name, Binding: binding}
}

// Bundle is a set of related exports, usually everything one native module
// contributes. Entries are registered in the order returned.
type Bundle interface {
	// Entries returns the declared exports.
	Entries() []Entry
}

// staticBundle implements Bundle with a fixed list of entries.
type staticBundle struct {
	entries []Entry
}

func (b *staticBundle) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// NewBundle groups entries under module. Entries that already name a module
// keep it.
func NewBundle(module string, entries ...Entry) Bundle {
	list := make([]Entry, len(entries))
	for i, e := range entries {
		if e.Module == "" {
			e.Module = module
		}
		list[i] = e
	}
	return &staticBundle{entries: list}
}

// compositeBundle concatenates bundles.
type compositeBundle struct {
	bundles []Bundle
}

func (b *compositeBundle) Entries() []Entry {
	var result []Entry
	for _, bundle := range b.bundles {
		result = append(result, bundle.Entries()...)
	}
	return result
}

// Bundles combines several bundles into one. Duplicate names across bundles
// are reported when the combined bundle is registered.
func Bundles(bundles ...Bundle) Bundle {
	return &compositeBundle{bundles: bundles}
}

// WithBundle registers all entries of a bundle.
func WithBundle(bundle Bundle) RegistryOption {
	return func(b *registryBuilder) {
		for _, e := range bundle.Entries() {
			if err := b.add(e); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}
