package hostfuncs

import "github.com/0-don/monero-ts/wireformat"

// Describe returns the wire description of e.
func Describe(e Export) wireformat.ExportDescriptor {
	params := make([]string, len(e.Signature.Params))
	for i, p := range e.Signature.Params {
		params[i] = p.String()
	}
	return wireformat.ExportDescriptor{
		Name:   e.Name,
		Module: e.Module,
		Params: params,
		Result: e.Signature.Result.String(),
	}
}

// Manifest describes every export of r, installed under hostModule.
func (r *Registry) Manifest(hostModule string) wireformat.Manifest {
	exports := r.Exports()
	m := wireformat.Manifest{
		Version: wireformat.ManifestVersion,
		Module:  hostModule,
		Exports: make([]wireformat.ExportDescriptor, len(exports)),
	}
	for i, e := range exports {
		m.Exports[i] = Describe(e)
	}
	return m
}
