package testutil

import (
	"github.com/tetratelabs/wazero/api"
)

// Import describes one function a test guest imports from the host module.
type Import struct {
	Name    string
	Params  []api.ValueType
	Results []api.ValueType
}

// GuestModule assembles a WASM binary importing each function from module.
// For every import it exports "call_<name>", which forwards its parameters
// and returns the import's results. With allocator set the guest also exports
// one page of memory and an "allocate" that always returns offset 1024.
func GuestModule(module string, allocator bool, imports ...Import) []byte {
	n := len(imports)

	var types, imps, funcs, exports, code [][]byte
	for i, imp := range imports {
		types = append(types, funcType(imp.Params, imp.Results))
		imps = append(imps, concat(name(module), name(imp.Name), []byte{0x00}, uleb(uint32(i))))
		funcs = append(funcs, uleb(uint32(i)))
		exports = append(exports, concat(name("call_"+imp.Name), []byte{0x00}, uleb(uint32(n+i))))

		body := []byte{0x00} // no locals
		for j := range imp.Params {
			body = append(body, 0x20)
			body = append(body, uleb(uint32(j))...)
		}
		body = append(body, 0x10)
		body = append(body, uleb(uint32(i))...)
		body = append(body, 0x0b)
		code = append(code, concat(uleb(uint32(len(body))), body))
	}

	var memory []byte
	if allocator {
		types = append(types, funcType([]api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32}))
		funcs = append(funcs, uleb(uint32(n)))
		exports = append(exports,
			concat(name("allocate"), []byte{0x00}, uleb(uint32(2*n))),
			concat(name("memory"), []byte{0x02, 0x00}),
		)
		// i32.const 1024
		body := []byte{0x00, 0x41, 0x80, 0x08, 0x0b}
		code = append(code, concat(uleb(uint32(len(body))), body))
		memory = section(5, vec([][]byte{{0x00, 0x01}}))
	}

	return concat(
		[]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00},
		section(1, vec(types)),
		section(2, vec(imps)),
		section(3, vec(funcs)),
		memory,
		section(7, vec(exports)),
		section(10, vec(code)),
	)
}

func funcType(params, results []api.ValueType) []byte {
	b := []byte{0x60}
	b = append(b, uleb(uint32(len(params)))...)
	b = append(b, params...)
	b = append(b, uleb(uint32(len(results)))...)
	return append(b, results...)
}

func section(id byte, content []byte) []byte {
	return concat([]byte{id}, uleb(uint32(len(content))), content)
}

func vec(items [][]byte) []byte {
	return concat(append([][]byte{uleb(uint32(len(items)))}, items...)...)
}

func name(s string) []byte {
	return concat(uleb(uint32(len(s))), []byte(s))
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
