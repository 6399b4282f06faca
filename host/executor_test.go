package host

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/0-don/monero-ts/application/wallet"
	"github.com/0-don/monero-ts/domain/entities"
	domainerrors "github.com/0-don/monero-ts/domain/errors"
	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/0-don/monero-ts/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero/api"
)

// dummyGuest imports monero.dummy_method and exports run() -> i32 calling it.
var dummyGuest = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// type: () -> i32
	0x01, 0x05, 0x01, 0x60, 0x00, 0x01, 0x7f,
	// import "monero" "dummy_method"
	0x02, 0x17, 0x01,
	0x06, 'm', 'o', 'n', 'e', 'r', 'o',
	0x0c, 'd', 'u', 'm', 'm', 'y', '_', 'm', 'e', 't', 'h', 'o', 'd',
	0x00, 0x00,
	// func run: type 0
	0x03, 0x02, 0x01, 0x00,
	// export "run" = func 1
	0x07, 0x07, 0x01, 0x03, 'r', 'u', 'n', 0x00, 0x01,
	// code: call 0
	0x0a, 0x06, 0x01, 0x04, 0x00, 0x10, 0x00, 0x0b,
}

// networkGuest imports monero.get_network_type and exports run(i32) -> i32
// forwarding its argument.
var networkGuest = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// type: (i32) -> i32
	0x01, 0x06, 0x01, 0x60, 0x01, 0x7f, 0x01, 0x7f,
	// import "monero" "get_network_type"
	0x02, 0x1b, 0x01,
	0x06, 'm', 'o', 'n', 'e', 'r', 'o',
	0x10, 'g', 'e', 't', '_', 'n', 'e', 't', 'w', 'o', 'r', 'k', '_', 't', 'y', 'p', 'e',
	0x00, 0x00,
	0x03, 0x02, 0x01, 0x00,
	0x07, 0x07, 0x01, 0x03, 'r', 'u', 'n', 0x00, 0x01,
	// code: local.get 0; call 0
	0x0a, 0x08, 0x01, 0x06, 0x00, 0x20, 0x00, 0x10, 0x00, 0x0b,
}

// mnemonicGuest imports monero.get_mnemonic, exports memory, an allocate that
// always returns 1024, and run(i32) -> i64 forwarding to the import.
var mnemonicGuest = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// types: 0 = (i32) -> i64, 1 = (i32) -> i32
	0x01, 0x0b, 0x02,
	0x60, 0x01, 0x7f, 0x01, 0x7e,
	0x60, 0x01, 0x7f, 0x01, 0x7f,
	// import "monero" "get_mnemonic"
	0x02, 0x17, 0x01,
	0x06, 'm', 'o', 'n', 'e', 'r', 'o',
	0x0c, 'g', 'e', 't', '_', 'm', 'n', 'e', 'm', 'o', 'n', 'i', 'c',
	0x00, 0x00,
	// funcs: run (type 0), allocate (type 1)
	0x03, 0x03, 0x02, 0x00, 0x01,
	// memory: min 1 page
	0x05, 0x03, 0x01, 0x00, 0x01,
	// exports
	0x07, 0x1b, 0x03,
	0x03, 'r', 'u', 'n', 0x00, 0x01,
	0x08, 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x02,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	// code
	0x0a, 0x0e, 0x02,
	0x06, 0x00, 0x20, 0x00, 0x10, 0x00, 0x0b,
	0x05, 0x00, 0x41, 0x80, 0x08, 0x0b,
}

func newTestExecutor(t *testing.T) (*Executor, *wallet.Service) {
	t.Helper()
	ctx := context.Background()

	reg, svc := testutil.ExportTable(t)

	e, err := NewExecutor(ctx, reg, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close(ctx) })
	return e, svc
}

func TestNewExecutor(t *testing.T) {
	ctx := context.Background()
	reg, err := hostfuncs.NewRegistry()
	require.NoError(t, err)

	e, err := NewExecutor(ctx, reg)
	require.NoError(t, err)
	assert.NotNil(t, e)
	assert.NoError(t, e.Close(ctx))
}

func TestNewExecutor_RequiresRegistry(t *testing.T) {
	_, err := NewExecutor(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry")
}

func TestExecutor_LoadGuest_InvalidBytes(t *testing.T) {
	e, _ := newTestExecutor(t)

	_, err := e.LoadGuest(context.Background(), "broken", []byte("not wasm"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile module")
}

func TestGuest_CallsExport(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestExecutor(t)

	g, err := e.LoadGuest(ctx, "dummy", dummyGuest)
	require.NoError(t, err)
	defer g.Close(ctx)

	assert.Equal(t, "dummy", g.Name())
	results, err := g.Call(ctx, "run")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint64(1), results[0])
}

func TestGuest_UnknownExport(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestExecutor(t)

	g, err := e.LoadGuest(ctx, "dummy", dummyGuest)
	require.NoError(t, err)
	defer g.Close(ctx)

	_, err = g.Call(ctx, "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"main" not found`)
}

func TestGuest_TrapCarriesExportError(t *testing.T) {
	ctx := context.Background()
	e, svc := newTestExecutor(t)

	g, err := e.LoadGuest(ctx, "network", networkGuest)
	require.NoError(t, err)
	defer g.Close(ctx)

	h, err := svc.CreateWalletDummy(ctx)
	require.NoError(t, err)

	results, err := g.Call(ctx, "run", uint64(h))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), results[0], "mainnet")

	_, err = g.Call(ctx, "run", 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnknownHandle))
}

func TestGuest_CallString(t *testing.T) {
	ctx := context.Background()
	e, svc := newTestExecutor(t)

	g, err := e.LoadGuest(ctx, "mnemonic", mnemonicGuest)
	require.NoError(t, err)
	defer g.Close(ctx)

	h, err := svc.CreateWalletDummy(ctx)
	require.NoError(t, err)

	got, err := g.CallString(ctx, "run", uint64(h))
	require.NoError(t, err)
	assert.Equal(t, wallet.DummyMnemonic, got)
	assert.Len(t, strings.Fields(got), 12)
}

func TestGuest_CallString_ExceedsMaxSize(t *testing.T) {
	ctx := context.Background()

	reg, svc := testutil.ExportTable(t)

	e, err := NewExecutor(ctx, reg, WithMaxRequestSize(16), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	defer e.Close(ctx)

	g, err := e.LoadGuest(ctx, "mnemonic", mnemonicGuest)
	require.NoError(t, err)
	defer g.Close(ctx)

	h, err := svc.CreateWalletDummy(ctx)
	require.NoError(t, err)

	_, err = g.CallString(ctx, "run", uint64(h))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestGuest_CreateWalletRandom(t *testing.T) {
	ctx := context.Background()
	e, svc := newTestExecutor(t)

	bin := testutil.GuestModule("monero", true,
		testutil.Import{Name: "create_wallet_random", Params: []api.ValueType{}, Results: []api.ValueType{api.ValueTypeI32}},
		testutil.Import{Name: "get_primary_address", Params: []api.ValueType{api.ValueTypeI32}, Results: []api.ValueType{api.ValueTypeI64}},
	)
	g, err := e.LoadGuest(ctx, "random", bin)
	require.NoError(t, err)
	defer g.Close(ctx)

	results, err := g.Call(ctx, "call_create_wallet_random")
	require.NoError(t, err)
	require.Len(t, results, 1)
	h := entities.Handle(api.DecodeU32(results[0]))
	assert.True(t, h.Valid(), "create_wallet_random must return a non-zero handle")
	assert.Equal(t, 1, svc.Len())

	address, err := g.CallString(ctx, "call_get_primary_address", uint64(h))
	require.NoError(t, err)
	want, err := svc.PrimaryAddress(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, want, address)
}
