package monero

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/0-don/monero-ts/application/utils"
	"github.com/0-don/monero-ts/application/wallet"
	"github.com/0-don/monero-ts/domain/entities"
	domainerrors "github.com/0-don/monero-ts/domain/errors"
	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var specExports = []string{
	ExportUtilsDummyMethod,
	ExportCreateWalletRandom,
	ExportCreateWalletDummy,
	ExportDummyMethod,
}

func newModule(opts ...Option) *Module {
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	return New(
		wallet.NewService(wallet.WithLogger(zerolog.Nop())),
		utils.NewService(),
		opts...,
	)
}

func TestModule_NotReachableBeforeInit(t *testing.T) {
	mod := newModule()
	assert.False(t, mod.Ready())

	for _, name := range specExports {
		_, err := mod.Lookup(name)
		assert.ErrorIs(t, err, domainerrors.ErrNotInitialized, name)
	}

	_, err := mod.Registry()
	assert.ErrorIs(t, err, domainerrors.ErrNotInitialized)
}

func TestModule_ReachableAfterInit(t *testing.T) {
	mod := newModule()
	require.NoError(t, mod.Init())
	assert.True(t, mod.Ready())

	for _, name := range specExports {
		exp, err := mod.Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, exp.Name)
	}
}

func TestModule_ExportTable(t *testing.T) {
	mod := newModule()
	require.NoError(t, mod.Init())
	reg, err := mod.Registry()
	require.NoError(t, err)

	want := map[string]string{
		ExportUtilsDummyMethod:      "utils.utils_dummy_method() -> i32",
		ExportCreateWalletRandom:    "wallet.create_wallet_random() -> handle",
		ExportCreateWalletDummy:     "wallet.create_wallet_dummy() -> handle",
		ExportDummyMethod:           "wallet.dummy_method() -> i32",
		ExportGetMnemonic:           "wallet.get_mnemonic(handle) -> string",
		ExportGetPrimaryAddress:     "wallet.get_primary_address(handle) -> string",
		ExportGetNetworkType:        "wallet.get_network_type(handle) -> i32",
		ExportCloseWallet:           "wallet.close_wallet(handle) -> void",
		ExportUtilsValidateMnemonic: "utils.utils_validate_mnemonic(string) -> bool",
		ExportUtilsValidateAddress:  "utils.utils_validate_address(string) -> bool",
	}

	assert.Equal(t, len(want), reg.Len())
	for _, exp := range reg.Exports() {
		assert.Equal(t, want[exp.Name], exp.String())
	}

	seen := make(map[string]bool)
	for _, name := range reg.Names() {
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}

func TestModule_InitTwice(t *testing.T) {
	mod := newModule()
	require.NoError(t, mod.Init())

	err := mod.Init()
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyInitialized)
	assert.True(t, mod.Ready())
}

func TestModule_InitConcurrent(t *testing.T) {
	mod := newModule()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if mod.Init() == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestModule_DuplicateAbortsInit(t *testing.T) {
	mod := newModule(WithExtraExports(
		hostfuncs.WithExport(ExportDummyMethod, ModuleWallet, hostfuncs.Func0(
			func(context.Context) (int32, error) { return 2, nil },
		)),
	))

	err := mod.Init()
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateExport)
	assert.False(t, mod.Ready())

	_, err = mod.Lookup(ExportUtilsDummyMethod)
	assert.ErrorIs(t, err, domainerrors.ErrNotInitialized)
}

func TestModule_ExtraExportCustomGroup(t *testing.T) {
	mod := newModule(WithExtraExports(
		hostfuncs.WithExport("custom_version", "custom", hostfuncs.Func0(
			func(context.Context) (string, error) { return "1.0.0", nil },
		)),
	))
	require.NoError(t, mod.Init())

	reg, err := mod.Registry()
	require.NoError(t, err)

	manifest := reg.Manifest("monero")
	var found bool
	for _, d := range manifest.Exports {
		if d.Name == "custom_version" {
			found = true
			assert.Equal(t, "custom", d.Module)
			assert.Equal(t, "string", d.Result)
		}
	}
	assert.True(t, found, "custom_version missing from manifest")
}

func TestModule_LookupUnknown(t *testing.T) {
	mod := newModule()
	require.NoError(t, mod.Init())

	_, err := mod.Lookup("create_wallet_from_seed")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestModule_CreateWalletRandom(t *testing.T) {
	mod := newModule()
	require.NoError(t, mod.Init())
	reg, err := mod.Registry()
	require.NoError(t, err)
	ctx := context.Background()

	res, err := reg.Invoke(ctx, ExportCreateWalletRandom)
	require.NoError(t, err)
	assert.Equal(t, hostfuncs.KindHandle, res.Kind())
	h := res.AsHandle()
	assert.True(t, h.Valid())

	addr, err := reg.Invoke(ctx, ExportGetPrimaryAddress, hostfuncs.HandleValue(h))
	require.NoError(t, err)

	ok, err := reg.Invoke(ctx, ExportUtilsValidateAddress, addr)
	require.NoError(t, err)
	assert.True(t, ok.AsBool())

	network, err := reg.Invoke(ctx, ExportGetNetworkType, hostfuncs.HandleValue(h))
	require.NoError(t, err)
	assert.Equal(t, int32(entities.Mainnet), network.AsI32())

	res, err = reg.Invoke(ctx, ExportCloseWallet, hostfuncs.HandleValue(h))
	require.NoError(t, err)
	assert.Equal(t, hostfuncs.KindVoid, res.Kind())

	_, err = reg.Invoke(ctx, ExportGetMnemonic, hostfuncs.HandleValue(h))
	assert.ErrorIs(t, err, domainerrors.ErrUnknownHandle)
}

func TestModule_DummyMethods(t *testing.T) {
	mod := newModule()
	require.NoError(t, mod.Init())
	reg, err := mod.Registry()
	require.NoError(t, err)

	for _, name := range []string{ExportDummyMethod, ExportUtilsDummyMethod} {
		res, err := reg.Invoke(context.Background(), name)
		require.NoError(t, err)
		assert.Equal(t, int32(1), res.AsI32(), name)
	}
}

type failingWallet struct {
	*wallet.Service
	err error
}

func (f failingWallet) CreateWalletRandom(context.Context) (entities.Handle, error) {
	return entities.InvalidHandle, f.err
}

func TestModule_CollaboratorErrorPassesThrough(t *testing.T) {
	native := errors.New("entropy source exhausted")
	mod := New(
		failingWallet{Service: wallet.NewService(wallet.WithLogger(zerolog.Nop())), err: native},
		utils.NewService(),
		WithLogger(zerolog.Nop()),
	)
	require.NoError(t, mod.Init())
	reg, err := mod.Registry()
	require.NoError(t, err)

	_, err = reg.Invoke(context.Background(), ExportCreateWalletRandom)
	assert.Same(t, native, err)
}

func TestModule_WithMiddleware(t *testing.T) {
	var calls []string
	mw := func(next hostfuncs.Func) hostfuncs.Func {
		return func(ctx context.Context, args []hostfuncs.Value) (hostfuncs.Value, error) {
			if hc, ok := ctx.(hostfuncs.HostContext); ok {
				calls = append(calls, hc.FunctionName())
			}
			return next(ctx, args)
		}
	}

	mod := newModule(WithMiddleware(mw))
	require.NoError(t, mod.Init())
	reg, err := mod.Registry()
	require.NoError(t, err)

	_, err = reg.Invoke(context.Background(), ExportDummyMethod)
	require.NoError(t, err)
	assert.Equal(t, []string{ExportDummyMethod}, calls)
}
