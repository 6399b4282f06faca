package hostfuncs

import (
	"context"
	"errors"
	"testing"

	domainerrors "github.com/0-don/monero-ts/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBundle_FillsModule(t *testing.T) {
	b := NewBundle("wallet",
		Bind("dummy_method", constI32(1)),
		Entry{Name: "utils_dummy_method", Module: "utils", Binding: constI32(1)},
	)

	entries := b.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "wallet", entries[0].Module)
	assert.Equal(t, "utils", entries[1].Module)
}

func TestBundle_EntriesReturnsCopy(t *testing.T) {
	b := NewBundle("wallet", Bind("dummy_method", constI32(1)))
	entries := b.Entries()
	entries[0].Name = "mutated"
	assert.Equal(t, "dummy_method", b.Entries()[0].Name)
}

func TestWithBundle(t *testing.T) {
	wallet := NewBundle("wallet",
		Bind("create_wallet_random", constI32(1)),
		Bind("dummy_method", constI32(1)),
	)
	utils := NewBundle("utils", Bind("utils_dummy_method", constI32(1)))

	reg, err := NewRegistry(WithBundle(Bundles(wallet, utils)))
	require.NoError(t, err)

	assert.Equal(t, []string{"create_wallet_random", "dummy_method", "utils_dummy_method"}, reg.Names())

	exp, err := reg.Lookup("utils_dummy_method")
	require.NoError(t, err)
	assert.Equal(t, "utils", exp.Module)

	res, err := exp.Call(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), res.AsI32())
}

func TestWithBundle_DuplicateAcrossBundles(t *testing.T) {
	wallet := NewBundle("wallet", Bind("dummy_method", constI32(1)))
	utils := NewBundle("utils", Bind("dummy_method", constI32(2)))

	reg, err := NewRegistry(WithBundle(wallet), WithBundle(utils))
	require.Error(t, err)
	assert.Nil(t, reg)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateExport))
}
