// Package testutil provides shared fixtures for tests that need a live
// export table.
package testutil

import (
	"testing"

	monero "github.com/0-don/monero-ts"
	"github.com/0-don/monero-ts/application/utils"
	"github.com/0-don/monero-ts/application/wallet"
	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// NewWalletService returns a silent wallet service.
func NewWalletService(opts ...wallet.Option) *wallet.Service {
	return wallet.NewService(append([]wallet.Option{wallet.WithLogger(zerolog.Nop())}, opts...)...)
}

// NewModule builds a silent module over svc. When init is set, Init must
// succeed.
func NewModule(t *testing.T, svc *wallet.Service, init bool, opts ...monero.Option) *monero.Module {
	t.Helper()
	opts = append([]monero.Option{monero.WithLogger(zerolog.Nop())}, opts...)
	mod := monero.New(svc, utils.NewService(), opts...)
	if init {
		require.NoError(t, mod.Init())
	}
	return mod
}

// ExportTable returns the export table of a Ready module and the wallet
// service behind it.
func ExportTable(t *testing.T, opts ...monero.Option) (*hostfuncs.Registry, *wallet.Service) {
	t.Helper()
	svc := NewWalletService()
	reg, err := NewModule(t, svc, true, opts...).Registry()
	require.NoError(t, err)
	return reg, svc
}
