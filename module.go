package monero

import (
	"sync"

	"github.com/0-don/monero-ts/domain/errors"
	"github.com/0-don/monero-ts/domain/ports"
	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/0-don/monero-ts/log"
	"github.com/rs/zerolog"
)

// Module owns the export table. It starts Uninitialized and becomes Ready
// after the first successful Init.
type Module struct {
	wallet     ports.WalletService
	utils      ports.UtilsService
	registry   *hostfuncs.Registry
	logger     zerolog.Logger
	middleware []hostfuncs.Middleware
	extra      []hostfuncs.RegistryOption
	mu         sync.RWMutex
}

// New creates an Uninitialized module bound to the two collaborators.
func New(wallet ports.WalletService, utils ports.UtilsService, opts ...Option) *Module {
	m := &Module{
		wallet: wallet,
		utils:  utils,
		logger: log.Bridge,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init runs the registration pass. On failure the module stays
// Uninitialized and the error is returned. A second Init on a Ready module
// returns errors.ErrAlreadyInitialized.
func (m *Module) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registry != nil {
		return errors.ErrAlreadyInitialized
	}

	opts := []hostfuncs.RegistryOption{
		hostfuncs.WithMiddleware(
			hostfuncs.PanicRecoveryMiddleware(),
			hostfuncs.LoggingMiddleware(m.logger),
		),
		hostfuncs.WithMiddleware(m.middleware...),
		hostfuncs.WithBundle(UtilsBundle(m.utils)),
		hostfuncs.WithBundle(WalletBundle(m.wallet)),
	}
	opts = append(opts, m.extra...)

	reg, err := hostfuncs.NewRegistry(opts...)
	if err != nil {
		m.logger.Error().Err(err).Msg("export registration failed")
		return err
	}

	m.registry = reg
	m.logger.Info().Int("exports", reg.Len()).Msg("export table ready")
	return nil
}

// Ready reports whether Init has succeeded.
func (m *Module) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.registry != nil
}

// Registry returns the export table, or errors.ErrNotInitialized before Init.
func (m *Module) Registry() (*hostfuncs.Registry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.registry == nil {
		return nil, errors.ErrNotInitialized
	}
	return m.registry, nil
}

// Lookup resolves name in the export table.
func (m *Module) Lookup(name string) (hostfuncs.Export, error) {
	reg, err := m.Registry()
	if err != nil {
		return hostfuncs.Export{}, err
	}
	return reg.Lookup(name)
}
