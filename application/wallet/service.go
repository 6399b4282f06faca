package wallet

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/0-don/monero-ts/domain/entities"
	"github.com/0-don/monero-ts/domain/errors"
	"github.com/0-don/monero-ts/domain/ports"
	"github.com/0-don/monero-ts/log"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service is the in-memory wallet module. Wallets live until CloseWallet or
// process exit.
type Service struct {
	logger  zerolog.Logger
	now     func() time.Time
	wallets map[entities.Handle]*entities.Wallet
	next    atomic.Uint32
	mu      sync.RWMutex
	network entities.NetworkType
}

var _ ports.WalletService = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithNetwork selects the network new wallets are created for.
func WithNetwork(n entities.NetworkType) Option {
	return func(s *Service) {
		s.network = n
	}
}

// WithLogger replaces the wallet component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates an empty wallet module.
func NewService(opts ...Option) *Service {
	s := &Service{
		logger:  log.Wallet,
		now:     time.Now,
		wallets: make(map[entities.Handle]*entities.Wallet),
		network: entities.Mainnet,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateWalletRandom creates a wallet from a fresh 24-word mnemonic.
func (s *Service) CreateWalletRandom(ctx context.Context) (entities.Handle, error) {
	mnemonic, err := GenerateMnemonic()
	if err != nil {
		return entities.InvalidHandle, err
	}
	return s.open(ctx, mnemonic)
}

// CreateWalletDummy creates a wallet from DummyMnemonic.
func (s *Service) CreateWalletDummy(ctx context.Context) (entities.Handle, error) {
	return s.open(ctx, DummyMnemonic)
}

// DummyMethod always returns 1.
func (s *Service) DummyMethod(context.Context) (int32, error) {
	return 1, nil
}

// Mnemonic returns the seed phrase of h.
func (s *Service) Mnemonic(_ context.Context, h entities.Handle) (string, error) {
	w, err := s.get(h)
	if err != nil {
		return "", err
	}
	return w.Mnemonic, nil
}

// PrimaryAddress returns the primary address of h.
func (s *Service) PrimaryAddress(_ context.Context, h entities.Handle) (string, error) {
	w, err := s.get(h)
	if err != nil {
		return "", err
	}
	return w.PrimaryAddress, nil
}

// NetworkType returns the network of h.
func (s *Service) NetworkType(_ context.Context, h entities.Handle) (entities.NetworkType, error) {
	w, err := s.get(h)
	if err != nil {
		return 0, err
	}
	return w.Network, nil
}

// CloseWallet drops h from the table.
func (s *Service) CloseWallet(_ context.Context, h entities.Handle) error {
	s.mu.Lock()
	w, ok := s.wallets[h]
	delete(s.wallets, h)
	s.mu.Unlock()

	if !ok {
		return &errors.HandleError{Handle: h}
	}
	s.logger.Debug().Stringer("handle", h).Str("wallet_id", w.ID).Msg("wallet closed")
	return nil
}

// Wallet returns a copy of the wallet state behind h.
func (s *Service) Wallet(h entities.Handle) (entities.Wallet, error) {
	w, err := s.get(h)
	if err != nil {
		return entities.Wallet{}, err
	}
	return *w, nil
}

// Len returns the number of open wallets.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.wallets)
}

func (s *Service) open(ctx context.Context, mnemonic string) (entities.Handle, error) {
	if err := ctx.Err(); err != nil {
		return entities.InvalidHandle, err
	}

	done := log.Benchmark(s.logger, "derive_spend_key")
	pub, err := SpendPublicKey(mnemonic)
	done()
	if err != nil {
		return entities.InvalidHandle, err
	}
	addr, err := EncodeAddress(s.network, pub)
	if err != nil {
		return entities.InvalidHandle, err
	}

	w := &entities.Wallet{
		ID:             uuid.NewString(),
		CreatedAt:      s.now().UTC(),
		Mnemonic:       mnemonic,
		PrimaryAddress: addr,
		SpendPublicKey: pub,
		Network:        s.network,
	}

	s.mu.Lock()
	h := s.nextHandle()
	s.wallets[h] = w
	s.mu.Unlock()

	s.logger.Info().
		Stringer("handle", h).
		Str("wallet_id", w.ID).
		Stringer("network", w.Network).
		Msg("wallet created")
	return h, nil
}

// nextHandle returns the next free handle. The counter wraps after 2^32
// opens; InvalidHandle and handles still open are skipped. Caller holds mu.
func (s *Service) nextHandle() entities.Handle {
	for {
		h := entities.Handle(s.next.Add(1))
		if _, taken := s.wallets[h]; h.Valid() && !taken {
			return h
		}
	}
}

func (s *Service) get(h entities.Handle) (*entities.Wallet, error) {
	if !h.Valid() {
		return nil, &errors.HandleError{Handle: h}
	}
	s.mu.RLock()
	w, ok := s.wallets[h]
	s.mu.RUnlock()
	if !ok {
		return nil, &errors.HandleError{Handle: h}
	}
	return w, nil
}
