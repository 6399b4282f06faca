// Package utils implements the native utilities module.
package utils

import (
	"context"
	"strings"

	"github.com/0-don/monero-ts/application/wallet"
	"github.com/0-don/monero-ts/domain/ports"
	"github.com/0-don/monero-ts/log"
	"github.com/rs/zerolog"
)

// Service is stateless.
type Service struct {
	logger zerolog.Logger
}

var _ ports.UtilsService = (*Service)(nil)

// NewService creates the utilities module.
func NewService() *Service {
	return &Service{logger: log.Utils}
}

// UtilsDummyMethod always returns 1.
func (s *Service) UtilsDummyMethod(context.Context) (int32, error) {
	return 1, nil
}

// ValidateMnemonic reports whether m is a valid seed phrase. Surrounding
// whitespace is ignored.
func (s *Service) ValidateMnemonic(_ context.Context, m string) (bool, error) {
	return wallet.ValidateMnemonic(strings.TrimSpace(m)), nil
}

// ValidateAddress reports whether addr decodes on any known network.
func (s *Service) ValidateAddress(_ context.Context, addr string) (bool, error) {
	network, _, err := wallet.DecodeAddress(strings.TrimSpace(addr))
	if err != nil {
		s.logger.Debug().Err(err).Msg("address rejected")
		return false, nil
	}
	s.logger.Debug().Stringer("network", network).Msg("address accepted")
	return true, nil
}
