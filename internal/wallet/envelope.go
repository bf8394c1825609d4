package wallet

import (
	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/werr"
)

// EnvelopeError converts a failed envelope into a classified error. It
// returns nil for a Success.
func EnvelopeError[T any](env api.Envelope[T]) error {
	if env.OK() {
		return nil
	}
	if env.Transport() {
		return werr.Transport(env.Message())
	}
	return werr.Server(env.Message())
}
