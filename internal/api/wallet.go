package api

import (
	"context"
	"net/http"
	"net/url"
)

func (g *Gateway) GenerateWallet(ctx context.Context) Envelope[GeneratedWallet] {
	return do[GeneratedWallet](ctx, g, call{
		op:      "generate",
		method:  http.MethodPost,
		path:    "/api/wallet/generate",
		generic: MsgGenerateFailed,
	})
}

// VerifyWallet proves the user holds the phrase that was just generated.
func (g *Gateway) VerifyWallet(ctx context.Context, seedPhrase string) Envelope[SessionGrant] {
	return do[SessionGrant](ctx, g, call{
		op:      "verify",
		method:  http.MethodPost,
		path:    "/api/wallet/verify",
		body:    seedPhraseBody{SeedPhrase: seedPhrase},
		generic: MsgVerifyFailed,
	})
}

func (g *Gateway) ImportWallet(ctx context.Context, seedPhrase string) Envelope[SessionGrant] {
	return do[SessionGrant](ctx, g, call{
		op:      "import",
		method:  http.MethodPost,
		path:    "/api/wallet/import",
		body:    seedPhraseBody{SeedPhrase: seedPhrase},
		generic: MsgImportFailed,
	})
}

// GetBalances maps 401 to MsgAuthFailed so callers can tear the session down.
func (g *Gateway) GetBalances(ctx context.Context, address, token string) Envelope[BalanceSnapshot] {
	return do[BalanceSnapshot](ctx, g, call{
		op:       "balances",
		method:   http.MethodGet,
		path:     "/api/crypto/" + url.PathEscape(address) + "/balances",
		token:    token,
		generic:  MsgBalancesFailed,
		statuses: map[int]string{http.StatusUnauthorized: MsgAuthFailed},
	})
}

func (g *Gateway) RequestTransfer(ctx context.Context, token string, req TransferRequest) Envelope[TransferRecord] {
	return do[TransferRecord](ctx, g, call{
		op:      "transfer",
		method:  http.MethodPost,
		path:    "/api/wallet/transfer",
		token:   token,
		body:    req,
		generic: MsgTransferFailed,
	})
}

// Logout maps 403 to MsgSessionExpired.
func (g *Gateway) Logout(ctx context.Context, address, token string) Envelope[LogoutResult] {
	return do[LogoutResult](ctx, g, call{
		op:       "logout",
		method:   http.MethodPost,
		path:     "/api/wallet/" + url.PathEscape(address) + "/logout",
		token:    token,
		generic:  MsgLogoutFailed,
		statuses: map[int]string{http.StatusForbidden: MsgSessionExpired},
	})
}
