package mockserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/tyler-smith/go-bip39"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
)

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

type seedPhraseRequest struct {
	SeedPhrase string `json:"seedPhrase"`
}

func normalizePhrase(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// deriveAddress maps a mnemonic to an Ethereum-style address.
func deriveAddress(mnemonic string) string {
	seed := bip39.NewSeed(mnemonic, "")
	return common.BytesToAddress(crypto.Keccak256(seed)[12:]).Hex()
}

func (s *Server) register(phrase string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if addr, ok := s.wallets[phrase]; ok {
		return addr
	}
	addr := deriveAddress(phrase)
	s.wallets[phrase] = addr
	return addr
}

func (s *Server) lookup(phrase string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	addr, ok := s.wallets[phrase]
	return addr, ok
}

func (s *Server) issueToken(address string) (string, error) {
	now := s.cfg.Now()
	claims := &Claims{
		WalletAddress: address,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   address,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.JWTSecret)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.issued[claims.ID] = false
	s.metrics.setActiveSessions(s.activeLocked())
	s.mu.Unlock()
	return signed, nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		logger.Error("Failed to generate entropy", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to generate wallet")
		return
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		logger.Error("Failed to build mnemonic", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to generate wallet")
		return
	}

	address := s.register(mnemonic)
	s.metrics.incWallet("generated")
	logger.Info("Wallet generated", "address", address)

	writeSuccess(w, api.GeneratedWallet{
		SeedPhrase:    mnemonic,
		WalletAddress: address,
		Message:       "Wallet generated. Write down your seed phrase and keep it safe.",
	})
}

func (s *Server) decodePhrase(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req seedPhraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	phrase := normalizePhrase(req.SeedPhrase)
	if phrase == "" {
		writeFailure(w, http.StatusBadRequest, "Seed phrase is required")
		return "", false
	}
	return phrase, true
}

func (s *Server) grant(w http.ResponseWriter, address, message string) {
	token, err := s.issueToken(address)
	if err != nil {
		logger.Error("Failed to sign token", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	writeSuccess(w, api.SessionGrant{Token: token, WalletAddress: address, Message: message})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	phrase, ok := s.decodePhrase(w, r)
	if !ok {
		return
	}
	address, known := s.lookup(phrase)
	if !known {
		writeFailure(w, http.StatusNotFound, "Wallet not found")
		return
	}
	s.grant(w, address, "Wallet verified successfully")
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	phrase, ok := s.decodePhrase(w, r)
	if !ok {
		return
	}
	if !bip39.IsMnemonicValid(phrase) {
		writeFailure(w, http.StatusBadRequest, "Invalid seed phrase")
		return
	}
	address := s.register(phrase)
	s.metrics.incWallet("imported")
	s.grant(w, address, "Wallet imported successfully")
}

// fixtureBalances are the holdings every wallet reports.
var fixtureBalances = []api.CryptoBalance{
	{Symbol: "ETH", Amount: 2.5, PriceUsd: 2400, Metrics: api.Metrics{Price: 2400, MarketCap: 288e9, Volume24h: 12e9, PriceChange24h: 1.8, Liquidity: 3e9}},
	{Symbol: "BTC", Amount: 0.05, PriceUsd: 62000, Metrics: api.Metrics{Price: 62000, MarketCap: 1.2e12, Volume24h: 30e9, PriceChange24h: -0.6, Liquidity: 9e9}},
	{Symbol: "USDT", Amount: 150, PriceUsd: 1, Metrics: api.Metrics{Price: 1, MarketCap: 110e9, Volume24h: 50e9, PriceChange24h: 0, Liquidity: 20e9}},
}

func (s *Server) snapshot(address string) api.BalanceSnapshot {
	stamp := s.cfg.Now().UTC().Format(time.RFC3339)
	out := api.BalanceSnapshot{Balances: make([]api.CryptoBalance, len(fixtureBalances))}
	total := decimal.Zero
	for i, b := range fixtureBalances {
		b.ID = strings.ToLower(address) + ":" + b.Symbol
		b.LastUpdated = stamp
		value := decimal.NewFromFloat(b.Amount).Mul(decimal.NewFromFloat(b.PriceUsd))
		b.Value = value.InexactFloat64()
		total = total.Add(value)
		out.Balances[i] = b
	}
	out.TotalValue = total.InexactFloat64()
	return out
}

func ownsWallet(claims *Claims, address string) bool {
	return claims != nil && strings.EqualFold(claims.WalletAddress, address)
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	if !ownsWallet(claimsFrom(r.Context()), address) {
		writeFailure(w, http.StatusForbidden, "You do not have permission to view this wallet")
		return
	}
	writeSuccess(w, s.snapshot(address))
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req api.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.ToAddress) == "" || strings.TrimSpace(req.Symbol) == "" {
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	amount := decimal.NewFromFloat(req.Amount)
	if !amount.IsPositive() {
		writeFailure(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}

	var held *api.CryptoBalance
	for i := range fixtureBalances {
		if strings.EqualFold(fixtureBalances[i].Symbol, req.Symbol) {
			held = &fixtureBalances[i]
			break
		}
	}
	if held == nil {
		writeFailure(w, http.StatusBadRequest, "Unsupported asset")
		return
	}
	if amount.GreaterThan(decimal.NewFromFloat(held.Amount)) {
		writeFailure(w, http.StatusBadRequest, "Insufficient balance")
		return
	}

	s.metrics.incTransfer(held.Symbol)
	logger.Info("Transfer request filed", "from", claims.WalletAddress, "symbol", held.Symbol, "amount", amount.String())

	writeSuccess(w, api.TransferRecord{
		Message:      "Transfer request received. Email support to complete the transfer.",
		ContactEmail: s.cfg.ContactEmail,
		EmailSubject: "Transfer Request - " + claims.WalletAddress,
		RequestDetails: api.TransferDetails{
			FromAddress: claims.WalletAddress,
			ToAddress:   strings.TrimSpace(req.ToAddress),
			Amount:      req.Amount,
			Symbol:      held.Symbol,
			Timestamp:   s.cfg.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	address := mux.Vars(r)["address"]
	if !ownsWallet(claims, address) {
		writeFailure(w, http.StatusForbidden, "You do not have permission to log out this wallet")
		return
	}
	s.revoke(claims.ID)
	logger.Info("Session revoked", "address", address)
	writeSuccess(w, api.LogoutResult{Message: "Logged out successfully"})
}
