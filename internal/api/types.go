package api

import "strings"

type GeneratedWallet struct {
	SeedPhrase    string `json:"seedPhrase"`
	WalletAddress string `json:"walletAddress"`
	Message       string `json:"message"`
}

// SessionGrant is returned by verify and import once the server accepted a phrase.
type SessionGrant struct {
	Token         string `json:"token"`
	WalletAddress string `json:"walletAddress"`
	Message       string `json:"message"`
}

type Metrics struct {
	Price          float64 `json:"price"`
	MarketCap      float64 `json:"marketCap"`
	Volume24h      float64 `json:"volume24h"`
	PriceChange24h float64 `json:"priceChange24h"`
	Liquidity      float64 `json:"liquidity"`
}

type CryptoBalance struct {
	ID          string  `json:"_id,omitempty"`
	Symbol      string  `json:"symbol"`
	Amount      float64 `json:"amount"`
	PriceUsd    float64 `json:"priceUsd"`
	Value       float64 `json:"value"`
	LastUpdated string  `json:"lastUpdated"`
	Metrics     Metrics `json:"metrics"`
}

type BalanceSnapshot struct {
	Balances   []CryptoBalance `json:"balances"`
	TotalValue float64         `json:"totalValue"`
}

// Find returns the balance for symbol, matched case-insensitively.
func (s BalanceSnapshot) Find(symbol string) (CryptoBalance, bool) {
	for _, b := range s.Balances {
		if strings.EqualFold(b.Symbol, symbol) {
			return b, true
		}
	}
	return CryptoBalance{}, false
}

// Clone returns a snapshot that shares no memory with s.
func (s BalanceSnapshot) Clone() BalanceSnapshot {
	out := BalanceSnapshot{TotalValue: s.TotalValue}
	if s.Balances != nil {
		out.Balances = make([]CryptoBalance, len(s.Balances))
		copy(out.Balances, s.Balances)
	}
	return out
}

type TransferRequest struct {
	ToAddress string  `json:"toAddress"`
	Amount    float64 `json:"amount"`
	Symbol    string  `json:"symbol"`
}

type TransferDetails struct {
	FromAddress string  `json:"fromAddress"`
	ToAddress   string  `json:"toAddress"`
	Amount      float64 `json:"amount"`
	Symbol      string  `json:"symbol"`
	Timestamp   string  `json:"timestamp"`
}

// TransferRecord acknowledges a transfer request filed for manual fulfillment.
type TransferRecord struct {
	Message        string          `json:"message"`
	ContactEmail   string          `json:"contactEmail"`
	EmailSubject   string          `json:"emailSubject"`
	RequestDetails TransferDetails `json:"requestDetails"`
}

type LogoutResult struct {
	Message string `json:"message"`
}

type seedPhraseBody struct {
	SeedPhrase string `json:"seedPhrase"`
}

type responseBody[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
