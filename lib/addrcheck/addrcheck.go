// Package addrcheck validates recipient addresses for the assets the
// wallet can hold. Symbols it does not know are accepted unchecked.
package addrcheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
)

var ErrInvalidAddress = errors.New("invalid address")

// Checker validates addresses; Net selects the Bitcoin network.
type Checker struct {
	Net *chaincfg.Params
}

func New(net *chaincfg.Params) *Checker {
	if net == nil {
		net = &chaincfg.MainNetParams
	}
	return &Checker{Net: net}
}

// erc20 symbols share Ethereum's address format.
var erc20 = map[string]bool{"ETH": true, "USDT": true, "USDC": true, "DAI": true, "LINK": true}

// Validate returns nil when address can receive symbol.
func (c *Checker) Validate(symbol, address string) error {
	address = strings.TrimSpace(address)
	switch sym := strings.ToUpper(strings.TrimSpace(symbol)); {
	case sym == "BTC":
		return c.bitcoin(address)
	case erc20[sym]:
		if !common.IsHexAddress(address) {
			return fmt.Errorf("%w: not a 20-byte hex address", ErrInvalidAddress)
		}
		return nil
	case sym == "SOL":
		if _, err := solana.PublicKeyFromBase58(address); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
		}
		return nil
	default:
		return nil
	}
}

func (c *Checker) bitcoin(address string) error {
	addr, err := btcutil.DecodeAddress(address, c.Net)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if !addr.IsForNet(c.Net) {
		return fmt.Errorf("%w: address is not for %s", ErrInvalidAddress, c.Net.Name)
	}
	return nil
}
