package types

import "fmt"

// Chain is one of the supported networks.
type Chain string

const (
	ChainSolana   Chain = "solana"
	ChainBSC      Chain = "bsc"
	ChainEthereum Chain = "ethereum"
	ChainArbitrum Chain = "arbitrum"
	ChainBase     Chain = "base"
	ChainPolygon  Chain = "polygon"
	ChainAptos    Chain = "aptos"
)

type chainInfo struct {
	display string
	riskID  string // identifier the risk provider expects: numeric chain id for EVM, symbolic otherwise
	evm     bool
}

var chainTable = map[Chain]chainInfo{
	ChainSolana:   {display: "Solana", riskID: "solana", evm: false},
	ChainBSC:      {display: "BSC", riskID: "56", evm: true},
	ChainEthereum: {display: "Ethereum", riskID: "1", evm: true},
	ChainArbitrum: {display: "Arbitrum", riskID: "42161", evm: true},
	ChainBase:     {display: "Base", riskID: "8453", evm: true},
	ChainPolygon:  {display: "Polygon", riskID: "137", evm: true},
	ChainAptos:    {display: "Aptos", riskID: "aptos", evm: false},
}

// ParseChain maps a config chain key to a Chain, rejecting unknown keys.
func ParseChain(key string) (Chain, error) {
	c := Chain(key)
	if _, ok := chainTable[c]; !ok {
		return "", fmt.Errorf("unsupported chain %q", key)
	}
	return c, nil
}

func (c Chain) Display() string { return chainTable[c].display }

// RiskID is the identifier the security provider keys its API by.
func (c Chain) RiskID() string { return chainTable[c].riskID }

// IsEVM reports whether contract addresses on the chain are EVM-style and
// therefore coverable by the risk provider.
func (c Chain) IsEVM() bool { return chainTable[c].evm }
