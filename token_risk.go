package goplus

import (
	"github.com/shopspring/decimal"
)

// Chain is one entry of the supported chain list.
type Chain struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// TokenRiskMap is keyed by lower-cased contract address.
type TokenRiskMap map[string]TokenRisk

// Lookup finds the record for addr, normalizing EVM addresses the way the remote keys them.
func (m TokenRiskMap) Lookup(addr string) (TokenRisk, bool) {
	if r, ok := m[addr]; ok {
		return r, true
	}
	r, ok := m[NormalizeAddress(addr)]
	return r, ok
}

// TokenRisk is the token security record. Tax, balance and percent values are
// kept as the remote formats them.
type TokenRisk struct {
	AntiWhaleModifiable        Flag           `json:"anti_whale_modifiable"`
	BuyTax                     string         `json:"buy_tax"`
	CanTakeBackOwnership       Flag           `json:"can_take_back_ownership"`
	CannotBuy                  Flag           `json:"cannot_buy"`
	CannotSellAll              Flag           `json:"cannot_sell_all"`
	CreatorAddress             string         `json:"creator_address"`
	CreatorBalance             string         `json:"creator_balance"`
	CreatorPercent             string         `json:"creator_percent"`
	Dex                        []DexInfo      `json:"dex"`
	ExternalCall               Flag           `json:"external_call"`
	HiddenOwner                Flag           `json:"hidden_owner"`
	HolderCount                string         `json:"holder_count"`
	Holders                    []HolderInfo   `json:"holders"`
	HoneypotWithSameCreator    Flag           `json:"honeypot_with_same_creator"`
	IsAntiWhale                Flag           `json:"is_anti_whale"`
	IsBlacklisted              Flag           `json:"is_blacklisted"`
	IsHoneypot                 Flag           `json:"is_honeypot"`
	IsInDex                    Flag           `json:"is_in_dex"`
	IsMintable                 *Flag          `json:"is_mintable,omitempty"`
	IsOpenSource               Flag           `json:"is_open_source"`
	IsProxy                    *Flag          `json:"is_proxy,omitempty"`
	IsWhitelisted              Flag           `json:"is_whitelisted"`
	LpHolderCount              string         `json:"lp_holder_count"`
	LpHolders                  []LpHolderInfo `json:"lp_holders"`
	LpTotalSupply              string         `json:"lp_total_supply"`
	Note                       *string        `json:"note,omitempty"`
	OtherPotentialRisks        *string        `json:"other_potential_risks,omitempty"`
	OwnerAddress               *string        `json:"owner_address,omitempty"`
	OwnerBalance               *string        `json:"owner_balance,omitempty"`
	OwnerChangeBalance         *Flag          `json:"owner_change_balance,omitempty"`
	OwnerPercent               *string        `json:"owner_percent,omitempty"`
	PersonalSlippageModifiable *Flag          `json:"personal_slippage_modifiable,omitempty"`
	Selfdestruct               *Flag          `json:"selfdestruct,omitempty"`
	SellTax                    *string        `json:"sell_tax,omitempty"`
	SlippageModifiable         Flag           `json:"slippage_modifiable"`
	TokenName                  string         `json:"token_name"`
	TokenSymbol                string         `json:"token_symbol"`
	TotalSupply                *string        `json:"total_supply,omitempty"`
	TradingCooldown            Flag           `json:"trading_cooldown"`
	TransferPausable           Flag           `json:"transfer_pausable"`
	TrustList                  *Flag          `json:"trust_list,omitempty"`
	IsAirdropScam              *Flag          `json:"is_airdrop_scam,omitempty"`
	IsTrueToken                *Flag          `json:"is_true_token,omitempty"`
}

// BuyTaxDecimal parses BuyTax. An empty string means the remote could not determine it.
func (t TokenRisk) BuyTaxDecimal() (decimal.Decimal, error) {
	return ParseDecimal(t.BuyTax)
}

// SellTaxDecimal parses SellTax; ok is false when the field was absent.
func (t TokenRisk) SellTaxDecimal() (d decimal.Decimal, ok bool, err error) {
	if t.SellTax == nil {
		return decimal.Zero, false, nil
	}
	d, err = ParseDecimal(*t.SellTax)
	return d, err == nil, err
}

type DexInfo struct {
	LiquidityType string `json:"liquidity_type"`
	Name          string `json:"name"`
	Liquidity     string `json:"liquidity"`
	Pair          string `json:"pair"`
}

type HolderInfo struct {
	Address      string         `json:"address"`
	Tag          string         `json:"tag"`
	IsContract   Flag           `json:"is_contract"`
	Balance      string         `json:"balance"`
	Percent      string         `json:"percent"`
	IsLocked     Flag           `json:"is_locked"`
	LockedDetail []LockedDetail `json:"locked_detail,omitempty"`
}

// PercentDecimal parses the holder's share of supply.
func (h HolderInfo) PercentDecimal() (decimal.Decimal, error) {
	return ParseDecimal(h.Percent)
}

type LockedDetail struct {
	Amount  string `json:"amount"`
	EndTime string `json:"end_time"`
	OptTime string `json:"opt_time"`
}

type LpHolderInfo struct {
	Address      string         `json:"address"`
	Tag          string         `json:"tag"`
	Value        *string        `json:"value,omitempty"`
	IsContract   Flag           `json:"is_contract"`
	Balance      string         `json:"balance"`
	Percent      string         `json:"percent"`
	NftList      []NftInfo      `json:"nft_list,omitempty"`
	IsLocked     Flag           `json:"is_locked"`
	LockedDetail []LockedDetail `json:"locked_detail,omitempty"`
}

// NftInfo describes an LP position held as an NFT (Uniswap v3 style pools).
type NftInfo struct {
	NftID         string `json:"nft_id"`
	NftPercentage string `json:"nft_percentage"`
	Amount        string `json:"amount"`
	InEffect      string `json:"in_effect"`
	Value         string `json:"value"`
}
