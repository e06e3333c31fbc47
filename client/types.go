package client

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount fields stay in on-chain base units (lamports or raw token units).
// Conversion for display lives in service/format.

// Pool is one market pool from market/list.
type Pool struct {
	PoolAddress string `json:"pool_address"`
	ProgramID   string `json:"program_id"`
	Token1      string `json:"token1"`
	Token2      string `json:"token2"`
	CreatedTime int64  `json:"created_time"`
}

// Block is one entry of block/last.
type Block struct {
	Blockhash         string `json:"blockhash"`
	PreviousBlockhash string `json:"previous_block_hash"`
	BlockHeight       uint64 `json:"block_height"`
	CurrentSlot       uint64 `json:"current_slot"`
	ParentSlot        uint64 `json:"parent_slot"`
	BlockTime         int64  `json:"block_time"`
	Time              string `json:"time"`
	TransactionsCount uint64 `json:"transactions_count"`
	FeeRewards        uint64 `json:"fee_rewards"` // lamports
}

// Instruction is a decoded transaction instruction.
type Instruction struct {
	Type      string `json:"type"`
	Program   string `json:"program"`
	ProgramID string `json:"program_id"`
}

// Transaction is one entry of transaction/last.
type Transaction struct {
	TxHash             string        `json:"tx_hash"`
	Signer             []string      `json:"signer"`
	Slot               uint64        `json:"slot"`
	BlockTime          int64         `json:"block_time"`
	Time               string        `json:"time"`
	Fee                uint64        `json:"fee"` // lamports
	Status             string        `json:"status"`
	ParsedInstructions []Instruction `json:"parsed_instructions"`
	ProgramIDs         []string      `json:"program_ids"`
}

// BalanceChange is a per-address SOL delta inside a transaction.
type BalanceChange struct {
	Address      string          `json:"address"`
	PreBalance   decimal.Decimal `json:"pre_balance"`
	PostBalance  decimal.Decimal `json:"post_balance"`
	ChangeAmount decimal.Decimal `json:"change_amount"`
}

// TransactionDetail is the payload of transaction/detail.
type TransactionDetail struct {
	TxHash             string          `json:"tx_hash"`
	BlockID            uint64          `json:"block_id"`
	BlockTime          int64           `json:"block_time"`
	Fee                uint64          `json:"fee"` // lamports
	TxStatus           string          `json:"tx_status"`
	Signer             []string        `json:"signer"`
	ParsedInstructions []Instruction   `json:"parsed_instructions"`
	ProgramsInvolved   []string        `json:"programs_involved"`
	SolBalanceChanges  []BalanceChange `json:"sol_bal_change"`
}

// Token is a list entry from token/trending and token/list.
type Token struct {
	Address        string  `json:"address"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Decimals       int32   `json:"decimals"`
	Price          float64 `json:"price"`
	MarketCap      float64 `json:"market_cap"`
	Holder         int64   `json:"holder"`
	Price24hChange float64 `json:"price_24h_change"`
}

// TokenLinks are the optional social links of a token.
type TokenLinks struct {
	Website string `json:"website"`
	Twitter string `json:"twitter"`
}

// TokenMeta is one element of token/meta/multi. Nullable fields are pointers.
type TokenMeta struct {
	Address         string           `json:"address"`
	Name            *string          `json:"name"`
	Symbol          *string          `json:"symbol"`
	Icon            string           `json:"icon"`
	Decimals        *int32           `json:"decimals"`
	Price           *float64         `json:"price"`
	Volume24h       *float64         `json:"volume_24h"`
	MarketCap       *float64         `json:"market_cap"`
	MarketCapRank   *int64           `json:"market_cap_rank"`
	PriceChange24h  *float64         `json:"price_change_24h"`
	Supply          *decimal.Decimal `json:"supply"` // raw units
	Holder          *float64         `json:"holder"`
	MintAuthority   string           `json:"mint_authority"`
	FreezeAuthority string           `json:"freeze_authority"`
	FirstMintTime   *int64           `json:"first_mint_time"`
	FirstMintTx     string           `json:"first_mint_tx"`
	Metadata        *TokenLinks      `json:"metadata"`
}

// TokenHolder is one row of token/holders.
type TokenHolder struct {
	Address  string          `json:"address"`
	Amount   decimal.Decimal `json:"amount"` // raw units
	Decimals int32           `json:"decimals"`
	Owner    string          `json:"owner"`
	Rank     int             `json:"rank"`
}

// TokenHolders is the payload of token/holders.
type TokenHolders struct {
	Total int64         `json:"total"`
	Items []TokenHolder `json:"items"`
}

// NFTCollection is one row of nft/collection/lists.
type NFTCollection struct {
	CollectionID     string     `json:"collection_id"`
	Name             string     `json:"name"`
	Symbol           string     `json:"symbol"`
	FloorPrice       float64    `json:"floor_price"`
	Items            int64      `json:"items"`
	Marketplaces     []string   `json:"marketplaces"`
	Volumes          float64    `json:"volumes"`
	VolumesChange24h FlexString `json:"volumes_change_24h"` // percentage
}

// NFTCreator is a creator entry with its royalty share.
type NFTCreator struct {
	Address  string `json:"address"`
	Verified Flag   `json:"verified"`
	Share    int    `json:"share"`
}

// NFTAttribute is one trait of an NFT.
type NFTAttribute struct {
	TraitType string     `json:"trait_type"`
	Value     FlexString `json:"value"`
}

// NFTData is the on-chain metadata account data.
type NFTData struct {
	Name                 string       `json:"name"`
	Symbol               string       `json:"symbol"`
	URI                  string       `json:"uri"`
	SellerFeeBasisPoints int          `json:"sellerFeeBasisPoints"`
	Creators             []NFTCreator `json:"creators"`
}

// PoolMint names one side of a liquidity pool.
type PoolMint struct {
	Address string `json:"address"`
	Symbol  string `json:"symbol"`
}

// PoolPeriod carries the APR of a pool over one period.
type PoolPeriod struct {
	APR float64 `json:"apr"`
}

// PoolInfo is attached to liquidity-position NFTs.
type PoolInfo struct {
	Type    string      `json:"type"`
	MintA   *PoolMint   `json:"mintA"`
	MintB   *PoolMint   `json:"mintB"`
	TVL     float64     `json:"tvl"`
	Price   float64     `json:"price"`
	FeeRate float64     `json:"feeRate"`
	Day     *PoolPeriod `json:"day"`
	Week    *PoolPeriod `json:"week"`
	Month   *PoolPeriod `json:"month"`
}

// UnclaimedFee is the fee value a position has accrued.
type UnclaimedFee struct {
	USDValue float64 `json:"usdValue"`
}

// PositionInfo is the liquidity position held by an LP NFT.
type PositionInfo struct {
	AmountA      float64       `json:"amountA"`
	AmountB      float64       `json:"amountB"`
	USDValue     float64       `json:"usdValue"`
	UnclaimedFee *UnclaimedFee `json:"unclaimedFee"`
}

// NFTMeta is the off-chain JSON metadata of an NFT.
type NFTMeta struct {
	Name                 string         `json:"name"`
	Symbol               string         `json:"symbol"`
	Description          string         `json:"description"`
	Image                string         `json:"image"`
	ExternalURL          string         `json:"external_url"`
	SellerFeeBasisPoints int            `json:"seller_fee_basis_points"`
	Attributes           []NFTAttribute `json:"attributes"`
	Collection           *struct {
		Name   string `json:"name"`
		Family string `json:"family"`
	} `json:"collection"`
	Properties *struct {
		Creators []NFTCreator `json:"creators"`
	} `json:"properties"`
	PoolInfo     *PoolInfo     `json:"poolInfo"`
	PositionInfo *PositionInfo `json:"positionInfo"`
}

// NFTInfo is the identity and metadata of an NFT.
type NFTInfo struct {
	Address     string   `json:"address"`
	TokenName   string   `json:"token_name"`
	Collection  string   `json:"collection"`
	CreatedTime int64    `json:"created_time"`
	MintTx      string   `json:"mint_tx"`
	Data        *NFTData `json:"data"`
	Meta        *NFTMeta `json:"meta"`
}

// NFTTradeStats describes the last trade of an NFT.
type NFTTradeStats struct {
	Price     decimal.Decimal `json:"price"` // lamports
	Type      string          `json:"type"`
	Buyer     string          `json:"buyer"`
	Seller    string          `json:"seller"`
	MarketID  string          `json:"market_id"`
	TradeTime int64           `json:"trade_time"`
}

// NFTItem is an entry of nft/news and nft/collection/items.
type NFTItem struct {
	Info        NFTInfo        `json:"info"`
	Stats       *NFTTradeStats `json:"stats"`
	TokenSymbol string         `json:"token_symbol"`
}

// ChainInfo is the payload of the public chaininfo endpoint.
type ChainInfo struct {
	BlockHeight      uint64 `json:"blockHeight"`
	CurrentEpoch     uint64 `json:"currentEpoch"`
	AbsoluteSlot     uint64 `json:"absoluteSlot"`
	TransactionCount uint64 `json:"transactionCount"`
}

// Flag decodes booleans that the explorer sometimes sends as 0/1.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "true", "1", `"true"`, `"1"`:
		*f = true
	default:
		*f = false
	}
	return nil
}

// FlexString decodes a JSON string, or keeps the raw text of any other scalar.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = FlexString(b)
	return nil
}
