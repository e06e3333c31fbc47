package client

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// Fixed page sizes baked into the explorer queries.
const (
	DefaultBlockLimit       = 10
	DefaultTransactionLimit = 100
	MarketPageSize          = 10
	HolderPageSize          = 20
	TrendingTokenLimit      = 30
	TokenListPageSize       = 30
	NewestNFTPageSize       = 24
	CollectionPageSize      = 10
	CollectionItemsPageSize = 12
)

// LastBlocks returns the most recent blocks.
// GET /block/last?limit=N
func (c *Client) LastBlocks(ctx context.Context, limit int) ([]Block, error) {
	if limit <= 0 {
		limit = DefaultBlockLimit
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	blocks, err := get[[]Block](ctx, c, c.baseURL, "block/last", q)
	if err != nil {
		return nil, err
	}
	c.recordItems("block/last", len(blocks))
	return blocks, nil
}

// LastTransactions returns the most recent transactions across all programs.
// GET /transaction/last?limit=N&filter=all
func (c *Client) LastTransactions(ctx context.Context, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}
	q := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"filter": {"all"},
	}
	txns, err := get[[]Transaction](ctx, c, c.baseURL, "transaction/last", q)
	if err != nil {
		return nil, err
	}
	c.recordItems("transaction/last", len(txns))
	return txns, nil
}

// TransactionDetail looks up one decoded transaction by signature.
// GET /transaction/detail?tx=SIG
func (c *Client) TransactionDetail(ctx context.Context, signature string) (*TransactionDetail, error) {
	q := url.Values{"tx": {signature}}
	detail, err := get[*TransactionDetail](ctx, c, c.baseURL, "transaction/detail", q)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("%w: transaction/detail: empty data", ErrTransport)
	}
	return detail, nil
}

// MarketPools returns the newest market pools.
// GET /market/list?page=1&page_size=10&sort_by=created_time&sort_order=desc
func (c *Client) MarketPools(ctx context.Context) ([]Pool, error) {
	q := url.Values{
		"page":       {"1"},
		"page_size":  {strconv.Itoa(MarketPageSize)},
		"sort_by":    {"created_time"},
		"sort_order": {"desc"},
	}
	pools, err := get[[]Pool](ctx, c, c.baseURL, "market/list", q)
	if err != nil {
		return nil, err
	}
	c.recordItems("market/list", len(pools))
	return pools, nil
}

// TokenMeta returns the metadata of a single token mint.
// GET /token/meta/multi?address[]=MINT
func (c *Client) TokenMeta(ctx context.Context, mint string) (*TokenMeta, error) {
	q := url.Values{"address[]": {mint}}
	metas, err := get[[]TokenMeta](ctx, c, c.baseURL, "token/meta/multi", q)
	if err != nil {
		return nil, err
	}
	if len(metas) == 0 {
		return nil, &APIError{Endpoint: "token/meta/multi", StatusCode: 200, Message: "token not found"}
	}
	return &metas[0], nil
}

// TokenHolders returns the first page of holders of a token mint.
// GET /token/holders?address=MINT&page=1&page_size=20
func (c *Client) TokenHolders(ctx context.Context, mint string) (*TokenHolders, error) {
	q := url.Values{
		"address":   {mint},
		"page":      {"1"},
		"page_size": {strconv.Itoa(HolderPageSize)},
	}
	holders, err := get[TokenHolders](ctx, c, c.baseURL, "token/holders", q)
	if err != nil {
		return nil, err
	}
	c.recordItems("token/holders", len(holders.Items))
	return &holders, nil
}

// TrendingTokens returns the explorer's trending token list.
// GET /token/trending?limit=30
func (c *Client) TrendingTokens(ctx context.Context) ([]Token, error) {
	q := url.Values{"limit": {strconv.Itoa(TrendingTokenLimit)}}
	tokens, err := get[[]Token](ctx, c, c.baseURL, "token/trending", q)
	if err != nil {
		return nil, err
	}
	c.recordItems("token/trending", len(tokens))
	return tokens, nil
}

// TokensByMarketCap returns the top tokens by market cap, largest first.
// The explorer already sorts server-side; the result is re-sorted so the
// order holds regardless.
// GET /token/list?sort_by=market_cap&sort_order=desc&page=1&page_size=30
func (c *Client) TokensByMarketCap(ctx context.Context) ([]Token, error) {
	q := url.Values{
		"sort_by":    {"market_cap"},
		"sort_order": {"desc"},
		"page":       {"1"},
		"page_size":  {strconv.Itoa(TokenListPageSize)},
	}
	tokens, err := get[[]Token](ctx, c, c.baseURL, "token/list", q)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].MarketCap > tokens[j].MarketCap
	})
	c.recordItems("token/list", len(tokens))
	return tokens, nil
}

// NewestNFTs returns the most recently created NFTs.
// GET /nft/news?filter=created_time&page=1&page_size=24
func (c *Client) NewestNFTs(ctx context.Context) ([]NFTItem, error) {
	q := url.Values{
		"filter":    {"created_time"},
		"page":      {"1"},
		"page_size": {strconv.Itoa(NewestNFTPageSize)},
	}
	items, err := get[[]NFTItem](ctx, c, c.baseURL, "nft/news", q)
	if err != nil {
		return nil, err
	}
	c.recordItems("nft/news", len(items))
	return items, nil
}

// TrendingCollections returns the collections with the highest 24h volume.
// GET /nft/collection/lists?range=1&sort_order=desc&sort_by=volumes&page=1&page_size=10
func (c *Client) TrendingCollections(ctx context.Context) ([]NFTCollection, error) {
	q := url.Values{
		"range":      {"1"},
		"sort_order": {"desc"},
		"sort_by":    {"volumes"},
		"page":       {"1"},
		"page_size":  {strconv.Itoa(CollectionPageSize)},
	}
	cols, err := get[[]NFTCollection](ctx, c, c.baseURL, "nft/collection/lists", q)
	if err != nil {
		return nil, err
	}
	c.recordItems("nft/collection/lists", len(cols))
	return cols, nil
}

// CollectionItems returns the most recently traded items of a collection.
// GET /nft/collection/items?collection=ID&sort_by=last_trade&page=1&page_size=12
func (c *Client) CollectionItems(ctx context.Context, collectionID string) ([]NFTItem, error) {
	q := url.Values{
		"collection": {collectionID},
		"sort_by":    {"last_trade"},
		"page":       {"1"},
		"page_size":  {strconv.Itoa(CollectionItemsPageSize)},
	}
	items, err := get[[]NFTItem](ctx, c, c.baseURL, "nft/collection/items", q)
	if err != nil {
		return nil, err
	}
	c.recordItems("nft/collection/items", len(items))
	return items, nil
}

// ChainInfo returns network-wide block height and transaction count.
// GET {public}/chaininfo
func (c *Client) ChainInfo(ctx context.Context) (*ChainInfo, error) {
	info, err := get[ChainInfo](ctx, c, c.publicBaseURL, "chaininfo", nil)
	if err != nil {
		return nil, err
	}
	return &info, nil
}
