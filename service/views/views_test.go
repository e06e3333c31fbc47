package views

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brojonat/soldungen/client"
	"github.com/brojonat/soldungen/service/labels"
)

const (
	usdc = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	wsol = "So11111111111111111111111111111111111111112"
	bonk = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
	ray  = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
)

func samplePools() []client.Pool {
	return []client.Pool{
		{PoolAddress: "PoolAaaa1111", ProgramID: ray, Token1: wsol, Token2: usdc},
		{PoolAddress: "PoolBbbb2222", ProgramID: "OtherProg", Token1: bonk, Token2: wsol},
		{PoolAddress: "PoolCccc3333", ProgramID: "OtherProg", Token1: "MintX", Token2: "MintY"},
	}
}

func poolAddrs(pools []client.Pool) []string {
	out := make([]string, 0, len(pools))
	for _, p := range pools {
		out = append(out, p.PoolAddress)
	}
	return out
}

func TestFilterPools(t *testing.T) {
	reg := labels.New()
	pools := samplePools()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"blank keeps all", "   ", []string{"PoolAaaa1111", "PoolBbbb2222", "PoolCccc3333"}},
		{"address substring ignores case", "poolbbbb", []string{"PoolBbbb2222"}},
		{"mint substring", "mintx", []string{"PoolCccc3333"}},
		{"token label", "usdc", []string{"PoolAaaa1111"}},
		{"program label", "raydium", []string{"PoolAaaa1111"}},
		{"wrapped sol label keeps order", "sol", []string{"PoolAaaa1111", "PoolBbbb2222"}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, poolAddrs(FilterPools(pools, tt.query, reg)))
		})
	}
}

func TestFilterPools_LongerQueryNarrows(t *testing.T) {
	reg := labels.New()
	pools := samplePools()

	query := "poolaaaa1111"
	for i := 1; i < len(query); i++ {
		wider := poolAddrs(FilterPools(pools, query[:i], reg))
		narrower := poolAddrs(FilterPools(pools, query[:i+1], reg))
		for _, addr := range narrower {
			assert.Contains(t, wider, addr, "prefix %q", query[:i])
		}
	}
}

func sampleCollections() []client.NFTCollection {
	return []client.NFTCollection{
		{CollectionID: "a", Name: "Alpha", FloorPrice: 1.5, Items: 100, Volumes: 50, VolumesChange24h: "12.5%"},
		{CollectionID: "b", Name: "Bravo", FloorPrice: 0.2, Items: 300, Volumes: 500, VolumesChange24h: "-3"},
		{CollectionID: "c", Name: "Charlie", FloorPrice: 9, Items: 10, Volumes: 5, VolumesChange24h: "40"},
	}
}

func collectionIDs(cols []client.NFTCollection) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.CollectionID)
	}
	return out
}

func TestSortCollections(t *testing.T) {
	cols := sampleCollections()

	tests := []struct {
		state SortState
		want  []string
	}{
		{DefaultSort(), []string{"b", "a", "c"}},
		{SortState{SortVolumes, Asc}, []string{"c", "a", "b"}},
		{SortState{SortName, Asc}, []string{"a", "b", "c"}},
		{SortState{SortFloorPrice, Desc}, []string{"c", "a", "b"}},
		{SortState{SortItems, Desc}, []string{"b", "a", "c"}},
		{SortState{SortChange, Desc}, []string{"c", "a", "b"}},
		{SortState{"bogus", Asc}, []string{"b", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.state.Field, tt.state.Dir), func(t *testing.T) {
			assert.Equal(t, tt.want, collectionIDs(SortCollections(cols, tt.state)))
		})
	}

	assert.Equal(t, []string{"a", "b", "c"}, collectionIDs(cols), "input must not be reordered")
}

func TestSortCollections_AscIsReverseOfDesc(t *testing.T) {
	cols := sampleCollections()
	for _, f := range []SortField{SortName, SortFloorPrice, SortItems, SortVolumes, SortChange} {
		asc := collectionIDs(SortCollections(cols, SortState{f, Asc}))
		desc := collectionIDs(SortCollections(cols, SortState{f, Desc}))
		for i := range asc {
			assert.Equal(t, asc[i], desc[len(desc)-1-i], "field %s", f)
		}
	}
}

func TestSortCollections_StableOnTies(t *testing.T) {
	cols := []client.NFTCollection{
		{CollectionID: "x", Volumes: 1},
		{CollectionID: "y", Volumes: 1},
		{CollectionID: "z", Volumes: 1},
	}
	assert.Equal(t, []string{"x", "y", "z"}, collectionIDs(SortCollections(cols, DefaultSort())))
	assert.Equal(t, []string{"x", "y", "z"}, collectionIDs(SortCollections(cols, SortState{SortVolumes, Asc})))
}

func TestSortState_Toggle(t *testing.T) {
	s := DefaultSort()

	s = s.Toggle(SortVolumes)
	assert.Equal(t, SortState{SortVolumes, Asc}, s)

	s = s.Toggle(SortVolumes)
	assert.Equal(t, SortState{SortVolumes, Desc}, s)

	s = s.Toggle(SortVolumes).Toggle(SortName)
	assert.Equal(t, SortState{SortName, Desc}, s, "a new column always starts descending")
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, DefaultSort(), ParseSort("", ""))
	assert.Equal(t, DefaultSort(), ParseSort("nope", "asc"))
	assert.Equal(t, SortState{SortName, Asc}, ParseSort("name", "ASC"))
	assert.Equal(t, SortState{SortItems, Desc}, ParseSort("items", "sideways"))
	assert.Equal(t, "dir=asc&sort=name", SortState{SortName, Asc}.Query())
}

func TestSortState_Headers(t *testing.T) {
	headers := DefaultSort().Headers()
	require.Len(t, headers, 5)
	for _, h := range headers {
		if h.Field == SortVolumes {
			assert.True(t, h.Active)
			assert.Equal(t, SortState{SortVolumes, Asc}, h.Next)
		} else {
			assert.False(t, h.Active)
			assert.Equal(t, Desc, h.Next.Dir)
		}
	}
}

func nftItems(n int) []client.NFTItem {
	items := make([]client.NFTItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, client.NFTItem{Info: client.NFTInfo{Address: fmt.Sprintf("mint%d", i)}})
	}
	return items
}

func TestSelection(t *testing.T) {
	var sel Selection

	_, ok := sel.Display(nil)
	assert.False(t, ok)

	items := nftItems(3)
	it, ok := sel.Display(items)
	require.True(t, ok)
	assert.Equal(t, "mint0", it.Info.Address)

	assert.True(t, sel.Select("mint2"))
	it, _ = sel.Display(items)
	assert.Equal(t, "mint2", it.Info.Address)

	sel.Select("gone")
	it, _ = sel.Display(items)
	assert.Equal(t, "mint0", it.Info.Address)
}

func TestLookup(t *testing.T) {
	t.Run("blank input never calls out", func(t *testing.T) {
		api := newFake()
		res := newTestViews(api).Lookup(context.Background(), "   ")
		assert.Equal(t, MsgEmptySignature, res.Err)
		assert.Nil(t, res.Detail)
		assert.Equal(t, 0, api.count("detail"))
	})

	t.Run("explorer message is shown", func(t *testing.T) {
		api := newFake()
		api.errs["detail"] = &client.APIError{Endpoint: "transaction/detail", StatusCode: 400, Message: "tx: invalid signature"}
		res := newTestViews(api).Lookup(context.Background(), "bad")
		assert.Equal(t, "tx: invalid signature", res.Err)
		assert.Equal(t, 1, api.count("detail"))
	})

	t.Run("transport error uses generic text", func(t *testing.T) {
		api := newFake()
		api.errs["detail"] = fmt.Errorf("%w: connection refused", client.ErrTransport)
		res := newTestViews(api).Lookup(context.Background(), "sig")
		assert.Equal(t, MsgTransactionLookup, res.Err)
	})

	t.Run("success", func(t *testing.T) {
		api := newFake()
		api.detail = &client.TransactionDetail{
			TxHash:           "5sig",
			TxStatus:         "finalized",
			BlockID:          320000001,
			Fee:              5000,
			ProgramsInvolved: []string{"11111111111111111111111111111111"},
			SolBalanceChanges: []client.BalanceChange{
				{Address: "Signer1", PreBalance: decimal.NewFromInt(2_000_000_000), PostBalance: decimal.NewFromInt(1_999_995_000), ChangeAmount: decimal.NewFromInt(-5000)},
			},
		}
		res := newTestViews(api).Lookup(context.Background(), "  5sig ")
		require.Empty(t, res.Err)
		require.NotNil(t, res.Detail)
		assert.Equal(t, "5sig", res.Signature)
		assert.Equal(t, "0.000005 SOL", res.Detail.Fee)
		assert.Equal(t, "320,000,001", res.Detail.Block)
		assert.Equal(t, "System Program", res.Detail.Programs[0].Label)
		assert.Equal(t, "-0.000005", res.Detail.Balances[0].Change)
		assert.False(t, res.Detail.Balances[0].Positive)
	})
}

func TestHome(t *testing.T) {
	t.Run("data", func(t *testing.T) {
		api := newFake()
		api.chain = &client.ChainInfo{BlockHeight: 290000000, TransactionCount: 300000000000}
		api.blocks = []client.Block{
			{Blockhash: "7Xb1", BlockHeight: 300000001, CurrentSlot: 320000001, BlockTime: 1718000000, Time: "2024-06-10T06:13:20.000Z", TransactionsCount: 1432, FeeRewards: 12_500_000},
		}
		page := newTestViews(api).Home(context.Background())

		require.NotNil(t, page.Chain)
		assert.Equal(t, "290,000,000", page.Chain.BlockHeight)
		require.NotNil(t, page.Latest)
		assert.Equal(t, "0.0125 SOL", page.Latest.Fees)
		assert.Equal(t, "0.012500 SOL", page.Latest.FeesPrecise)
		assert.Equal(t, "3 minutes ago", page.Latest.Relative)
		assert.Equal(t, "1,432", page.Latest.Transactions)
		assert.False(t, page.Blocks.IsEmpty())
	})

	t.Run("errors are independent", func(t *testing.T) {
		api := newFake()
		api.errs["chain"] = errors.New("down")
		api.blocks = []client.Block{}
		page := newTestViews(api).Home(context.Background())

		assert.Equal(t, MsgChainInfo, page.ChainErr)
		assert.Nil(t, page.Chain)
		assert.Empty(t, page.Blocks.Err)
		assert.True(t, page.Blocks.IsEmpty())
		assert.Equal(t, EmptyBlocks, page.Blocks.Empty)
	})

	t.Run("failed blocks show the fixed text", func(t *testing.T) {
		api := newFake()
		api.errs["blocks"] = &client.APIError{Message: "rate limited"}
		page := newTestViews(api).Home(context.Background())

		assert.Equal(t, MsgBlocks, page.Blocks.Err)
		assert.Empty(t, page.Blocks.Rows)
		assert.False(t, page.Blocks.IsEmpty())
		assert.Nil(t, page.Latest)
	})
}

func TestMarket(t *testing.T) {
	api := newFake()
	api.pools = samplePools()
	page := newTestViews(api).Market(context.Background(), "usdc")

	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Pools.Rows, 1)
	assert.Equal(t, "Raydium AMM v4", page.Pools.Rows[0].Program)
	assert.Equal(t, "USDC", page.Pools.Rows[0].Token2)

	api.errs["pools"] = errors.New("boom")
	page = newTestViews(api).Market(context.Background(), "")
	assert.Equal(t, MsgMarket, page.Pools.Err)
}

func TestToken(t *testing.T) {
	t.Run("invalid address never calls out", func(t *testing.T) {
		api := newFake()
		page := newTestViews(api).Token(context.Background(), "not a key")
		assert.Equal(t, MsgInvalidAddress, page.Invalid)
		assert.Equal(t, 0, api.count("meta"))
		assert.Equal(t, 0, api.count("holders"))
	})

	t.Run("meta and holders", func(t *testing.T) {
		name, symbol := "Bonk", "BONK"
		price := 0.00002
		var decimals int32 = 5
		supply := decimal.RequireFromString("8890000000000000")

		api := newFake()
		api.meta = &client.TokenMeta{Address: bonk, Name: &name, Symbol: &symbol, Price: &price, Decimals: &decimals, Supply: &supply}
		api.holders = &client.TokenHolders{Total: 1523, Items: []client.TokenHolder{
			{Address: "Acct1", Owner: "Owner1", Amount: decimal.NewFromInt(150_000_000), Decimals: 5, Rank: 1},
			{Address: "Acct2", Owner: "Owner2", Amount: decimal.NewFromInt(12_345), Decimals: 5, Rank: 2},
		}}

		page := newTestViews(api).Token(context.Background(), bonk)
		require.NotNil(t, page.Detail)
		assert.Equal(t, "Bonk", page.Detail.Name)
		assert.Equal(t, "$0.0000", page.Detail.Price)
		assert.Equal(t, "N/A", page.Detail.MarketCap)
		assert.Equal(t, "88.90B", page.Detail.Supply)
		assert.Equal(t, "1,523", page.Total)
		require.Len(t, page.Holders.Rows, 2)
		assert.Equal(t, "1,500", page.Holders.Rows[0].Amount)
		assert.Equal(t, "0.12345", page.Holders.Rows[1].Amount)
	})

	t.Run("holder failure keeps meta", func(t *testing.T) {
		api := newFake()
		api.meta = &client.TokenMeta{Address: bonk}
		api.errs["holders"] = errors.New("timeout")

		page := newTestViews(api).Token(context.Background(), bonk)
		assert.Empty(t, page.MetaErr)
		assert.NotNil(t, page.Detail)
		assert.Equal(t, MsgHolders, page.Holders.Err)
		assert.Empty(t, page.Total)
	})
}

func TestTokens(t *testing.T) {
	api := newFake()
	api.trending = []client.Token{{Address: bonk, Symbol: "BONK", Price: 0.00002, Holder: 900000, Price24hChange: -1.234}}
	api.errs["top"] = errors.New("boom")

	page := newTestViews(api).Tokens(context.Background())
	require.Len(t, page.Trending.Rows, 1)
	assert.Equal(t, "-1.23%", page.Trending.Rows[0].Change)
	assert.False(t, page.Trending.Rows[0].ChangeUp)
	assert.Equal(t, "900,000", page.Trending.Rows[0].Holders)
	assert.Equal(t, MsgTopTokens, page.Top.Err)
}

func TestTokens_SingleList(t *testing.T) {
	api := newFake()
	api.trending = []client.Token{{Address: bonk, Symbol: "BONK"}}

	v := newTestViews(api)
	trending := v.TrendingTokens(context.Background())
	require.Len(t, trending.Rows, 1)
	assert.Equal(t, 1, trending.Rows[0].Rank)
	assert.Zero(t, api.count("top"))

	top := v.TopTokens(context.Background())
	assert.True(t, top.IsEmpty())
	assert.Equal(t, EmptyTokens, top.Empty)
	assert.Equal(t, 1, api.count("top"))
}

func TestSingleSectionViews(t *testing.T) {
	api := newFake()
	api.blocks = []client.Block{{BlockHeight: 1000, Blockhash: "hash"}}
	api.errs["chain"] = errors.New("down")
	api.collections = sampleCollections()
	api.newest = []client.NFTItem{{Info: client.NFTInfo{Address: "noMeta"}}}

	v := newTestViews(api)
	ctx := context.Background()

	blocks := v.Blocks(ctx)
	require.Len(t, blocks.Rows, 1)
	assert.Equal(t, "1,000", blocks.Rows[0].Height)

	stats, errText := v.Chain(ctx)
	assert.Nil(t, stats)
	assert.Equal(t, MsgChainInfo, errText)

	cols := v.Collections(ctx, ParseSort("name", "asc"))
	require.Len(t, cols.Rows, 3)
	assert.Equal(t, "Alpha", cols.Rows[0].Name)

	newest := v.NewestNFTs(ctx)
	assert.True(t, newest.IsEmpty())
	assert.Equal(t, EmptyNFTs, newest.Empty)

	holders := v.Holders(ctx, "bad")
	assert.Equal(t, MsgInvalidAddress, holders.Invalid)
	assert.Zero(t, api.count("holders"))

	assert.Equal(t, 1, api.count("newest"))
	assert.Zero(t, api.count("txns"))
}

func TestNFTs(t *testing.T) {
	api := newFake()
	api.collections = sampleCollections()
	api.collections[0].Marketplaces = []string{"TSWAPaqyCSx2KABk68Shruf4rp7CxcNi8hAsbdwmHbN", "UnknownMarket123"}
	api.newest = []client.NFTItem{
		{Info: client.NFTInfo{Address: "withMeta", Meta: &client.NFTMeta{Name: "Thing"}}},
		{Info: client.NFTInfo{Address: "noMeta"}},
	}

	page := newTestViews(api).NFTs(context.Background(), ParseSort("name", "asc"))
	require.Len(t, page.Collections.Rows, 3)
	assert.Equal(t, "Alpha", page.Collections.Rows[0].Name)
	assert.Equal(t, []string{"Tensor", "UnknownM..."}, page.Collections.Rows[0].Marketplaces)
	assert.Equal(t, "12.50%", page.Collections.Rows[0].Change)

	require.Len(t, page.Newest.Rows, 1)
	assert.Equal(t, "Thing", page.Newest.Rows[0].Name)

	api.collections = nil
	api.newest = nil
	page = newTestViews(api).NFTs(context.Background(), DefaultSort())
	assert.True(t, page.Collections.IsEmpty())
	assert.Equal(t, EmptyCollections, page.Collections.Empty)
	assert.Equal(t, EmptyNFTs, page.Newest.Empty)
}

func TestCollection(t *testing.T) {
	attrs := []client.NFTAttribute{
		{TraitType: "Hat", Value: "Cap"},
		{TraitType: "Eyes", Value: "Laser"},
		{TraitType: "Fur", Value: "Gold"},
		{TraitType: "Level", Value: "3"},
		{TraitType: "Mouth", Value: "Grin"},
	}
	api := newFake()
	api.items = []client.NFTItem{
		{
			Info: client.NFTInfo{
				Address: "mint0",
				Data:    &client.NFTData{SellerFeeBasisPoints: 500, Creators: []client.NFTCreator{{Address: "Creator1", Verified: true, Share: 100}}},
				Meta:    &client.NFTMeta{Name: "Thing #0", Attributes: attrs},
			},
			Stats: &client.NFTTradeStats{Price: decimal.NewFromInt(1_500_000_000), MarketID: "M2mx93ekt1fmXSVkTrUL9xVFHkmME8HTUi5Cyc5aF7K", TradeTime: 1718000000},
		},
		{Info: client.NFTInfo{Address: "mint1", TokenName: "Thing #1"}},
	}

	v := newTestViews(api)

	page := v.Collection(context.Background(), "col-1", Selection{})
	require.NotNil(t, page.Detail)
	assert.Equal(t, "mint0", page.Detail.Mint)
	assert.Equal(t, "5%", page.Detail.Royalty)
	assert.Equal(t, "1.5000 SOL", page.Detail.Price)
	assert.Equal(t, "Magic Eden", page.Detail.Marketplace)
	assert.Len(t, page.Detail.Attributes, 5)

	require.Len(t, page.Items.Rows, 2)
	card := page.Items.Rows[0]
	assert.Len(t, card.Attributes, 3)
	assert.Equal(t, 2, card.MoreAttributes)
	assert.True(t, card.Selected)
	assert.Equal(t, "N/A", page.Items.Rows[1].Price)

	page = v.Collection(context.Background(), "col-1", Selection{Mint: "mint1"})
	assert.Equal(t, "Thing #1", page.Detail.Name)
	assert.True(t, page.Items.Rows[1].Selected)

	api.items = nil
	page = v.Collection(context.Background(), "col-1", Selection{})
	assert.Nil(t, page.Detail)
	assert.Equal(t, EmptyCollectionItems, page.Items.Empty)
	assert.True(t, page.Items.IsEmpty())
}

func TestTransactions(t *testing.T) {
	api := newFake()
	api.txns = []client.Transaction{
		{TxHash: "abcdefghijklmnop", Signer: []string{"SignerAddr123"}, Fee: 5000, Status: "Success", BlockTime: 1718000000, ProgramIDs: []string{"ComputeBudget111111111111111111111111111111"}},
	}

	v := newTestViews(api)

	page := v.Transactions(context.Background(), nil)
	assert.Nil(t, page.Lookup)
	assert.Equal(t, 0, api.count("detail"), "lookups never run on page load")
	require.Len(t, page.Recent.Rows, 1)
	row := page.Recent.Rows[0]
	assert.Equal(t, "abcde...lmnop", row.ShortSig)
	assert.Equal(t, "0.000005 SOL", row.Fee)
	assert.Equal(t, "Compute Budget", row.Program)
	assert.True(t, row.Success)

	empty := ""
	page = v.Transactions(context.Background(), &empty)
	require.NotNil(t, page.Lookup)
	assert.Equal(t, MsgEmptySignature, page.Lookup.Err)
	assert.Equal(t, 0, api.count("detail"))

	api.txns = nil
	api.detail = &client.TransactionDetail{TxHash: "sig"}
	sig := "sig"
	page = v.Transactions(context.Background(), &sig)
	assert.Equal(t, EmptyTransactions, page.Recent.Empty)
	require.NotNil(t, page.Lookup.Detail)
	assert.Equal(t, 1, api.count("detail"))
}
