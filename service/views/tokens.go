package views

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/brojonat/soldungen/client"
	"github.com/brojonat/soldungen/service/fetch"
	"github.com/brojonat/soldungen/service/format"
)

// TokenRow is a display row of the token lists.
type TokenRow struct {
	Rank      int
	Address   string
	Symbol    string
	Name      string
	Price     string
	MarketCap string
	Change    string
	ChangeUp  bool
	Holders   string
}

func tokenRows(tokens []client.Token) []TokenRow {
	rows := make([]TokenRow, 0, len(tokens))
	for i, t := range tokens {
		rows = append(rows, TokenRow{
			Rank:      i + 1,
			Address:   t.Address,
			Symbol:    t.Symbol,
			Name:      t.Name,
			Price:     "$" + format.Float(t.Price, 4),
			MarketCap: "$" + format.Compact(t.MarketCap),
			Change:    format.Float(t.Price24hChange, 2) + "%",
			ChangeUp:  t.Price24hChange >= 0,
			Holders:   format.Int(t.Holder),
		})
	}
	return rows
}

// TokensPage lists trending tokens and the largest tokens by market cap.
type TokensPage struct {
	Trending Section[TokenRow]
	Top      Section[TokenRow]
}

// Tokens loads both token lists.
func (v *Views) Tokens(ctx context.Context) TokensPage {
	trending := newLoader(v, "trending_tokens", MsgTrendingTokens, v.api.TrendingTokens)
	top := newLoader(v, "top_tokens", MsgTopTokens, v.api.TokensByMarketCap)
	v.loadAll(ctx, trending, top)

	ts, ps := trending.State(), top.State()
	return TokensPage{
		Trending: section(ts, EmptyTokens, tokenRows(ts.Data)),
		Top:      section(ps, EmptyTokens, tokenRows(ps.Data)),
	}
}

// TrendingTokens loads only the trending list.
func (v *Views) TrendingTokens(ctx context.Context) Section[TokenRow] {
	l := newLoader(v, "trending_tokens", MsgTrendingTokens, v.api.TrendingTokens)
	defer l.Close()
	st := l.Load(ctx)
	return section(st, EmptyTokens, tokenRows(st.Data))
}

// TopTokens loads only the market cap ranking.
func (v *Views) TopTokens(ctx context.Context) Section[TokenRow] {
	l := newLoader(v, "top_tokens", MsgTopTokens, v.api.TokensByMarketCap)
	defer l.Close()
	st := l.Load(ctx)
	return section(st, EmptyTokens, tokenRows(st.Data))
}

// TokenDetail is the metadata card of one token.
type TokenDetail struct {
	Address         string
	Name            string
	Symbol          string
	Icon            string
	Price           string
	Volume24h       string
	MarketCap       string
	MarketCapRank   string
	Change          string
	ChangeUp        bool
	Supply          string
	Decimals        string
	Holders         string
	MintAuthority   string
	FreezeAuthority string
	FirstMint       string
	FirstMintTx     string
	Website         string
	Twitter         string
}

func optional[T any](p *T, render func(T) string) string {
	if p == nil {
		return format.NotAvailable
	}
	return render(*p)
}

func (v *Views) tokenDetail(m *client.TokenMeta) *TokenDetail {
	if m == nil {
		return nil
	}
	d := &TokenDetail{
		Address:         m.Address,
		Name:            optional(m.Name, func(s string) string { return s }),
		Symbol:          optional(m.Symbol, func(s string) string { return s }),
		Icon:            m.Icon,
		Price:           optional(m.Price, func(f float64) string { return "$" + format.Float(f, 4) }),
		Volume24h:       optional(m.Volume24h, func(f float64) string { return "$" + format.Compact(f) }),
		MarketCap:       optional(m.MarketCap, func(f float64) string { return "$" + format.Compact(f) }),
		MarketCapRank:   optional(m.MarketCapRank, func(r int64) string { return "#" + format.Int(r) }),
		Change:          optional(m.PriceChange24h, func(f float64) string { return format.Float(f, 2) + "%" }),
		ChangeUp:        m.PriceChange24h == nil || *m.PriceChange24h >= 0,
		Decimals:        optional(m.Decimals, func(d int32) string { return format.Int(d) }),
		Holders:         optional(m.Holder, format.Compact),
		MintAuthority:   m.MintAuthority,
		FreezeAuthority: m.FreezeAuthority,
		FirstMint:       optional(m.FirstMintTime, func(t int64) string { return format.Timestamp(t, v.now()) }),
		FirstMintTx:     m.FirstMintTx,
		Supply:          format.NotAvailable,
	}
	if m.Supply != nil && m.Decimals != nil {
		d.Supply = format.CompactDecimal(format.Amount(*m.Supply, *m.Decimals))
	}
	if m.Metadata != nil {
		d.Website = m.Metadata.Website
		d.Twitter = m.Metadata.Twitter
	}
	return d
}

// HolderRow is a display row of the holders table.
type HolderRow struct {
	Rank         int
	Address      string
	ShortAddress string
	Owner        string
	ShortOwner   string
	Amount       string
	Raw          decimal.Decimal
}

// TokenPage is the detail page of one token.
type TokenPage struct {
	Mint    string
	Invalid string
	Detail  *TokenDetail
	MetaErr string
	Total   string
	Holders Section[HolderRow]
}

// Token loads a token's metadata and its largest holders. An address that is
// not a valid public key is rejected without calling out.
func (v *Views) Token(ctx context.Context, mint string) TokenPage {
	page := TokenPage{Mint: mint}
	if !ValidAddress(mint) {
		page.Invalid = MsgInvalidAddress
		return page
	}

	meta := newLoader(v, "token_meta", MsgTokenMeta, func(ctx context.Context) (*client.TokenMeta, error) {
		return v.api.TokenMeta(ctx, mint)
	})
	holders := v.holdersLoader(mint)
	v.loadAll(ctx, meta, holders)

	ms := meta.State()
	page.MetaErr = ms.Err
	page.Detail = v.tokenDetail(ms.Data)

	page.Total, page.Holders = holdersSection(holders.State())
	return page
}

// HoldersPage is the holders table of one token on its own.
type HoldersPage struct {
	Mint    string
	Invalid string
	Total   string
	Holders Section[HolderRow]
}

// Holders loads only the largest holders of a token.
func (v *Views) Holders(ctx context.Context, mint string) HoldersPage {
	page := HoldersPage{Mint: mint}
	if !ValidAddress(mint) {
		page.Invalid = MsgInvalidAddress
		return page
	}

	l := v.holdersLoader(mint)
	defer l.Close()
	page.Total, page.Holders = holdersSection(l.Load(ctx))
	return page
}

func (v *Views) holdersLoader(mint string) *fetch.Loader[*client.TokenHolders] {
	return newLoader(v, "holders", MsgHolders, func(ctx context.Context) (*client.TokenHolders, error) {
		return v.api.TokenHolders(ctx, mint)
	})
}

func holdersSection(st fetch.State[*client.TokenHolders]) (string, Section[HolderRow]) {
	var total string
	var rows []HolderRow
	if st.Data != nil {
		total = format.Int(st.Data.Total)
		rows = holderRows(st.Data.Items)
	}
	return total, section(st, EmptyHolders, rows)
}

func holderRows(items []client.TokenHolder) []HolderRow {
	rows := make([]HolderRow, 0, len(items))
	for _, h := range items {
		amount := format.Amount(h.Amount, h.Decimals)
		rows = append(rows, HolderRow{
			Rank:         h.Rank,
			Address:      h.Address,
			ShortAddress: format.ShortAddress(h.Address, 6),
			Owner:        h.Owner,
			ShortOwner:   format.ShortAddress(h.Owner, 6),
			Amount:       format.Number(amount, h.Decimals),
			Raw:          amount,
		})
	}
	return rows
}
