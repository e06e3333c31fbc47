package views

import (
	"context"

	"github.com/brojonat/soldungen/client"
	"github.com/brojonat/soldungen/service/fetch"
	"github.com/brojonat/soldungen/service/format"
)

// gridAttributes is how many traits a grid card shows before "+N more".
const gridAttributes = 3

// Selection is the NFT chosen on a collection page. It lives only as long as
// the page that owns it.
type Selection struct {
	Mint string
}

// Display returns the selected item, or the first item when nothing (or an
// unknown mint) is selected. ok is false only for an empty list.
func (s Selection) Display(items []client.NFTItem) (item client.NFTItem, ok bool) {
	if len(items) == 0 {
		return client.NFTItem{}, false
	}
	if s.Mint != "" {
		for _, it := range items {
			if it.Info.Address == s.Mint {
				return it, true
			}
		}
	}
	return items[0], true
}

// Select picks an item. The caller should bring the detail card into view,
// which is always requested.
func (s *Selection) Select(mint string) (scrollToTop bool) {
	s.Mint = mint
	return true
}

// Attribute is one displayed NFT trait.
type Attribute struct {
	Trait string
	Value string
}

// NFTCard is a grid card.
type NFTCard struct {
	Mint           string
	Name           string
	Image          string
	Collection     string
	CollectionID   string
	Price          string
	Attributes     []Attribute
	MoreAttributes int
	Created        string
	Selected       bool
}

// Creator is one NFT creator.
type Creator struct {
	Address  string
	Short    string
	Verified bool
	Share    int
}

// PoolSummary describes the pool behind a liquidity-position NFT.
type PoolSummary struct {
	Type     string
	Pair     string
	TVL      string
	Price    string
	FeeRate  string
	APRDay   string
	APRWeek  string
	APRMonth string
}

// PositionSummary describes a liquidity position.
type PositionSummary struct {
	AmountA      string
	AmountB      string
	Value        string
	UnclaimedFee string
}

// NFTDetail is the large card shown above a collection grid.
type NFTDetail struct {
	Mint        string
	ShortMint   string
	Name        string
	Image       string
	Description string
	ExternalURL string
	MintTx      string
	Symbol      string
	Collection  string
	Royalty     string
	Creators    []Creator
	Attributes  []Attribute

	HasSale     bool
	Price       string
	SaleType    string
	Buyer       string
	Seller      string
	Marketplace string
	LastTrade   string

	Pool     *PoolSummary
	Position *PositionSummary
}

func nftName(it client.NFTItem) string {
	if it.Info.Meta != nil && it.Info.Meta.Name != "" {
		return it.Info.Meta.Name
	}
	if it.Info.TokenName != "" {
		return it.Info.TokenName
	}
	return "NFT"
}

func nftPrice(it client.NFTItem) string {
	if it.Stats == nil || it.Stats.Price.IsZero() {
		return format.NotAvailable
	}
	return format.Price(it.Stats.Price) + " SOL"
}

func attributes(it client.NFTItem) []Attribute {
	if it.Info.Meta == nil {
		return nil
	}
	out := make([]Attribute, 0, len(it.Info.Meta.Attributes))
	for _, a := range it.Info.Meta.Attributes {
		out = append(out, Attribute{Trait: a.TraitType, Value: string(a.Value)})
	}
	return out
}

func (v *Views) nftCard(it client.NFTItem, selected string) NFTCard {
	card := NFTCard{
		Mint:         it.Info.Address,
		Name:         nftName(it),
		CollectionID: it.Info.Collection,
		Price:        nftPrice(it),
		Created:      format.Relative(format.Unix(it.Info.CreatedTime), v.now()),
		Selected:     selected != "" && it.Info.Address == selected,
	}
	if m := it.Info.Meta; m != nil {
		card.Image = m.Image
		if m.Collection != nil {
			card.Collection = m.Collection.Name
		}
	}

	attrs := attributes(it)
	if len(attrs) > gridAttributes {
		card.MoreAttributes = len(attrs) - gridAttributes
		attrs = attrs[:gridAttributes]
	}
	card.Attributes = attrs
	return card
}

func (v *Views) nftDetail(it client.NFTItem) NFTDetail {
	now := v.now()
	d := NFTDetail{
		Mint:       it.Info.Address,
		ShortMint:  format.ShortAddress(it.Info.Address, 6),
		Name:       nftName(it),
		MintTx:     it.Info.MintTx,
		Attributes: attributes(it),
		Royalty:    format.NotAvailable,
	}

	var creators []client.NFTCreator
	if data := it.Info.Data; data != nil {
		d.Symbol = data.Symbol
		d.Royalty = format.Royalty(data.SellerFeeBasisPoints)
		creators = data.Creators
	}

	if m := it.Info.Meta; m != nil {
		d.Image = m.Image
		d.Description = m.Description
		d.ExternalURL = m.ExternalURL
		if d.Symbol == "" {
			d.Symbol = m.Symbol
		}
		if m.Collection != nil {
			d.Collection = m.Collection.Name
		}
		if len(creators) == 0 && m.Properties != nil {
			creators = m.Properties.Creators
		}
		if it.Info.Data == nil && m.SellerFeeBasisPoints > 0 {
			d.Royalty = format.Royalty(m.SellerFeeBasisPoints)
		}
		if p := m.PoolInfo; p != nil {
			d.Pool = poolSummary(p)
		}
		if p := m.PositionInfo; p != nil {
			d.Position = positionSummary(p)
		}
	}

	for _, c := range creators {
		d.Creators = append(d.Creators, Creator{
			Address:  c.Address,
			Short:    format.ShortAddress(c.Address, 6),
			Verified: bool(c.Verified),
			Share:    c.Share,
		})
	}

	if s := it.Stats; s != nil {
		d.HasSale = true
		d.Price = nftPrice(it)
		d.SaleType = s.Type
		d.Buyer = format.ShortAddress(s.Buyer, 6)
		d.Seller = format.ShortAddress(s.Seller, 6)
		d.Marketplace = v.labels.Marketplace(s.MarketID)
		d.LastTrade = format.Timestamp(s.TradeTime, now)
	}
	return d
}

func poolSummary(p *client.PoolInfo) *PoolSummary {
	s := &PoolSummary{
		Type:    p.Type,
		TVL:     "$" + format.Grouped(p.TVL, 2),
		Price:   format.Grouped(p.Price, 6),
		FeeRate: format.Float(p.FeeRate*100, 2) + "%",
	}
	a, b := "?", "?"
	if p.MintA != nil && p.MintA.Symbol != "" {
		a = p.MintA.Symbol
	}
	if p.MintB != nil && p.MintB.Symbol != "" {
		b = p.MintB.Symbol
	}
	s.Pair = a + "/" + b
	apr := func(pp *client.PoolPeriod) string {
		if pp == nil {
			return format.NotAvailable
		}
		return format.Float(pp.APR, 2) + "%"
	}
	s.APRDay = apr(p.Day)
	s.APRWeek = apr(p.Week)
	s.APRMonth = apr(p.Month)
	return s
}

func positionSummary(p *client.PositionInfo) *PositionSummary {
	s := &PositionSummary{
		AmountA:      format.Grouped(p.AmountA, 6),
		AmountB:      format.Grouped(p.AmountB, 6),
		Value:        "$" + format.Grouped(p.USDValue, 2),
		UnclaimedFee: format.NotAvailable,
	}
	if p.UnclaimedFee != nil {
		s.UnclaimedFee = "$" + format.Grouped(p.UnclaimedFee.USDValue, 2)
	}
	return s
}

// NFTsPage is the NFT landing page.
type NFTsPage struct {
	Sort        SortState
	Headers     []SortHeader
	Collections Section[CollectionRow]
	Newest      Section[NFTCard]
}

// NFTs loads trending collections, sorted by s, and the newest NFTs.
func (v *Views) NFTs(ctx context.Context, s SortState) NFTsPage {
	cols := v.collectionsLoader()
	newest := v.newestLoader()
	v.loadAll(ctx, cols, newest)

	return NFTsPage{
		Sort:        s,
		Headers:     s.Headers(),
		Collections: v.collectionsSection(cols.State(), s),
		Newest:      v.newestSection(newest.State()),
	}
}

// Collections loads only the trending collections, sorted by s.
func (v *Views) Collections(ctx context.Context, s SortState) Section[CollectionRow] {
	l := v.collectionsLoader()
	defer l.Close()
	return v.collectionsSection(l.Load(ctx), s)
}

// NewestNFTs loads only the newest NFTs.
func (v *Views) NewestNFTs(ctx context.Context) Section[NFTCard] {
	l := v.newestLoader()
	defer l.Close()
	return v.newestSection(l.Load(ctx))
}

func (v *Views) collectionsLoader() *fetch.Loader[[]client.NFTCollection] {
	return newLoader(v, "collections", MsgCollections, v.api.TrendingCollections)
}

func (v *Views) newestLoader() *fetch.Loader[[]client.NFTItem] {
	return newLoader(v, "newest_nfts", MsgNewestNFTs, v.api.NewestNFTs)
}

func (v *Views) collectionsSection(st fetch.State[[]client.NFTCollection], s SortState) Section[CollectionRow] {
	return section(st, EmptyCollections, v.collectionRows(SortCollections(st.Data, s)))
}

// newestSection keeps only items whose metadata has been resolved.
func (v *Views) newestSection(st fetch.State[[]client.NFTItem]) Section[NFTCard] {
	cards := make([]NFTCard, 0, len(st.Data))
	for _, it := range st.Data {
		if it.Info.Meta == nil {
			continue
		}
		cards = append(cards, v.nftCard(it, ""))
	}
	return section(st, EmptyNFTs, cards)
}

// CollectionPage is a single collection with its detail card.
type CollectionPage struct {
	CollectionID string
	Name         string
	Detail       *NFTDetail
	Items        Section[NFTCard]
}

// Collection loads the recently traded items of a collection and builds the
// detail card for the selected mint.
func (v *Views) Collection(ctx context.Context, collectionID string, sel Selection) CollectionPage {
	l := newLoader(v, "collection_items", MsgCollectionItems, func(ctx context.Context) ([]client.NFTItem, error) {
		return v.api.CollectionItems(ctx, collectionID)
	})
	defer l.Close()
	st := l.Load(ctx)

	page := CollectionPage{CollectionID: collectionID}

	shown, ok := sel.Display(st.Data)
	if ok {
		d := v.nftDetail(shown)
		page.Detail = &d
		page.Name = d.Collection
	}

	cards := make([]NFTCard, 0, len(st.Data))
	for _, it := range st.Data {
		cards = append(cards, v.nftCard(it, shown.Info.Address))
	}
	page.Items = section(st, EmptyCollectionItems, cards)
	return page
}
