package views

import (
	"context"

	"github.com/brojonat/soldungen/client"
	"github.com/brojonat/soldungen/service/fetch"
	"github.com/brojonat/soldungen/service/format"
)

// BlockRow is a display row of the latest blocks list.
type BlockRow struct {
	Height       string
	Slot         string
	ParentSlot   string
	Hash         string
	ShortHash    string
	PreviousHash string
	Transactions string
	Fees         string
	FeesPrecise  string
	Time         string
	Relative     string
}

func (v *Views) blockRows(blocks []client.Block) []BlockRow {
	now := v.now()
	rows := make([]BlockRow, 0, len(blocks))
	for _, b := range blocks {
		rel := format.RelativeString(b.Time, now)
		if rel == format.UnknownTime {
			rel = format.Relative(format.Unix(b.BlockTime), now)
		}
		rows = append(rows, BlockRow{
			Height:       format.Int(b.BlockHeight),
			Slot:         format.Int(b.CurrentSlot),
			ParentSlot:   format.Int(b.ParentSlot),
			Hash:         b.Blockhash,
			ShortHash:    format.Truncate(b.Blockhash, 16),
			PreviousHash: b.PreviousBlockhash,
			Transactions: format.Int(b.TransactionsCount),
			Fees:         format.SOL(b.FeeRewards, 4),
			FeesPrecise:  format.SOL(b.FeeRewards, 6),
			Time:         format.Timestamp(b.BlockTime, now),
			Relative:     rel,
		})
	}
	return rows
}

// ChainStats is the network summary card.
type ChainStats struct {
	BlockHeight  string
	Transactions string
	Epoch        string
	Slot         string
}

// HomePage is the landing page: network stats and the latest blocks.
type HomePage struct {
	Chain    *ChainStats
	ChainErr string
	Latest   *BlockRow
	Blocks   Section[BlockRow]
}

// Home loads chain stats and the latest blocks.
func (v *Views) Home(ctx context.Context) HomePage {
	chain := v.chainLoader()
	blocks := v.blocksLoader()
	v.loadAll(ctx, chain, blocks)

	var page HomePage

	cs := chain.State()
	page.Chain, page.ChainErr = chainStats(cs.Data), cs.Err

	bs := blocks.State()
	rows := v.blockRows(bs.Data)
	if len(rows) > 0 {
		page.Latest = &rows[0]
	}
	page.Blocks = section(bs, EmptyBlocks, rows)
	return page
}

// Blocks loads only the latest blocks.
func (v *Views) Blocks(ctx context.Context) Section[BlockRow] {
	l := v.blocksLoader()
	defer l.Close()
	st := l.Load(ctx)
	return section(st, EmptyBlocks, v.blockRows(st.Data))
}

// Chain loads only the network summary. The string is the section error.
func (v *Views) Chain(ctx context.Context) (*ChainStats, string) {
	l := v.chainLoader()
	defer l.Close()
	st := l.Load(ctx)
	return chainStats(st.Data), st.Err
}

func (v *Views) chainLoader() *fetch.Loader[*client.ChainInfo] {
	return newLoader(v, "chain", MsgChainInfo, v.api.ChainInfo)
}

func (v *Views) blocksLoader() *fetch.Loader[[]client.Block] {
	return newLoader(v, "blocks", MsgBlocks, func(ctx context.Context) ([]client.Block, error) {
		return v.api.LastBlocks(ctx, client.DefaultBlockLimit)
	})
}

func chainStats(info *client.ChainInfo) *ChainStats {
	if info == nil {
		return nil
	}
	return &ChainStats{
		BlockHeight:  format.Int(info.BlockHeight),
		Transactions: format.Int(info.TransactionCount),
		Epoch:        format.Int(info.CurrentEpoch),
		Slot:         format.Int(info.AbsoluteSlot),
	}
}
