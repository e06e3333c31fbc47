package views

import (
	"context"
	"strings"

	"github.com/brojonat/soldungen/client"
	"github.com/brojonat/soldungen/service/format"
	"github.com/brojonat/soldungen/service/labels"
)

// FilterPools keeps the pools where the case-insensitive query is a substring
// of the pool address, program id, either token mint, or the label of the
// program or either token. A blank query keeps everything. Order is preserved.
func FilterPools(pools []client.Pool, query string, reg *labels.Registry) []client.Pool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return pools
	}

	out := make([]client.Pool, 0, len(pools))
	for _, p := range pools {
		if poolMatches(p, q, reg) {
			out = append(out, p)
		}
	}
	return out
}

func poolMatches(p client.Pool, q string, reg *labels.Registry) bool {
	for _, field := range []string{p.PoolAddress, p.ProgramID, p.Token1, p.Token2} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, addr := range []string{p.ProgramID, p.Token1, p.Token2} {
		if name := reg.Name(addr); name != "" && strings.Contains(strings.ToLower(name), q) {
			return true
		}
	}
	return false
}

// PoolRow is a display row of the market table.
type PoolRow struct {
	Address      string
	ShortAddress string
	Program      string
	ProgramID    string
	Token1       string
	Token1Mint   string
	Token2       string
	Token2Mint   string
	Created      string
}

// MarketPage is the market pools page.
type MarketPage struct {
	Query string
	Total int
	Pools Section[PoolRow]
}

// Market fetches the newest pools and filters them by query.
func (v *Views) Market(ctx context.Context, query string) MarketPage {
	l := newLoader(v, "market", MsgMarket, v.api.MarketPools)
	defer l.Close()
	st := l.Load(ctx)

	now := v.now()
	filtered := FilterPools(st.Data, query, v.labels)
	rows := make([]PoolRow, 0, len(filtered))
	for _, p := range filtered {
		rows = append(rows, PoolRow{
			Address:      p.PoolAddress,
			ShortAddress: format.ShortAddress(p.PoolAddress, 6),
			Program:      v.addressLabel(p.ProgramID),
			ProgramID:    p.ProgramID,
			Token1:       v.addressLabel(p.Token1),
			Token1Mint:   p.Token1,
			Token2:       v.addressLabel(p.Token2),
			Token2Mint:   p.Token2,
			Created:      format.Timestamp(p.CreatedTime, now),
		})
	}

	return MarketPage{
		Query: query,
		Total: len(st.Data),
		Pools: section(st, EmptyPools, rows),
	}
}

// addressLabel is the registry label or a shortened address.
func (v *Views) addressLabel(addr string) string {
	if name := v.labels.Name(addr); name != "" {
		return name
	}
	return format.ShortAddress(addr, 4)
}
