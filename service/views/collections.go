package views

import (
	"cmp"
	"net/url"
	"slices"
	"strings"

	"github.com/brojonat/soldungen/client"
	"github.com/brojonat/soldungen/service/format"
)

// SortField is a sortable column of the collections table.
type SortField string

const (
	SortName       SortField = "name"
	SortFloorPrice SortField = "floor_price"
	SortItems      SortField = "items"
	SortVolumes    SortField = "volumes"
	SortChange     SortField = "volumes_change_24h"
)

// SortDir is a sort direction.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

var sortColumns = []struct {
	Field SortField
	Label string
}{
	{SortName, "Collection"},
	{SortFloorPrice, "Floor Price"},
	{SortItems, "Items"},
	{SortVolumes, "Volume (24h)"},
	{SortChange, "Change (24h)"},
}

// SortState is the active column and direction.
type SortState struct {
	Field SortField
	Dir   SortDir
}

// DefaultSort is volume, largest first.
func DefaultSort() SortState {
	return SortState{Field: SortVolumes, Dir: Desc}
}

// ParseSort reads a sort state from query values. Unknown fields fall back to
// the default state; unknown directions fall back to descending.
func ParseSort(field, dir string) SortState {
	f := SortField(strings.ToLower(strings.TrimSpace(field)))
	if !knownField(f) {
		return DefaultSort()
	}
	d := SortDir(strings.ToLower(strings.TrimSpace(dir)))
	if d != Asc {
		d = Desc
	}
	return SortState{Field: f, Dir: d}
}

func knownField(f SortField) bool {
	for _, c := range sortColumns {
		if c.Field == f {
			return true
		}
	}
	return false
}

// Toggle clicks a column header: the active column flips direction, any other
// column becomes active in descending order.
func (s SortState) Toggle(field SortField) SortState {
	if field == s.Field {
		if s.Dir == Asc {
			return SortState{Field: field, Dir: Desc}
		}
		return SortState{Field: field, Dir: Asc}
	}
	return SortState{Field: field, Dir: Desc}
}

// Query encodes the state as sort/dir query parameters.
func (s SortState) Query() string {
	return url.Values{"sort": {string(s.Field)}, "dir": {string(s.Dir)}}.Encode()
}

// SortCollections returns a sorted copy of cols. Equal keys keep their input
// order. The 24h change is compared numerically with any "%" stripped.
func SortCollections(cols []client.NFTCollection, s SortState) []client.NFTCollection {
	if !knownField(s.Field) {
		s = DefaultSort()
	}
	out := slices.Clone(cols)
	slices.SortStableFunc(out, func(a, b client.NFTCollection) int {
		c := compareCollections(a, b, s.Field)
		if s.Dir == Asc {
			return c
		}
		return -c
	})
	return out
}

func compareCollections(a, b client.NFTCollection, f SortField) int {
	switch f {
	case SortName:
		return cmp.Compare(a.Name, b.Name)
	case SortFloorPrice:
		return cmp.Compare(a.FloorPrice, b.FloorPrice)
	case SortItems:
		return cmp.Compare(a.Items, b.Items)
	case SortChange:
		return cmp.Compare(format.Percent(string(a.VolumesChange24h)), format.Percent(string(b.VolumesChange24h)))
	default:
		return cmp.Compare(a.Volumes, b.Volumes)
	}
}

// SortHeader is one clickable column header.
type SortHeader struct {
	Label  string
	Field  SortField
	Active bool
	Dir    SortDir
	Next   SortState
}

// Headers returns the column headers for the current state.
func (s SortState) Headers() []SortHeader {
	out := make([]SortHeader, 0, len(sortColumns))
	for _, c := range sortColumns {
		out = append(out, SortHeader{
			Label:  c.Label,
			Field:  c.Field,
			Active: c.Field == s.Field,
			Dir:    s.Dir,
			Next:   s.Toggle(c.Field),
		})
	}
	return out
}

// CollectionRow is a display row of the collections table.
type CollectionRow struct {
	ID           string
	Name         string
	Symbol       string
	FloorPrice   string
	Items        string
	Volume       string
	Change       string
	ChangeUp     bool
	Marketplaces []string
}

func (v *Views) collectionRows(cols []client.NFTCollection) []CollectionRow {
	rows := make([]CollectionRow, 0, len(cols))
	for _, c := range cols {
		change := format.Percent(string(c.VolumesChange24h))
		markets := make([]string, 0, len(c.Marketplaces))
		for _, m := range c.Marketplaces {
			markets = append(markets, v.labels.Marketplace(m))
		}
		rows = append(rows, CollectionRow{
			ID:           c.CollectionID,
			Name:         c.Name,
			Symbol:       c.Symbol,
			FloorPrice:   format.Float(c.FloorPrice, 4) + " SOL",
			Items:        format.Int(c.Items),
			Volume:       format.Grouped(c.Volumes, 2) + " SOL",
			Change:       format.Float(change, 2) + "%",
			ChangeUp:     change >= 0,
			Marketplaces: markets,
		})
	}
	return rows
}
