package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/brojonat/soldungen/service/views"
)

func collectionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "collections",
		Usage: "List trending NFT collections",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort column (name, floor_price, items, volumes, volumes_change_24h)",
				Value: string(views.SortVolumes),
			},
			&cli.BoolFlag{
				Name:  "asc",
				Usage: "Sort ascending instead of descending",
			},
		},
		Action: func(c *cli.Context) error {
			v, err := getViews(c)
			if err != nil {
				return err
			}

			dir := views.Desc
			if c.Bool("asc") {
				dir = views.Asc
			}
			cols := v.Collections(c.Context, views.ParseSort(c.String("sort"), string(dir)))

			if err := output(c, cols, func(w io.Writer) {
				writeSection(w, cols, "ID\tNAME\tFLOOR\tITEMS\tVOLUME\t24H\tMARKETPLACES", func(w io.Writer, r views.CollectionRow) {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						r.ID, r.Name, r.FloorPrice, r.Items, r.Volume, r.Change, strings.Join(r.Marketplaces, ", "))
				})
			}); err != nil {
				return err
			}
			return failed(cols.Err)
		},
	}
}

const cardHeader = "MINT\tNAME\tCOLLECTION\tPRICE\tATTRIBUTES"

func writeCard(w io.Writer, n views.NFTCard) {
	attrs := make([]string, 0, len(n.Attributes))
	for _, a := range n.Attributes {
		attrs = append(attrs, a.Trait+"="+a.Value)
	}
	if n.MoreAttributes > 0 {
		attrs = append(attrs, fmt.Sprintf("+%d more", n.MoreAttributes))
	}
	mark := ""
	if n.Selected {
		mark = "*"
	}
	fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\n", mark, n.Mint, n.Name, n.Collection, n.Price, strings.Join(attrs, ", "))
}

func newestNFTsCommand() *cli.Command {
	return &cli.Command{
		Name:  "newest",
		Usage: "List the newest NFTs",
		Action: func(c *cli.Context) error {
			v, err := getViews(c)
			if err != nil {
				return err
			}

			cards := v.NewestNFTs(c.Context)
			if err := output(c, cards, func(w io.Writer) {
				writeSection(w, cards, cardHeader, writeCard)
			}); err != nil {
				return err
			}
			return failed(cards.Err)
		},
	}
}

func collectionItemsCommand() *cli.Command {
	return &cli.Command{
		Name:      "items",
		Usage:     "List recently traded items of a collection",
		ArgsUsage: "COLLECTION_ID",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "item",
				Usage: "Mint of the item to show in detail (default: first item)",
			},
		},
		Action: func(c *cli.Context) error {
			id, err := requireArg(c, "collection id")
			if err != nil {
				return err
			}
			v, err := getViews(c)
			if err != nil {
				return err
			}

			var sel views.Selection
			if item := c.String("item"); item != "" {
				sel.Select(item)
			}
			page := v.Collection(c.Context, id, sel)

			if err := output(c, page, func(w io.Writer) {
				if d := page.Detail; d != nil {
					fmt.Fprintf(w, "Name:\t%s\n", d.Name)
					fmt.Fprintf(w, "Mint:\t%s\n", d.Mint)
					fmt.Fprintf(w, "Collection:\t%s\n", d.Collection)
					fmt.Fprintf(w, "Royalty:\t%s\n", d.Royalty)
					if d.HasSale {
						fmt.Fprintf(w, "Last sale:\t%s on %s (%s)\n", d.Price, d.Marketplace, d.LastTrade)
					}
					fmt.Fprintln(w)
				}
				writeSection(w, page.Items, cardHeader, writeCard)
			}); err != nil {
				return err
			}
			return failed(page.Items.Err)
		},
	}
}
