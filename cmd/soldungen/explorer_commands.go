package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/brojonat/soldungen/service/views"
)

func blocksCommand() *cli.Command {
	return &cli.Command{
		Name:  "blocks",
		Usage: "List the latest blocks",
		Action: func(c *cli.Context) error {
			v, err := getViews(c)
			if err != nil {
				return err
			}

			blocks := v.Blocks(c.Context)
			if err := output(c, blocks, func(w io.Writer) {
				writeSection(w, blocks, "BLOCK\tHASH\tTXS\tFEES\tTIME", func(w io.Writer, b views.BlockRow) {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.Height, b.ShortHash, b.Transactions, b.Fees, b.Relative)
				})
			}); err != nil {
				return err
			}
			return failed(blocks.Err)
		},
	}
}

func transactionsCommand() *cli.Command {
	return &cli.Command{
		Name:    "txs",
		Usage:   "List the latest transactions",
		Aliases: []string{"transactions"},
		Action: func(c *cli.Context) error {
			v, err := getViews(c)
			if err != nil {
				return err
			}

			recent := v.Transactions(c.Context, nil).Recent
			if err := output(c, recent, func(w io.Writer) {
				writeSection(w, recent, "SIGNATURE\tSIGNER\tSLOT\tFEE\tSTATUS\tPROGRAM\tTIME", func(w io.Writer, t views.TransactionRow) {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						t.ShortSig, t.ShortSigner, t.Slot, t.Fee, t.Status, t.Program, t.Relative)
				})
			}); err != nil {
				return err
			}
			return failed(recent.Err)
		},
	}
}

func transactionCommand() *cli.Command {
	return &cli.Command{
		Name:      "tx",
		Usage:     "Look up one transaction by signature",
		ArgsUsage: "SIGNATURE",
		Action: func(c *cli.Context) error {
			v, err := getViews(c)
			if err != nil {
				return err
			}

			res := v.Lookup(c.Context, c.Args().First())
			if res.Err != "" {
				return errors.New(res.Err)
			}

			d := res.Detail
			return output(c, d, func(w io.Writer) {
				fmt.Fprintf(w, "Signature:\t%s\n", d.Signature)
				fmt.Fprintf(w, "Status:\t%s\n", d.Status)
				fmt.Fprintf(w, "Block:\t%s\n", d.Block)
				fmt.Fprintf(w, "Fee:\t%s\n", d.Fee)
				fmt.Fprintf(w, "Time:\t%s\n", d.Time)
				fmt.Fprintf(w, "Signers:\t%s\n", strings.Join(d.Signers, ", "))
				for _, p := range d.Programs {
					label := p.Label
					if label == "" {
						label = "-"
					}
					fmt.Fprintf(w, "Program:\t%s\t%s\n", p.Address, label)
				}
				for _, ix := range d.Instructions {
					fmt.Fprintf(w, "Instruction:\t%s\t%s\n", ix.Type, ix.Program)
				}
				for _, b := range d.Balances {
					fmt.Fprintf(w, "Balance:\t%s\t%s -> %s\t%s\n", b.Address, b.Pre, b.Post, b.Change)
				}
			})
		},
	}
}

func marketCommand() *cli.Command {
	return &cli.Command{
		Name:  "market",
		Usage: "List the newest market pools",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"q"},
				Usage:   "Filter by pool, program or token address or label",
			},
		},
		Action: func(c *cli.Context) error {
			v, err := getViews(c)
			if err != nil {
				return err
			}

			page := v.Market(c.Context, c.String("search"))
			if err := output(c, page, func(w io.Writer) {
				writeSection(w, page.Pools, "POOL\tPROGRAM\tTOKEN 1\tTOKEN 2\tCREATED", func(w io.Writer, p views.PoolRow) {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Address, p.Program, p.Token1, p.Token2, p.Created)
				})
			}); err != nil {
				return err
			}

			if page.Pools.Err == "" && !c.Bool("json") && c.String("jq") == "" {
				fmt.Fprintf(c.App.ErrWriter, "\nShowing %d of %d pools\n", len(page.Pools.Rows), page.Total)
			}
			return failed(page.Pools.Err)
		},
	}
}

func chainCommand() *cli.Command {
	return &cli.Command{
		Name:  "chain",
		Usage: "Show network statistics",
		Action: func(c *cli.Context) error {
			v, err := getViews(c)
			if err != nil {
				return err
			}

			stats, errText := v.Chain(c.Context)
			if errText != "" {
				return errors.New(errText)
			}

			return output(c, stats, func(w io.Writer) {
				fmt.Fprintf(w, "Block height:\t%s\n", stats.BlockHeight)
				fmt.Fprintf(w, "Slot:\t%s\n", stats.Slot)
				fmt.Fprintf(w, "Epoch:\t%s\n", stats.Epoch)
				fmt.Fprintf(w, "Transactions:\t%s\n", stats.Transactions)
			})
		},
	}
}
