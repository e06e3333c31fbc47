package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/brojonat/soldungen/service/views"
)

const tokenHeader = "#\tTOKEN\tSYMBOL\tPRICE\tMARKET CAP\t24H\tHOLDERS"

func writeTokenRow(w io.Writer, t views.TokenRow) {
	fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", t.Rank, t.Name, t.Symbol, t.Price, t.MarketCap, t.Change, t.Holders)
}

func trendingTokensCommand() *cli.Command {
	return &cli.Command{
		Name:  "trending",
		Usage: "List trending tokens",
		Action: func(c *cli.Context) error {
			v, err := getViews(c)
			if err != nil {
				return err
			}

			tokens := v.TrendingTokens(c.Context)
			if err := output(c, tokens, func(w io.Writer) {
				writeSection(w, tokens, tokenHeader, writeTokenRow)
			}); err != nil {
				return err
			}
			return failed(tokens.Err)
		},
	}
}

func topTokensCommand() *cli.Command {
	return &cli.Command{
		Name:  "top",
		Usage: "List tokens by market cap",
		Action: func(c *cli.Context) error {
			v, err := getViews(c)
			if err != nil {
				return err
			}

			tokens := v.TopTokens(c.Context)
			if err := output(c, tokens, func(w io.Writer) {
				writeSection(w, tokens, tokenHeader, writeTokenRow)
			}); err != nil {
				return err
			}
			return failed(tokens.Err)
		},
	}
}

func writeHolders(w io.Writer, total string, s views.Section[views.HolderRow]) {
	writeSection(w, s, "RANK\tACCOUNT\tOWNER\tAMOUNT", func(w io.Writer, h views.HolderRow) {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", h.Rank, h.Address, h.Owner, h.Amount)
	})
	if total != "" {
		fmt.Fprintf(w, "\nTotal holders:\t%s\n", total)
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:      "token",
		Usage:     "Show a token's details and top holders",
		ArgsUsage: "MINT",
		Action: func(c *cli.Context) error {
			mint, err := requireArg(c, "token mint address")
			if err != nil {
				return err
			}
			v, err := getViews(c)
			if err != nil {
				return err
			}

			page := v.Token(c.Context, mint)
			if page.Invalid != "" {
				return fmt.Errorf("%s: %s", page.Invalid, mint)
			}

			if err := output(c, page, func(w io.Writer) {
				if page.MetaErr != "" {
					fmt.Fprintf(w, "error: %s\n", page.MetaErr)
				}
				if d := page.Detail; d != nil {
					fmt.Fprintf(w, "Name:\t%s (%s)\n", d.Name, d.Symbol)
					fmt.Fprintf(w, "Address:\t%s\n", d.Address)
					fmt.Fprintf(w, "Price:\t%s\n", d.Price)
					fmt.Fprintf(w, "24h change:\t%s\n", d.Change)
					fmt.Fprintf(w, "24h volume:\t%s\n", d.Volume24h)
					fmt.Fprintf(w, "Market cap:\t%s (rank %s)\n", d.MarketCap, d.MarketCapRank)
					fmt.Fprintf(w, "Supply:\t%s\n", d.Supply)
					fmt.Fprintf(w, "Decimals:\t%s\n", d.Decimals)
					fmt.Fprintf(w, "Holders:\t%s\n", d.Holders)
					fmt.Fprintf(w, "Mint authority:\t%s\n", d.MintAuthority)
					fmt.Fprintf(w, "Freeze authority:\t%s\n", d.FreezeAuthority)
					fmt.Fprintf(w, "First mint:\t%s\n", d.FirstMint)
					fmt.Fprintln(w)
				}
				writeHolders(w, page.Total, page.Holders)
			}); err != nil {
				return err
			}
			return failed(page.MetaErr, page.Holders.Err)
		},
	}
}

func holdersCommand() *cli.Command {
	return &cli.Command{
		Name:      "holders",
		Usage:     "List a token's largest holders",
		ArgsUsage: "MINT",
		Action: func(c *cli.Context) error {
			mint, err := requireArg(c, "token mint address")
			if err != nil {
				return err
			}
			v, err := getViews(c)
			if err != nil {
				return err
			}

			page := v.Holders(c.Context, mint)
			if page.Invalid != "" {
				return fmt.Errorf("%s: %s", page.Invalid, mint)
			}

			if err := output(c, page, func(w io.Writer) {
				writeHolders(w, page.Total, page.Holders)
			}); err != nil {
				return err
			}
			return failed(page.Holders.Err)
		},
	}
}
