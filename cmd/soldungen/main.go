package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/brojonat/soldungen/client"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "soldungen",
		Usage: "Solana explorer in the terminal",
		Description: `Browse blocks, transactions, market pools, tokens and NFT collections
from the Solscan API.

Every command prints a table; use --json for the underlying rows and --jq to
filter them.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Commands: []*cli.Command{
			blocksCommand(),
			transactionsCommand(),
			transactionCommand(),
			marketCommand(),
			{
				Name:  "tokens",
				Usage: "Token rankings",
				Subcommands: []*cli.Command{
					trendingTokensCommand(),
					topTokensCommand(),
				},
			},
			tokenCommand(),
			holdersCommand(),
			{
				Name:  "nfts",
				Usage: "NFT collections and items",
				Subcommands: []*cli.Command{
					collectionsCommand(),
					newestNFTsCommand(),
					collectionItemsCommand(),
				},
			},
			chainCommand(),
			// Server utility commands
			{
				Name:  "server",
				Usage: "Server utility commands",
				Subcommands: []*cli.Command{
					healthCommand(),
					versionCommand(),
				},
			},
		},
		// Global flags available to all commands
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Solscan pro API key",
				EnvVars: []string{"SOLSCAN_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Solscan pro API base URL",
				EnvVars: []string{"SOLSCAN_BASE_URL"},
				Value:   client.DefaultBaseURL,
			},
			&cli.StringFlag{
				Name:    "public-base-url",
				Usage:   "Solscan public API base URL",
				EnvVars: []string{"SOLSCAN_PUBLIC_BASE_URL"},
				Value:   client.DefaultPublicBaseURL,
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Explorer request timeout",
				EnvVars: []string{"HTTP_TIMEOUT"},
				Value:   30 * time.Second,
			},
			&cli.StringFlag{
				Name:    "aliases",
				Usage:   "YAML file with extra address labels",
				EnvVars: []string{"ALIASES_FILE"},
			},
			&cli.StringFlag{
				Name:    "server-url",
				Usage:   "Server URL for health checks",
				EnvVars: []string{"SERVER_URL"},
				Value:   "http://localhost:8080",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "warn",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output in JSON format",
			},
			&cli.StringFlag{
				Name:  "jq",
				Usage: "jq filter applied to the JSON output (implies --json)",
			},
		},
	}
}
