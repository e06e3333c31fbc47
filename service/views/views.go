// Package views turns explorer responses into page models shared by the HTML
// pages and the CLI: searched, sorted and formatted rows plus the error or
// empty-state text of every section.
package views

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/brojonat/soldungen/client"
	"github.com/brojonat/soldungen/service/fetch"
	"github.com/brojonat/soldungen/service/labels"
	"github.com/brojonat/soldungen/service/metrics"
)

// Error text shown per section when its call fails.
const (
	MsgBlocks            = "Failed to fetch block data"
	MsgTransactions      = "failed to fetch transaction data"
	MsgMarket            = "failed to fetch data"
	MsgTokenMeta         = "Failed to fetch token details"
	MsgHolders           = "Failed to fetch token holders"
	MsgTrendingTokens    = "Failed to fetch trending tokens"
	MsgTopTokens         = "Failed to fetch trending tokens by market cap"
	MsgNewestNFTs        = "Failed to fetch newest nft data"
	MsgCollections       = "Failed to fetch trending nft data"
	MsgCollectionItems   = "Failed to fetch collection items"
	MsgChainInfo         = "Failed to fetch chain info"
	MsgTransactionLookup = "Failed to fetch transaction"
	MsgEmptySignature    = "please enter a transaction signature"
	MsgInvalidAddress    = "invalid address"
)

// Empty-state text shown when a section loaded but has nothing to show.
const (
	EmptyBlocks          = "No block data available"
	EmptyTransactions    = "No transactions found"
	EmptyPools           = "No pools found"
	EmptyTokens          = "No tokens found"
	EmptyHolders         = "No holders found"
	EmptyCollections     = "No collections found"
	EmptyNFTs            = "No NFTs found"
	EmptyCollectionItems = "No NFTs found in this collection"
)

// Explorer is the subset of the API client the views depend on.
type Explorer interface {
	LastBlocks(ctx context.Context, limit int) ([]client.Block, error)
	LastTransactions(ctx context.Context, limit int) ([]client.Transaction, error)
	TransactionDetail(ctx context.Context, signature string) (*client.TransactionDetail, error)
	MarketPools(ctx context.Context) ([]client.Pool, error)
	TokenMeta(ctx context.Context, mint string) (*client.TokenMeta, error)
	TokenHolders(ctx context.Context, mint string) (*client.TokenHolders, error)
	TrendingTokens(ctx context.Context) ([]client.Token, error)
	TokensByMarketCap(ctx context.Context) ([]client.Token, error)
	NewestNFTs(ctx context.Context) ([]client.NFTItem, error)
	TrendingCollections(ctx context.Context) ([]client.NFTCollection, error)
	CollectionItems(ctx context.Context, collectionID string) ([]client.NFTItem, error)
	ChainInfo(ctx context.Context) (*client.ChainInfo, error)
}

// Section is the final state of one page section.
type Section[R any] struct {
	Err   string
	Empty string
	Rows  []R
}

// IsEmpty reports whether the section loaded fine but has no rows.
func (s Section[R]) IsEmpty() bool {
	return s.Err == "" && len(s.Rows) == 0
}

func section[T, R any](st fetch.State[T], empty string, rows []R) Section[R] {
	if st.Err != "" {
		return Section[R]{Err: st.Err, Empty: empty}
	}
	return Section[R]{Empty: empty, Rows: rows}
}

// Config wires a Views.
type Config struct {
	API     Explorer
	Labels  *labels.Registry
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// Now is used for relative times; defaults to time.Now.
	Now func() time.Time
}

// Views builds page models. Every page call creates fresh loaders, so no
// state is shared between pages or requests.
type Views struct {
	api     Explorer
	labels  *labels.Registry
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// New creates a Views.
func New(cfg Config) *Views {
	if cfg.Labels == nil {
		cfg.Labels = labels.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Views{
		api:     cfg.API,
		labels:  cfg.Labels,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		now:     cfg.Now,
	}
}

// Labels returns the label registry in use.
func (v *Views) Labels() *labels.Registry { return v.labels }

func newLoader[T any](v *Views, section, msg string, fn fetch.Func[T]) *fetch.Loader[T] {
	return fetch.New(fetch.Config{
		Section: section,
		Message: msg,
		Logger:  v.logger,
		Metrics: v.metrics,
	}, fn)
}

// ValidAddress reports whether s is a base58 Solana public key.
func ValidAddress(s string) bool {
	_, err := solana.PublicKeyFromBase58(s)
	return err == nil
}

// loadAll loads independent sections of one page together and releases them.
// Each section keeps its own error; a cancelled request is only logged.
func (v *Views) loadAll(ctx context.Context, sections ...fetch.Section) {
	g := fetch.NewGroup(sections...)
	defer g.Close()
	if err := g.Load(ctx); err != nil {
		v.logger.DebugContext(ctx, "page load cancelled", "sections", len(sections), "error", err)
	}
}
