package views

import (
	"context"
	"sync"
	"time"

	"github.com/brojonat/soldungen/client"
)

// fakeExplorer serves canned responses and counts calls per method.
type fakeExplorer struct {
	mu    sync.Mutex
	calls map[string]int

	blocks      []client.Block
	txns        []client.Transaction
	detail      *client.TransactionDetail
	pools       []client.Pool
	meta        *client.TokenMeta
	holders     *client.TokenHolders
	trending    []client.Token
	top         []client.Token
	newest      []client.NFTItem
	collections []client.NFTCollection
	items       []client.NFTItem
	chain       *client.ChainInfo

	errs map[string]error
}

func newFake() *fakeExplorer {
	return &fakeExplorer{calls: map[string]int{}, errs: map[string]error{}}
}

func (f *fakeExplorer) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.errs[name]
}

func (f *fakeExplorer) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeExplorer) LastBlocks(ctx context.Context, limit int) ([]client.Block, error) {
	if err := f.hit("blocks"); err != nil {
		return nil, err
	}
	return f.blocks, nil
}

func (f *fakeExplorer) LastTransactions(ctx context.Context, limit int) ([]client.Transaction, error) {
	if err := f.hit("txns"); err != nil {
		return nil, err
	}
	return f.txns, nil
}

func (f *fakeExplorer) TransactionDetail(ctx context.Context, sig string) (*client.TransactionDetail, error) {
	if err := f.hit("detail"); err != nil {
		return nil, err
	}
	return f.detail, nil
}

func (f *fakeExplorer) MarketPools(ctx context.Context) ([]client.Pool, error) {
	if err := f.hit("pools"); err != nil {
		return nil, err
	}
	return f.pools, nil
}

func (f *fakeExplorer) TokenMeta(ctx context.Context, mint string) (*client.TokenMeta, error) {
	if err := f.hit("meta"); err != nil {
		return nil, err
	}
	return f.meta, nil
}

func (f *fakeExplorer) TokenHolders(ctx context.Context, mint string) (*client.TokenHolders, error) {
	if err := f.hit("holders"); err != nil {
		return nil, err
	}
	return f.holders, nil
}

func (f *fakeExplorer) TrendingTokens(ctx context.Context) ([]client.Token, error) {
	if err := f.hit("trending"); err != nil {
		return nil, err
	}
	return f.trending, nil
}

func (f *fakeExplorer) TokensByMarketCap(ctx context.Context) ([]client.Token, error) {
	if err := f.hit("top"); err != nil {
		return nil, err
	}
	return f.top, nil
}

func (f *fakeExplorer) NewestNFTs(ctx context.Context) ([]client.NFTItem, error) {
	if err := f.hit("newest"); err != nil {
		return nil, err
	}
	return f.newest, nil
}

func (f *fakeExplorer) TrendingCollections(ctx context.Context) ([]client.NFTCollection, error) {
	if err := f.hit("collections"); err != nil {
		return nil, err
	}
	return f.collections, nil
}

func (f *fakeExplorer) CollectionItems(ctx context.Context, id string) ([]client.NFTItem, error) {
	if err := f.hit("items"); err != nil {
		return nil, err
	}
	return f.items, nil
}

func (f *fakeExplorer) ChainInfo(ctx context.Context) (*client.ChainInfo, error) {
	if err := f.hit("chain"); err != nil {
		return nil, err
	}
	return f.chain, nil
}

var fixedNow = time.Date(2024, 6, 10, 6, 16, 20, 0, time.UTC)

func newTestViews(api Explorer) *Views {
	return New(Config{API: api, Now: func() time.Time { return fixedNow }})
}
