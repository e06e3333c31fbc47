// Package labels maps well-known Solana addresses to readable names.
package labels

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"
)

// Kind classifies a labeled address.
type Kind string

const (
	KindProgram     Kind = "program"
	KindToken       Kind = "token"
	KindMarketplace Kind = "marketplace"
)

// Entry is one labeled address.
type Entry struct {
	Address string
	Name    string
	Kind    Kind
}

// Registry resolves addresses to names. It is read-only once built and safe
// for concurrent use.
type Registry struct {
	entries map[string]Entry
}

var (
	raydiumAMMv4  = solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	raydiumCLMM   = solana.MustPublicKeyFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK")
	orcaWhirlpool = solana.MustPublicKeyFromBase58("whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc")
	meteoraDLMM   = solana.MustPublicKeyFromBase58("LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo")
	pumpFun       = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	computeBudget = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")

	usdcMint = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	usdtMint = solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
	bonkMint = solana.MustPublicKeyFromBase58("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263")
	jupMint  = solana.MustPublicKeyFromBase58("JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN")

	magicEdenMMM = solana.MustPublicKeyFromBase58("mmm3XBJg5gk8XJxEKBvdgptZz6SgK4tXvn36sodowMc")
	magicEdenV2  = solana.MustPublicKeyFromBase58("M2mx93ekt1fmXSVkTrUL9xVFHkmME8HTUi5Cyc5aF7K")
	tensorSwap   = solana.MustPublicKeyFromBase58("TSWAPaqyCSx2KABk68Shruf4rp7CxcNi8hAsbdwmHbN")
	hadeSwap     = solana.MustPublicKeyFromBase58("hadeK9DLv9eA7ya5KCTqSvSvRZeJC3JgD5a9Y3CNbvu")
	solanart     = solana.MustPublicKeyFromBase58("CJsLwbP1iu5DuUikHEJnLfANgKy6stB2uFgvBBHoyxwz")
)

func defaults() []Entry {
	program := func(pk solana.PublicKey, name string) Entry {
		return Entry{Address: pk.String(), Name: name, Kind: KindProgram}
	}
	token := func(pk solana.PublicKey, name string) Entry {
		return Entry{Address: pk.String(), Name: name, Kind: KindToken}
	}
	market := func(pk solana.PublicKey, name string) Entry {
		return Entry{Address: pk.String(), Name: name, Kind: KindMarketplace}
	}

	return []Entry{
		program(solana.SystemProgramID, "System Program"),
		program(solana.TokenProgramID, "Token Program"),
		program(solana.Token2022ProgramID, "Token-2022 Program"),
		program(solana.SPLAssociatedTokenAccountProgramID, "Associated Token Program"),
		program(solana.MemoProgramID, "Memo Program"),
		program(computeBudget, "Compute Budget"),
		program(solana.TokenMetadataProgramID, "Token Metadata"),
		program(raydiumAMMv4, "Raydium AMM v4"),
		program(raydiumCLMM, "Raydium CLMM"),
		program(orcaWhirlpool, "Orca Whirlpool"),
		program(meteoraDLMM, "Meteora DLMM"),
		program(pumpFun, "Pump.fun"),

		token(solana.WrappedSol, "SOL"),
		token(usdcMint, "USDC"),
		token(usdtMint, "USDT"),
		token(bonkMint, "BONK"),
		token(jupMint, "JUP"),

		market(magicEdenMMM, "Magic Eden"),
		market(magicEdenV2, "Magic Eden"),
		market(tensorSwap, "Tensor"),
		market(hadeSwap, "Hade Swap"),
		market(solanart, "Solanart"),
	}
}

// New builds a registry from the built-in labels plus extra entries.
// Extra entries override built-ins with the same address.
func New(extra ...Entry) *Registry {
	r := &Registry{entries: make(map[string]Entry)}
	for _, e := range defaults() {
		r.entries[e.Address] = e
	}
	for _, e := range extra {
		r.entries[e.Address] = e
	}
	return r
}

// fileFormat is the layout of an aliases file:
//
//	programs:
//	  <address>: <name>
//	tokens:
//	  <address>: <name>
//	marketplaces:
//	  <address>: <name>
type fileFormat struct {
	Programs     map[string]string `yaml:"programs"`
	Tokens       map[string]string `yaml:"tokens"`
	Marketplaces map[string]string `yaml:"marketplaces"`
}

// Load builds a registry from the built-ins extended by a YAML aliases file.
// An empty path yields the built-ins only.
func Load(path string) (*Registry, error) {
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read aliases file: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse aliases file: %w", err)
	}

	var extra []Entry
	var errs []string
	add := func(m map[string]string, kind Kind) {
		for addr, name := range m {
			pk, err := solana.PublicKeyFromBase58(addr)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: invalid address %q", kind, addr))
				continue
			}
			extra = append(extra, Entry{Address: pk.String(), Name: name, Kind: kind})
		}
	}
	add(f.Programs, KindProgram)
	add(f.Tokens, KindToken)
	add(f.Marketplaces, KindMarketplace)

	if len(errs) > 0 {
		sort.Strings(errs)
		return nil, fmt.Errorf("aliases file %s: %s", path, strings.Join(errs, "; "))
	}
	return New(extra...), nil
}

// Lookup returns the entry for addr.
func (r *Registry) Lookup(addr string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	e, ok := r.entries[addr]
	return e, ok
}

// Name returns the label for addr, or "" when there is none.
func (r *Registry) Name(addr string) string {
	e, _ := r.Lookup(addr)
	return e.Name
}

// Display returns the label for addr or addr itself.
func (r *Registry) Display(addr string) string {
	if name := r.Name(addr); name != "" {
		return name
	}
	return addr
}

// Marketplace names an NFT marketplace program. Unknown ids are shortened to
// their first eight characters.
func (r *Registry) Marketplace(id string) string {
	if e, ok := r.Lookup(id); ok && e.Kind == KindMarketplace {
		return e.Name
	}
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

// Len reports the number of labeled addresses.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}
