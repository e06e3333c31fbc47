package views

import (
	"context"
	"strings"

	"github.com/brojonat/soldungen/client"
	"github.com/brojonat/soldungen/service/fetch"
	"github.com/brojonat/soldungen/service/format"
)

// TransactionRow is a display row of the recent transactions table.
type TransactionRow struct {
	Signature    string
	ShortSig     string
	Signer       string
	ShortSigner  string
	Slot         string
	Fee          string
	Status       string
	Success      bool
	Program      string
	ProgramID    string
	Instructions []string
	Time         string
	Relative     string
}

func (v *Views) transactionRows(txns []client.Transaction) []TransactionRow {
	now := v.now()
	rows := make([]TransactionRow, 0, len(txns))
	for _, tx := range txns {
		row := TransactionRow{
			Signature: tx.TxHash,
			ShortSig:  format.Truncate(tx.TxHash, 10),
			Slot:      format.Int(tx.Slot),
			Fee:       format.Number(format.Lamports(tx.Fee), 9) + " SOL",
			Status:    tx.Status,
			Success:   strings.EqualFold(tx.Status, "success"),
			Time:      format.Timestamp(tx.BlockTime, now),
			Relative:  format.Relative(format.Unix(tx.BlockTime), now),
		}
		if len(tx.Signer) > 0 {
			row.Signer = tx.Signer[0]
			row.ShortSigner = format.ShortAddress(tx.Signer[0], 4)
		}
		if len(tx.ProgramIDs) > 0 {
			row.ProgramID = tx.ProgramIDs[0]
			row.Program = v.labels.Name(tx.ProgramIDs[0])
			if row.Program == "" {
				row.Program = format.Truncate(tx.ProgramIDs[0], 10)
			}
		}
		for _, ix := range tx.ParsedInstructions {
			row.Instructions = append(row.Instructions, ix.Type)
		}
		rows = append(rows, row)
	}
	return rows
}

// Labeled is an address with its label, if any.
type Labeled struct {
	Address string
	Label   string
}

// InstructionRow is one decoded instruction.
type InstructionRow struct {
	Type    string
	Program string
}

// BalanceRow is one SOL balance change.
type BalanceRow struct {
	Address  string
	Pre      string
	Post     string
	Change   string
	Positive bool
}

// TransactionDetailView is the decoded detail of one transaction.
type TransactionDetailView struct {
	Signature    string
	Status       string
	Block        string
	Fee          string
	Time         string
	Signers      []string
	Programs     []Labeled
	Instructions []InstructionRow
	Balances     []BalanceRow
}

func (v *Views) transactionDetail(d *client.TransactionDetail) *TransactionDetailView {
	out := &TransactionDetailView{
		Signature: d.TxHash,
		Status:    d.TxStatus,
		Block:     format.Int(d.BlockID),
		Fee:       format.Number(format.Lamports(d.Fee), 9) + " SOL",
		Time:      format.Timestamp(d.BlockTime, v.now()),
		Signers:   d.Signer,
	}
	for _, p := range d.ProgramsInvolved {
		out.Programs = append(out.Programs, Labeled{Address: p, Label: v.labels.Name(p)})
	}
	for _, ix := range d.ParsedInstructions {
		prog := ix.Program
		if prog == "" {
			prog = v.labels.Display(ix.ProgramID)
		}
		out.Instructions = append(out.Instructions, InstructionRow{Type: ix.Type, Program: prog})
	}
	for _, b := range d.SolBalanceChanges {
		change := b.ChangeAmount.Shift(-9)
		out.Balances = append(out.Balances, BalanceRow{
			Address:  b.Address,
			Pre:      format.Number(b.PreBalance.Shift(-9), 9),
			Post:     format.Number(b.PostBalance.Shift(-9), 9),
			Change:   format.Number(change, 9),
			Positive: change.IsPositive(),
		})
	}
	return out
}

// LookupResult is the outcome of a manual transaction lookup.
type LookupResult struct {
	Signature string
	Detail    *TransactionDetailView
	Err       string
}

func newLookupLoader(v *Views, sig string) *fetch.Loader[*client.TransactionDetail] {
	return fetch.New(fetch.Config{
		Section:  "transaction_lookup",
		Message:  MsgTransactionLookup,
		Describe: func(err error) string { return client.Message(err, "") },
		Logger:   v.logger,
		Metrics:  v.metrics,
	}, func(ctx context.Context) (*client.TransactionDetail, error) {
		return v.api.TransactionDetail(ctx, sig)
	})
}

func (v *Views) lookupResult(sig string, st fetch.State[*client.TransactionDetail]) LookupResult {
	res := LookupResult{Signature: sig, Err: st.Err}
	if st.Data != nil {
		res.Detail = v.transactionDetail(st.Data)
	}
	return res
}

// Lookup fetches one transaction on demand. Blank input is rejected without
// calling out. Errors carry the explorer's own message when it sent one.
func (v *Views) Lookup(ctx context.Context, input string) LookupResult {
	sig := strings.TrimSpace(input)
	if sig == "" {
		return LookupResult{Err: MsgEmptySignature}
	}

	l := newLookupLoader(v, sig)
	defer l.Close()
	return v.lookupResult(sig, l.Load(ctx))
}

// TransactionsPage is the recent transactions page with an optional lookup.
type TransactionsPage struct {
	Recent Section[TransactionRow]
	Lookup *LookupResult
}

// Transactions loads recent transactions. A non-nil lookup runs a manual
// lookup of that signature alongside; nil means no lookup was requested.
func (v *Views) Transactions(ctx context.Context, lookup *string) TransactionsPage {
	var page TransactionsPage

	recent := newLoader(v, "transactions", MsgTransactions, func(ctx context.Context) ([]client.Transaction, error) {
		return v.api.LastTransactions(ctx, client.DefaultTransactionLimit)
	})
	sections := []fetch.Section{recent}

	var sig string
	var lookupLoader *fetch.Loader[*client.TransactionDetail]
	if lookup != nil {
		sig = strings.TrimSpace(*lookup)
		if sig == "" {
			page.Lookup = &LookupResult{Err: MsgEmptySignature}
		} else {
			lookupLoader = newLookupLoader(v, sig)
			sections = append(sections, lookupLoader)
		}
	}

	v.loadAll(ctx, sections...)

	st := recent.State()
	page.Recent = section(st, EmptyTransactions, v.transactionRows(st.Data))
	if lookupLoader != nil {
		res := v.lookupResult(sig, lookupLoader.State())
		page.Lookup = &res
	}
	return page
}
