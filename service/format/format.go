// Package format holds every display rule used by the pages and the CLI.
//
// Amounts arrive from the explorer in base units and are converted here
// exactly, with shopspring/decimal, so no float rounding leaks into what the
// user sees.
package format

import (
	"math/big"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// NotAvailable is shown in place of missing values.
const NotAvailable = "N/A"

// UnknownTime is shown when a timestamp is missing or cannot be parsed.
const UnknownTime = "Unknown time"

var lamportsPerSOL = decimal.NewFromBigInt(new(big.Int).SetUint64(solana.LAMPORTS_PER_SOL), 0)

// Truncate keeps the first and last n/2 characters of s joined by "...".
// Strings of at most n characters are returned unchanged.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	half := n / 2
	return s[:half] + "..." + s[len(s)-half:]
}

// ShortAddress keeps the first and last n characters of an address.
func ShortAddress(s string, n int) string {
	if s == "" {
		return NotAvailable
	}
	if len(s) <= 2*n {
		return s
	}
	return s[:n] + "..." + s[len(s)-n:]
}

// Amount converts raw token units to whole tokens: raw / 10^decimals.
func Amount(raw decimal.Decimal, decimals int32) decimal.Decimal {
	return raw.Shift(-decimals)
}

// Lamports converts lamports to SOL.
func Lamports(raw uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), 0).Div(lamportsPerSOL)
}

// SOL renders lamports as SOL with a fixed number of decimals.
func SOL(raw uint64, places int32) string {
	return Fixed(Lamports(raw), places) + " SOL"
}

// Price renders a lamport price as SOL with four decimals.
func Price(raw decimal.Decimal) string {
	return Fixed(raw.Div(lamportsPerSOL), 4)
}

// Number renders d with thousands separators and at most maxFrac fraction
// digits. Halves round away from zero and trailing zeros are dropped.
func Number(d decimal.Decimal, maxFrac int32) string {
	r := d.Round(maxFrac)
	neg := r.IsNegative()

	intPart, frac, _ := strings.Cut(r.Abs().String(), ".")
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return r.String()
	}

	out := humanize.BigComma(n)
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Grouped is Number for values the explorer sends as floats.
func Grouped(v float64, maxFrac int32) string {
	return Number(decimal.NewFromFloat(v), maxFrac)
}

// Int renders an integer with thousands separators.
// Non-negative values go through big.Int so uint64 above MaxInt64 stays exact.
func Int[T ~int | ~int32 | ~int64 | ~uint32 | ~uint64](v T) string {
	if v >= 0 {
		return humanize.BigComma(new(big.Int).SetUint64(uint64(v)))
	}
	return humanize.Comma(int64(v))
}

// Fixed renders d with exactly places fraction digits.
func Fixed(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}

// Float is Fixed for values the explorer already sends as floats.
func Float(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Compact abbreviates large values with B, M or K suffixes and two decimals.
func Compact(v float64) string {
	switch {
	case v >= 1e9:
		return Float(v/1e9, 2) + "B"
	case v >= 1e6:
		return Float(v/1e6, 2) + "M"
	case v >= 1e3:
		return Float(v/1e3, 2) + "K"
	}
	return decimal.NewFromFloat(v).String()
}

// CompactDecimal is Compact for exact amounts such as token supplies.
func CompactDecimal(d decimal.Decimal) string {
	v, _ := d.Float64()
	return Compact(v)
}

// Percent parses "12.5%" or "12.5" into 12.5. Unparsable input yields 0.
func Percent(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	v, _ := d.Float64()
	return v
}

// Relative renders t relative to now, e.g. "3 minutes ago".
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return UnknownTime
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// RelativeString parses an RFC 3339 timestamp and renders it relative to now.
func RelativeString(s string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return UnknownTime
	}
	return Relative(t, now)
}

// Unix converts seconds since the epoch to a UTC time; zero stays zero.
func Unix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// Timestamp renders a unix time as an absolute UTC stamp followed by the
// relative part.
func Timestamp(sec int64, now time.Time) string {
	if sec == 0 {
		return NotAvailable
	}
	t := Unix(sec)
	return t.Format("2006-01-02 15:04:05 UTC") + " (" + Relative(t, now) + ")"
}

// Royalty renders basis points as a percentage.
func Royalty(bps int) string {
	return Number(decimal.New(int64(bps), -2), 2) + "%"
}
