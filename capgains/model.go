package capgains

import (
	"sort"

	"github.com/jgrant/capgains/date"
)

type OpAction int

const (
	NO_ACTION OpAction = iota
	BUY
	SELL
)

func (a OpAction) String() string {
	var str string
	switch a {
	case BUY:
		str = "Buy"
	case SELL:
		str = "Sell"
	default:
		str = "*INVALID ACTION*"
	}
	return str
}

// Operation is a single trade of a security: a purchase or sale of some
// amount of units at a unit price, on a date.
type Operation struct {
	Symbol string
	Date   date.Date
	Action OpAction
	Amount float64
	Price  float64
}

// CapitalGains pairs a sell operation with the gains (or losses, if
// negative) it realized.
type CapitalGains struct {
	Sale         Operation
	CapitalGains float64
}

// NetSalesOptions configures CalculateSalesForNetWithdrawal.
type NetSalesOptions struct {
	// Net amount to withdraw, after capital gains tax.
	NetWithdrawal float64
	// Tax applied to capital gains obtained from selling securities.
	// A fraction in [0, 1].
	CapitalGainsTax float64
	// Date of the selling operation(s).
	Date date.Date
	// Security prices at the time of sale, by symbol.
	Prices map[string]float64
}

// opLessThan orders operations by date, then action, then symbol.
func opLessThan(a, b *Operation) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.Action != b.Action {
		return a.Action < b.Action
	}
	return a.Symbol < b.Symbol
}

// SortOperations sorts ops in place, chronologically, with action and then
// symbol breaking date ties. Returns ops for convenience.
func SortOperations(ops []Operation) []Operation {
	sort.SliceStable(ops, func(i, j int) bool {
		return opLessThan(&ops[i], &ops[j])
	})
	return ops
}
