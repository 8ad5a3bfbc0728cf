package capgains_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	cg "github.com/jgrant/capgains/capgains"
	"github.com/jgrant/capgains/date"
)

const DefaultTestSymbol string = "STK1"

func mkDate(year uint32, month time.Month, day uint32) date.Date {
	return date.New(year, month, day)
}

// Test Operation. Expands to a full Operation with X(), defaulting the
// symbol and month for brevity in fixtures.
type TOp struct {
	Sym    string
	Year   uint32
	Month  time.Month
	Day    uint32
	Act    cg.OpAction
	Amount float64
	Price  float64
}

// eXpand to full type.
func (t TOp) X() cg.Operation {
	symbol := t.Sym
	if symbol == "" {
		symbol = DefaultTestSymbol
	}
	month := t.Month
	if month == time.Month(0) {
		month = time.January
	}
	return cg.Operation{
		Symbol: symbol,
		Date:   mkDate(t.Year, month, t.Day),
		Action: t.Act,
		Amount: t.Amount,
		Price:  t.Price,
	}
}

func mkOps(tops ...TOp) []cg.Operation {
	ops := make([]cg.Operation, 0, len(tops))
	for _, top := range tops {
		ops = append(ops, top.X())
	}
	return ops
}

// Use this instead of require.New when comparing types holding date.Date,
// so diffs render dates rather than their internals.
type CustomRequire struct {
	t       *testing.T
	options cmp.Options // This is a []Option
}

func NewCustomRequire(t *testing.T) *CustomRequire {
	return &CustomRequire{t, []cmp.Option{
		cmp.Comparer(func(a, b date.Date) bool { return a.Equal(b) }),
	}}
}

func (rq *CustomRequire) Equal(expected, actual interface{}) {
	diff := cmp.Diff(expected, actual, rq.options)
	require.True(rq.t, diff == "", diff)
}
