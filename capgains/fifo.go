package capgains

import (
	"fmt"

	"github.com/jgrant/capgains/date"
	"github.com/jgrant/capgains/log"
	"github.com/jgrant/capgains/util"
)

const fifoTraceTag = "fifo"

// Residual sale amounts are rounded to this many decimal places before the
// oversell check, so float dust from partial matches never trips it.
const matchToleranceDecimals = 4

// InsufficientInventoryError indicates that a sale could not be fully
// matched against earlier purchases of the same symbol. The input history is
// inconsistent: either more units were sold than ever bought, or the
// operations were not supplied in chronological order.
type InsufficientInventoryError struct {
	Symbol    string
	Shortfall float64
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf(
		"Amount of sales for symbol %s exceeds the amount of buys by %v",
		e.Symbol, e.Shortfall)
}

// openLot is a working copy of a buy operation, depleted as sales match
// against it. The caller's operations are never mutated.
type openLot struct {
	Date      date.Date
	Price     float64
	Remaining float64
}

// CalculateFIFOCapitalGains computes the realized capital gains of every
// sell operation in operationHistory, matching each sale against the oldest
// not-yet-consumed purchases of the same symbol with a strictly earlier
// date. Lot depletion is shared across all sales in the call, so a lot
// partially consumed by an earlier sale is unavailable to a later one.
//
// operationHistory must be in non-decreasing date order for chronologically
// correct results; no re-sorting is performed here (see SortOperations).
//
// One CapitalGains entry is returned per sell operation, in the order the
// sells appear in the input. If a sale exceeds the matchable purchase
// amount, a *InsufficientInventoryError is returned and no entries are.
func CalculateFIFOCapitalGains(operationHistory []Operation) ([]CapitalGains, error) {
	lots := makeLotLedger(operationHistory)

	gains := make([]CapitalGains, 0, len(operationHistory))
	for i := range operationHistory {
		op := &operationHistory[i]
		if op.Action != SELL {
			continue
		}
		saleGains, err := matchSale(lots[op.Symbol], op)
		if err != nil {
			return nil, err
		}
		gains = append(gains, CapitalGains{Sale: *op, CapitalGains: saleGains})
	}
	return gains, nil
}

// makeLotLedger copies every buy operation into a per-symbol list of open
// lots, preserving input order within each symbol.
func makeLotLedger(operationHistory []Operation) map[string][]*openLot {
	lots := make(map[string][]*openLot)
	for i := range operationHistory {
		op := &operationHistory[i]
		if op.Action != BUY {
			continue
		}
		lots[op.Symbol] = append(lots[op.Symbol],
			&openLot{Date: op.Date, Price: op.Price, Remaining: op.Amount})
	}
	return lots
}

// matchSale consumes open lots dated strictly before the sale,
// oldest-appearing-first, and accrues the realized gains.
func matchSale(lots []*openLot, sale *Operation) (float64, error) {
	var saleGains float64 = 0.0
	remaining := sale.Amount

	for _, lot := range lots {
		if remaining <= 0 {
			break
		}
		if lot.Remaining <= 0 || !lot.Date.Before(sale.Date) {
			continue
		}
		matched := util.MinFloat64(remaining, lot.Remaining)
		lot.Remaining -= matched
		remaining -= matched
		saleGains += matched * (sale.Price - lot.Price)
		log.Tracef(fifoTraceTag, "%s sale on %s: matched %v units of lot from %s (%v left)",
			sale.Symbol, sale.Date, matched, lot.Date, lot.Remaining)
	}

	if util.RoundToDecimals(remaining, matchToleranceDecimals) > 0 {
		return 0.0, &InsufficientInventoryError{Symbol: sale.Symbol, Shortfall: remaining}
	}
	return saleGains, nil
}
