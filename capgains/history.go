package capgains

import (
	"github.com/jgrant/capgains/util"
)

// ConsolidateHistory reduces a chronological operation history to the buy
// lots not yet fully sold. Each sell depletes its symbol's open lots
// oldest-first; sell amount beyond the available lots is silently dropped
// (this function does not validate oversell).
//
// Surviving lots are returned in the relative order their buy operations
// appeared in the input, keeping their original date and price with only
// the amount reduced. Fully consumed lots are omitted.
func ConsolidateHistory(history []Operation) []Operation {
	// Working copies of every buy, in input order. queues indexes the same
	// copies per symbol for FIFO depletion.
	lots := make([]*Operation, 0, len(history))
	queues := make(map[string][]*Operation)

	for i := range history {
		op := &history[i]
		switch op.Action {
		case BUY:
			lot := new(Operation)
			*lot = *op
			lots = append(lots, lot)
			queues[op.Symbol] = append(queues[op.Symbol], lot)
		case SELL:
			remaining := op.Amount
			for _, lot := range queues[op.Symbol] {
				if remaining <= 0 {
					break
				}
				sold := util.MinFloat64(remaining, lot.Amount)
				lot.Amount -= sold
				remaining -= sold
			}
		default:
			// ignored
		}
	}

	consolidated := make([]Operation, 0, len(lots))
	for _, lot := range lots {
		if lot.Amount > 0 {
			consolidated = append(consolidated, *lot)
		}
	}
	return consolidated
}
