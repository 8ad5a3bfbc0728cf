package capgains

import (
	"math"

	"github.com/jgrant/capgains/log"
	"github.com/jgrant/capgains/util"
)

// CalculateSalesForNetWithdrawal determines which open lots to sell to
// obtain options.NetWithdrawal in cash after capital gains tax, and returns
// the resulting sell operations, at most one per symbol, sorted by
// (date, action, symbol).
//
// Lots are consumed in the order their purchases appear in history, not by
// date; to prioritize selling certain securities, place their purchases
// first. Lots dated on or after options.Date are not sellable. Losses are
// not taxed: a lot sold below cost nets exactly the sale price per unit.
//
// If the eligible lots cannot fund the full target, the achievable sales
// are returned as-is; under-withdrawal is a valid, silent outcome. A symbol
// missing from options.Prices yields NaN amounts rather than an error.
func CalculateSalesForNetWithdrawal(
	history []Operation, options NetSalesOptions) []Operation {

	sales := util.NewDefaultMap[string, *Operation](func(symbol string) *Operation {
		return &Operation{
			Symbol: symbol,
			Date:   options.Date,
			Action: SELL,
			Price:  priceOrNaN(options.Prices, symbol),
		}
	})

	consolidated := ConsolidateHistory(history)

	var currentWithdrawal float64 = 0.0
	for i := range consolidated {
		if !(currentWithdrawal < options.NetWithdrawal) {
			break
		}
		lot := &consolidated[i]
		if !lot.Date.Before(options.Date) {
			continue
		}

		price := priceOrNaN(options.Prices, lot.Symbol)
		gainPerUnit := price - lot.Price
		// Losses carry no tax; gains are reduced by the tax fraction.
		netPerUnit := util.Tern(gainPerUnit < 0,
			gainPerUnit, gainPerUnit*(1-options.CapitalGainsTax)) + lot.Price

		amount := util.MinFloat64(
			(options.NetWithdrawal-currentWithdrawal)/netPerUnit, lot.Amount)
		currentWithdrawal += amount * netPerUnit
		log.Tracef(netSalesTraceTag,
			"%s lot from %s: selling %v units netting %v/unit (%v of %v raised)",
			lot.Symbol, lot.Date, amount, netPerUnit,
			currentWithdrawal, options.NetWithdrawal)

		sales.Get(lot.Symbol).Amount += amount
	}

	merged := make([]Operation, 0, sales.Len())
	for _, sale := range sales.EjectMap() {
		merged = append(merged, *sale)
	}
	return SortOperations(merged)
}

const netSalesTraceTag = "netsales"

func priceOrNaN(prices map[string]float64, symbol string) float64 {
	if price, ok := prices[symbol]; ok {
		return price
	}
	return math.NaN()
}
