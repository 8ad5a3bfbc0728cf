package capgains_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cg "github.com/jgrant/capgains/capgains"
)

func TestNetWithdrawalWithOnlyPurchases(t *testing.T) {
	rq := require.New(t)

	history := mkOps(
		TOp{Year: 2020, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 100},
		TOp{Year: 2021, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 200},
	)
	options := cg.NetSalesOptions{
		NetWithdrawal:   4000,
		CapitalGainsTax: 0.5,
		Date:            mkDate(2022, time.January, 1),
		Prices:          map[string]float64{"STK1": 300},
	}

	// The 100-cost lot nets 200/unit, the 200-cost lot 250/unit: 10 units
	// of the first plus 8 of the second.
	rq.Equal(mkOps(
		TOp{Year: 2022, Month: time.January, Day: 1, Act: cg.SELL, Amount: 18, Price: 300},
	), cg.CalculateSalesForNetWithdrawal(history, options))
}

func TestNetWithdrawalWithPurchasesAndSales(t *testing.T) {
	rq := require.New(t)

	history := mkOps(
		TOp{Year: 2020, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 100},
		TOp{Year: 2020, Month: time.June, Day: 1, Act: cg.SELL, Amount: 5, Price: 100},
		TOp{Year: 2021, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 200},
	)
	options := cg.NetSalesOptions{
		NetWithdrawal:   3000,
		CapitalGainsTax: 0.5,
		Date:            mkDate(2022, time.January, 1),
		Prices:          map[string]float64{"STK1": 300},
	}

	rq.Equal(mkOps(
		TOp{Year: 2022, Month: time.January, Day: 1, Act: cg.SELL, Amount: 13, Price: 300},
	), cg.CalculateSalesForNetWithdrawal(history, options))
}

func TestNetWithdrawalWithInsufficientLots(t *testing.T) {
	rq := require.New(t)

	history := mkOps(
		TOp{Year: 2020, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 100},
	)
	options := cg.NetSalesOptions{
		NetWithdrawal:   2000,
		CapitalGainsTax: 0.5,
		Date:            mkDate(2020, time.March, 1),
		Prices:          map[string]float64{"STK1": 200},
	}

	// Everything available gets sold; the shortfall is silent.
	rq.Equal(mkOps(
		TOp{Year: 2020, Month: time.March, Day: 1, Act: cg.SELL, Amount: 10, Price: 200},
	), cg.CalculateSalesForNetWithdrawal(history, options))
}

func TestNetWithdrawalLossesAreNotTaxed(t *testing.T) {
	rq := require.New(t)

	history := mkOps(
		TOp{Year: 2020, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 100},
	)
	options := cg.NetSalesOptions{
		NetWithdrawal:   400,
		CapitalGainsTax: 0.5,
		Date:            mkDate(2020, time.March, 1),
		Prices:          map[string]float64{"STK1": 50},
	}

	// A loss nets exactly the sale price: 400 / 50 = 8 units.
	rq.Equal(mkOps(
		TOp{Year: 2020, Month: time.March, Day: 1, Act: cg.SELL, Amount: 8, Price: 50},
	), cg.CalculateSalesForNetWithdrawal(history, options))
}

func TestNetWithdrawalWithMultipleSymbols(t *testing.T) {
	rq := require.New(t)

	history := mkOps(
		TOp{Year: 2020, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 100},
		TOp{Sym: "STK2", Year: 2021, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 200},
		TOp{Year: 2021, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 200},
	)
	options := cg.NetSalesOptions{
		NetWithdrawal:   4000,
		CapitalGainsTax: 0.5,
		Date:            mkDate(2022, time.January, 1),
		Prices:          map[string]float64{"STK1": 300, "STK2": 600},
	}

	// Results come out sorted by symbol (date and action are constant).
	rq.Equal(mkOps(
		TOp{Year: 2022, Month: time.January, Day: 1, Act: cg.SELL, Amount: 10, Price: 300},
		TOp{Sym: "STK2", Year: 2022, Month: time.January, Day: 1, Act: cg.SELL, Amount: 5, Price: 600},
	), cg.CalculateSalesForNetWithdrawal(history, options))
}

func TestNetWithdrawalIgnoresFuturePurchases(t *testing.T) {
	rq := require.New(t)

	history := mkOps(
		TOp{Year: 2020, Month: time.January, Day: 1, Act: cg.BUY, Amount: 5, Price: 100},
		TOp{Year: 2021, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 200},
	)
	options := cg.NetSalesOptions{
		NetWithdrawal:   3000,
		CapitalGainsTax: 0.5,
		Date:            mkDate(2020, time.March, 1),
		Prices:          map[string]float64{"STK1": 300},
	}

	rq.Equal(mkOps(
		TOp{Year: 2020, Month: time.March, Day: 1, Act: cg.SELL, Amount: 5, Price: 300},
	), cg.CalculateSalesForNetWithdrawal(history, options))
}

func TestNetWithdrawalMergesSalesPerSymbol(t *testing.T) {
	rq := require.New(t)

	// Two surviving lots of the same symbol produce a single merged sale.
	history := mkOps(
		TOp{Year: 2020, Month: time.January, Day: 1, Act: cg.BUY, Amount: 2, Price: 100},
		TOp{Year: 2021, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 100},
	)
	options := cg.NetSalesOptions{
		NetWithdrawal:   1000,
		CapitalGainsTax: 0.0,
		Date:            mkDate(2022, time.January, 1),
		Prices:          map[string]float64{"STK1": 200},
	}

	sales := cg.CalculateSalesForNetWithdrawal(history, options)
	rq.Equal(mkOps(
		TOp{Year: 2022, Month: time.January, Day: 1, Act: cg.SELL, Amount: 5, Price: 200},
	), sales)
}

func TestNetWithdrawalZeroTargetSellsNothing(t *testing.T) {
	rq := require.New(t)

	history := mkOps(
		TOp{Year: 2020, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 100},
	)
	options := cg.NetSalesOptions{
		NetWithdrawal:   0,
		CapitalGainsTax: 0.5,
		Date:            mkDate(2021, time.January, 1),
		Prices:          map[string]float64{"STK1": 200},
	}

	rq.Empty(cg.CalculateSalesForNetWithdrawal(history, options))
}

func TestNetWithdrawalMissingPriceYieldsNaN(t *testing.T) {
	rq := require.New(t)

	history := mkOps(
		TOp{Year: 2020, Month: time.January, Day: 1, Act: cg.BUY, Amount: 10, Price: 100},
	)
	options := cg.NetSalesOptions{
		NetWithdrawal:   1000,
		CapitalGainsTax: 0.5,
		Date:            mkDate(2021, time.January, 1),
		Prices:          map[string]float64{},
	}

	sales := cg.CalculateSalesForNetWithdrawal(history, options)
	rq.Len(sales, 1)
	rq.True(math.IsNaN(sales[0].Amount))
	rq.True(math.IsNaN(sales[0].Price))
}
