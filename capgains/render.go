package capgains

import (
	"fmt"
	"math"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jgrant/capgains/util"
)

type _PrintHelper struct {
	PrintAllDecimals bool
}

var displayNanEnvSetting util.Optional[string]

func NaNString() string {
	if !displayNanEnvSetting.Present() {
		displayNanEnvSetting.Set(os.Getenv("DISPLAY_NAN"))
	}
	if displayNanEnvSetting.MustGet() == "" || displayNanEnvSetting.MustGet() == "0" {
		return "-"
	}
	return "NaN"
}

func (h _PrintHelper) CurrStr(val float64) string {
	if math.IsNaN(val) {
		return NaNString()
	}
	d := decimal.NewFromFloat(val)
	if h.PrintAllDecimals {
		return d.String()
	}
	return d.StringFixed(2)
}

func (h _PrintHelper) DollarStr(val float64) string {
	if math.IsNaN(val) {
		return NaNString()
	}
	return "$" + h.CurrStr(val)
}

func (h _PrintHelper) PlusMinusDollar(val float64, showPlus bool) string {
	if math.IsNaN(val) {
		return NaNString()
	}
	if val < 0.0 {
		return fmt.Sprintf("-$%s", h.CurrStr(-val))
	}
	plus := ""
	if showPlus {
		plus = "+"
	}
	return fmt.Sprintf("%s$%s", plus, h.CurrStr(val))
}

// AmountStr renders a unit quantity, trimming trailing zeros.
func (h _PrintHelper) AmountStr(val float64) string {
	if math.IsNaN(val) {
		return NaNString()
	}
	return decimal.NewFromFloat(val).String()
}

type RenderTable struct {
	Header []string
	Rows   [][]string
	Footer []string
	Notes  []string
	Errors []error
}

// RenderCapitalGainsTableModel makes a table of the realized gains of each
// sale, with a cumulative total in the footer.
func RenderCapitalGainsTableModel(
	gains []CapitalGains, renderFullDollarValues bool) *RenderTable {

	table := &RenderTable{}
	table.Header = []string{"Symbol", "Date", "Amount", "Price", "Proceeds", "Capital Gain"}

	ph := _PrintHelper{PrintAllDecimals: renderFullDollarValues}

	var total float64 = 0.0
	for _, g := range gains {
		sale := g.Sale
		total += g.CapitalGains
		row := []string{
			sale.Symbol,
			sale.Date.String(),
			ph.AmountStr(sale.Amount),
			ph.DollarStr(sale.Price),
			ph.DollarStr(sale.Amount * sale.Price),
			ph.PlusMinusDollar(g.CapitalGains, false),
		}
		table.Rows = append(table.Rows, row)
	}
	table.Footer = []string{"Total", "", "", "", "", ph.PlusMinusDollar(total, false)}
	return table
}

// RenderYearlyGainsTableModel makes a table of capital gains aggregated by
// calendar year, in ascending year order.
func RenderYearlyGainsTableModel(
	yearlyGains YearlyCapitalGains, renderFullDollarValues bool) *RenderTable {

	table := &RenderTable{}
	table.Header = []string{"Year", "Capital Gain"}

	ph := _PrintHelper{PrintAllDecimals: renderFullDollarValues}

	var total float64 = 0.0
	for _, year := range yearlyGains.YearsSorted() {
		total += yearlyGains[year]
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", year),
			ph.PlusMinusDollar(yearlyGains[year], false),
		})
	}
	table.Footer = []string{"Total", ph.PlusMinusDollar(total, false)}
	return table
}

// RenderHoldingsTableModel makes a table of still-open lots, as returned by
// ConsolidateHistory.
func RenderHoldingsTableModel(
	lots []Operation, renderFullDollarValues bool) *RenderTable {

	table := &RenderTable{}
	table.Header = []string{"Symbol", "Acquired", "Amount", "Price", "Cost"}

	ph := _PrintHelper{PrintAllDecimals: renderFullDollarValues}

	var totalCost float64 = 0.0
	for _, lot := range lots {
		cost := lot.Amount * lot.Price
		totalCost += cost
		table.Rows = append(table.Rows, []string{
			lot.Symbol,
			lot.Date.String(),
			ph.AmountStr(lot.Amount),
			ph.DollarStr(lot.Price),
			ph.DollarStr(cost),
		})
	}
	table.Footer = []string{"Total", "", "", "", ph.DollarStr(totalCost)}
	return table
}

// RenderNetSalesTableModel makes a table of the sales synthesized for a net
// withdrawal target.
func RenderNetSalesTableModel(
	sales []Operation, options NetSalesOptions,
	renderFullDollarValues bool) *RenderTable {

	table := &RenderTable{}
	table.Header = []string{"Symbol", "Date", "Amount", "Price", "Gross Proceeds"}

	ph := _PrintHelper{PrintAllDecimals: renderFullDollarValues}

	var grossTotal float64 = 0.0
	for _, sale := range sales {
		proceeds := sale.Amount * sale.Price
		grossTotal += proceeds
		table.Rows = append(table.Rows, []string{
			sale.Symbol,
			sale.Date.String(),
			ph.AmountStr(sale.Amount),
			ph.DollarStr(sale.Price),
			ph.DollarStr(proceeds),
		})
	}
	table.Footer = []string{"Total", "", "", "", ph.DollarStr(grossTotal)}
	table.Notes = append(table.Notes, fmt.Sprintf(
		"Target net withdrawal: %s (tax rate %s%%)",
		ph.DollarStr(options.NetWithdrawal),
		ph.AmountStr(options.CapitalGainsTax*100)))
	return table
}
