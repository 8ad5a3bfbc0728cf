package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jgrant/capgains/app/outfmt"
	"github.com/jgrant/capgains/capgains"
	"github.com/jgrant/capgains/date"
	"github.com/jgrant/capgains/log"
)

type DescribedReader struct {
	Desc   string
	Reader io.Reader
}

type Options struct {
	Holdings               bool
	NetWithdrawal          float64
	CapitalGainsTax        float64
	SaleDate               string
	Prices                 []string
	RenderFullDollarValues bool
}

/* Takes a list of price strings, each formatted as:
 * SYM:price. Eg. GOOG:135.50
 */
func ParsePrices(priceArgs []string) (map[string]float64, error) {
	prices := make(map[string]float64)
	for _, opt := range priceArgs {
		parts := strings.Split(opt, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("Invalid price format '%s'", opt)
		}
		symbol := parts[0]
		price, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("Invalid price format '%s'. %v", opt, err)
		}
		if _, ok := prices[symbol]; ok {
			return nil, fmt.Errorf("Symbol %s specified multiple times", symbol)
		}
		prices[symbol] = price
	}
	return prices, nil
}

// loadOperations parses every csv reader and returns all operations merged
// into chronological order. The engine itself assumes sorted input, so the
// app sorts here as a hardening pre-pass.
func loadOperations(csvReaders []DescribedReader) ([]capgains.Operation, error) {
	allOps := make([]capgains.Operation, 0, 20)
	for _, csvReader := range csvReaders {
		ops, err := capgains.ParseOpCsv(csvReader.Reader, csvReader.Desc)
		if err != nil {
			return nil, err
		}
		allOps = append(allOps, ops...)
		log.Verbosef("Parsed %d operations from %s\n", len(ops), csvReader.Desc)
	}
	return capgains.SortOperations(allOps), nil
}

func netSalesOptions(opts Options) (capgains.NetSalesOptions, error) {
	saleDate := date.Today()
	if opts.SaleDate != "" {
		var err error
		saleDate, err = date.Parse(date.DefaultFormat, opts.SaleDate)
		if err != nil {
			return capgains.NetSalesOptions{}, fmt.Errorf("Invalid sale date: %v", err)
		}
	}
	if opts.CapitalGainsTax < 0.0 || opts.CapitalGainsTax > 1.0 {
		return capgains.NetSalesOptions{}, fmt.Errorf(
			"Capital gains tax rate must be within [0, 1] (got %v)", opts.CapitalGainsTax)
	}
	prices, err := ParsePrices(opts.Prices)
	if err != nil {
		return capgains.NetSalesOptions{}, err
	}
	return capgains.NetSalesOptions{
		NetWithdrawal:   opts.NetWithdrawal,
		CapitalGainsTax: opts.CapitalGainsTax,
		Date:            saleDate,
		Prices:          prices,
	}, nil
}

// RunCapGainsApp parses the given csv histories and renders the requested
// computation: open holdings, net-withdrawal sales, or (by default) FIFO
// capital gains with their yearly aggregates.
func RunCapGainsApp(
	csvReaders []DescribedReader,
	opts Options,
	writer outfmt.GainsWriter,
	errPrinter log.ErrorPrinter) error {

	history, err := loadOperations(csvReaders)
	if err != nil {
		errPrinter.Ln("Error:", err)
		return err
	}

	if opts.Holdings {
		lots := capgains.ConsolidateHistory(history)
		return writer.PrintRenderTable(outfmt.Holdings,
			capgains.RenderHoldingsTableModel(lots, opts.RenderFullDollarValues))
	}

	if opts.NetWithdrawal > 0.0 {
		nsOpts, err := netSalesOptions(opts)
		if err != nil {
			errPrinter.Ln("Error:", err)
			return err
		}
		sales := capgains.CalculateSalesForNetWithdrawal(history, nsOpts)
		return writer.PrintRenderTable(outfmt.NetSales,
			capgains.RenderNetSalesTableModel(sales, nsOpts, opts.RenderFullDollarValues))
	}

	gains, err := capgains.CalculateFIFOCapitalGains(history)
	if err != nil {
		errPrinter.F("[!] %v\n", err)
		return err
	}
	err = writer.PrintRenderTable(outfmt.Gains,
		capgains.RenderCapitalGainsTableModel(gains, opts.RenderFullDollarValues))
	if err != nil {
		return err
	}
	return writer.PrintRenderTable(outfmt.YearlyGains,
		capgains.RenderYearlyGainsTableModel(
			capgains.AggregateByYear(gains), opts.RenderFullDollarValues))
}
