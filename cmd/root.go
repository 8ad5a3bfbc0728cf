package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jgrant/capgains/app"
	"github.com/jgrant/capgains/app/outfmt"
	cg "github.com/jgrant/capgains/capgains"
	"github.com/jgrant/capgains/log"
)

const (
	CsvDateFormatDefault string = "2006-01-02"
)

var Holdings = false
var NetWithdrawal float64 = 0.0
var CapitalGainsTax float64 = 0.0
var SaleDate string
var PriceOpts []string
var CsvOutputDir string
var RenderFullDollarValues = false

func runRootCmd(cmd *cobra.Command, args []string) {
	csvReaders := make([]app.DescribedReader, 0, len(args))
	for _, csvName := range args {
		fp, err := os.Open(csvName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer fp.Close()
		csvReaders = append(csvReaders, app.DescribedReader{Desc: csvName, Reader: fp})
	}

	var writer outfmt.GainsWriter = outfmt.NewSTDWriter(os.Stdout)
	if CsvOutputDir != "" {
		var err error
		writer, err = outfmt.NewCSVWriter(CsvOutputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	opts := app.Options{
		Holdings:               Holdings,
		NetWithdrawal:          NetWithdrawal,
		CapitalGainsTax:        CapitalGainsTax,
		SaleDate:               SaleDate,
		Prices:                 PriceOpts,
		RenderFullDollarValues: RenderFullDollarValues,
	}

	err := app.RunCapGainsApp(csvReaders, opts, writer, &log.StderrErrorPrinter{})
	if err != nil {
		os.Exit(1)
	}
}

func cmdName() string {
	binName := os.Args[0]
	return filepath.Base(binName)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   cmdName() + " [CSV_FILE ...]",
	Short: "FIFO capital gains calculation tool",
	Long: fmt.Sprintf(
		`A cli tool which computes realized capital gains from a history of
security trades, matching each sale against the oldest open purchase lots
(FIFO). It can also reduce a history to its still-open lots, and determine
which lots to sell to raise a target net amount of cash after capital
gains tax.

Each CSV provided should contain a header with these column names:
%s
 `, strings.Join(cg.ColNames, ", ")),
	Run:     runRootCmd,
	Args:    cobra.MinimumNArgs(1),
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags, which are global to the app cli
	RootCmd.PersistentFlags().BoolVarP(&log.VerboseEnabled, "verbose", "v", false,
		"Print verbose output")
	RootCmd.PersistentFlags().StringVar(&cg.CsvDateFormat, "date-fmt", CsvDateFormatDefault,
		"Format of how dates appear in the csv file. Must represent Jan 2, 2006")
	RootCmd.PersistentFlags().StringVar(&CsvOutputDir, "csv-output-dir", "",
		"Write output tables as csv files into this directory, rather than to stdout")
	RootCmd.PersistentFlags().BoolVar(&RenderFullDollarValues, "print-full-values", false,
		"Print all digits in output values")
	RootCmd.Flags().BoolVar(&Holdings, "holdings", false,
		"Show the still-open purchase lots instead of capital gains")
	RootCmd.Flags().Float64Var(&NetWithdrawal, "net-withdrawal", 0.0,
		"Compute the sales needed to withdraw this net amount, after capital gains tax")
	RootCmd.Flags().Float64Var(&CapitalGainsTax, "capital-gains-tax", 0.0,
		"Capital gains tax rate as a fraction in [0, 1]. Used with --net-withdrawal")
	RootCmd.Flags().StringVar(&SaleDate, "sale-date", "",
		"Date of the synthesized sales, formatted as 2006-01-02. Defaults to today. "+
			"Used with --net-withdrawal")
	RootCmd.Flags().StringSliceVarP(&PriceOpts, "price", "p", []string{},
		"Current price for a symbol, formatted as SYM:price. Eg. GOOG:135.50 . "+
			"May be provided multiple times. Used with --net-withdrawal")
}
