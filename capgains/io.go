package capgains

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jgrant/capgains/date"
)

var CsvDateFormat string = date.DefaultFormat

type ColParser func(string, *Operation) error

var colParserMap = map[string]ColParser{
	"symbol": parseSymbol,
	"date":   parseOpDate,
	"action": parseAction,
	"amount": parseAmount,
	"price":  parsePrice,
}

var ColNames []string

func init() {
	ColNames = make([]string, 0, len(colParserMap))
	for name := range colParserMap {
		ColNames = append(ColNames, name)
	}
}

func DefaultOp() *Operation {
	return &Operation{
		Symbol: "", Date: date.Date{}, Action: NO_ACTION,
		Amount: 0.0, Price: 0.0,
	}
}

func CheckOpSanity(op *Operation) error {
	if op.Symbol == "" {
		return fmt.Errorf("Operation has no symbol")
	} else if (op.Date == date.Date{}) {
		return fmt.Errorf("Operation has no date")
	} else if op.Action == NO_ACTION {
		return fmt.Errorf("Operation has no action (Buy, Sell)")
	}
	return nil
}

// ParseOpCsv parses operations out of csv data from r. desc appears in
// error messages (typically the file name).
func ParseOpCsv(r io.Reader, desc string) ([]Operation, error) {
	csvR := csv.NewReader(r)
	records, err := csvR.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Failed to parse CSV %s: %v", desc, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("No rows found in %s", desc)
	}

	header := records[0]
	colParsers := make([]ColParser, len(header))
	for i, col := range header {
		sanCol := strings.TrimSpace(strings.ToLower(col))
		if parser, ok := colParserMap[sanCol]; ok {
			colParsers[i] = parser
		} else {
			fmt.Fprintf(os.Stderr, "Warning: Unrecognized column %s\n", sanCol)
			colParsers[i] = parseNothing
		}
	}

	ops := make([]Operation, 0, len(records)-1)
	for i, record := range records[1:] {
		op := DefaultOp()
		for j, col := range record {
			err = colParsers[j](col, op)
			if err != nil {
				return nil, fmt.Errorf("Error parsing %s at line:col %d:%d: %v", desc, i+1, j, err)
			}
		}
		err = CheckOpSanity(op)
		if err != nil {
			return nil, fmt.Errorf("Error parsing %s at line %d: %v", desc, i+1, err)
		}
		ops = append(ops, *op)
	}
	return ops, nil
}

func ParseOpCsvFile(fname string) ([]Operation, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ParseOpCsv(fp, fname)
}

func parseNothing(data string, op *Operation) error {
	return nil
}

func parseSymbol(data string, op *Operation) error {
	op.Symbol = data
	return nil
}

func parseOpDate(data string, op *Operation) error {
	d, err := date.Parse(CsvDateFormat, data)
	if err != nil {
		return err
	}
	op.Date = d
	return nil
}

func parseAction(data string, op *Operation) error {
	var action OpAction = NO_ACTION
	switch strings.TrimSpace(strings.ToLower(data)) {
	case "buy":
		action = BUY
	case "sell":
		action = SELL
	default:
		return fmt.Errorf("Invalid action: '%s'", data)
	}
	op.Action = action
	return nil
}

func parseAmount(data string, op *Operation) error {
	amount, err := strconv.ParseFloat(data, 64)
	if err != nil {
		return fmt.Errorf("Error parsing amount: %v", err)
	}
	op.Amount = amount
	return nil
}

func parsePrice(data string, op *Operation) error {
	price, err := strconv.ParseFloat(data, 64)
	if err != nil {
		return fmt.Errorf("Error parsing price: %v", err)
	}
	op.Price = price
	return nil
}
