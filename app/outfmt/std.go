package outfmt

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/jgrant/capgains/capgains"
)

type STDWriter struct {
	w io.Writer
}

func NewSTDWriter(w io.Writer) *STDWriter {
	return &STDWriter{
		w: w,
	}
}

// Write implements io.Writer.
func (w *STDWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if err != nil {
		panic(fmt.Errorf("STDWriter.Write: %w", err))
	}
	return n, err
}

// PrintRenderTable implements GainsWriter.
func (w *STDWriter) PrintRenderTable(
	outType OutputType, tableModel *capgains.RenderTable) error {

	for _, err := range tableModel.Errors {
		fmt.Fprintf(w, "[!] %v. Printing parsed information state:\n", err)
	}
	var title string
	switch outType {
	case Gains:
		title = "Capital Gains"
	case YearlyGains:
		title = "Yearly Capital Gains"
	case Holdings:
		title = "Open Holdings"
	case NetSales:
		title = "Net Withdrawal Sales"
	default:
		panic(fmt.Sprint("OutputType ", outType, " is not implemented"))
	}
	fmt.Fprintf(w, "%s\n", title)

	table := tablewriter.NewWriter(w)
	table.SetHeader(tableModel.Header)
	table.SetBorder(false)
	table.SetRowLine(true)

	for _, row := range tableModel.Rows {
		table.Append(row)
	}

	table.SetFooter(tableModel.Footer)

	table.Render()

	for _, note := range tableModel.Notes {
		fmt.Fprintln(w, note)
	}

	fmt.Fprintln(w, "")
	return nil
}
