package outfmt

import (
	"github.com/jgrant/capgains/capgains"
)

type OutputType int

const (
	Gains OutputType = iota
	YearlyGains
	Holdings
	NetSales
)

type GainsWriter interface {
	PrintRenderTable(outType OutputType, tableModel *capgains.RenderTable) error
}
