package capgains

import (
	"sort"

	"github.com/jgrant/capgains/util"
)

// YearlyCapitalGains maps a calendar year to the capital gains summed over
// it. Years with no sales are absent, never present as zero.
type YearlyCapitalGains map[int]float64

func (g YearlyCapitalGains) YearsSorted() []int {
	years := util.IntFloat64MapKeys(g)
	sort.Ints(years)
	return years
}

// AggregateByYear sums capital gains by the calendar year of the sale that
// realized them.
func AggregateByYear(gains []CapitalGains) YearlyCapitalGains {
	yearTotals := YearlyCapitalGains{}

	for _, g := range gains {
		year := g.Sale.Date.Year()
		yearTotalSoFar, ok := yearTotals[year]
		if !ok {
			yearTotalSoFar = 0.0
		}
		yearTotals[year] = yearTotalSoFar + g.CapitalGains
	}
	return yearTotals
}
