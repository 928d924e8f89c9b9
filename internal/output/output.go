// Package output renders a projected chart series for consumers.
package output

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/jfenwick/budget-forecast/internal/models"
	"github.com/shopspring/decimal"
)

// MonthLayout is the month column format in CSV output.
const MonthLayout = "2006-01"

// WriteCSV writes the series as month,liquidity,assets rows with a header,
// amounts fixed to two decimals.
func WriteCSV(w io.Writer, points []models.ChartDataPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "liquidity", "assets"}); err != nil {
		return err
	}
	for _, p := range points {
		record := []string{
			p.Month.Format(MonthLayout),
			decimal.NewFromFloat(p.Liquidity).StringFixed(2),
			decimal.NewFromFloat(p.Assets).StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the series as a JSON array of chart points.
func WriteJSON(w io.Writer, points []models.ChartDataPoint) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(points)
}
